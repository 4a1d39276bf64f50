// Package titleparser infers taxonomy hints from a free-form exercise title
// such as "Barbell Pause Incline Bench Press".
//
// Each hint category is an ordered list of rules; the first rule with a
// keyword in the title decides the hint. Keywords are plain substring tests,
// except short abbreviations, which must stand alone between spaces so "bb"
// does not fire inside "dumbbell". Every keyword of a matching rule is then
// stripped from the title as a whole word to produce the cleaned name.
package titleparser

import (
	"regexp"
	"slices"
	"strings"

	"github.com/mansoorceksport/totality/internal/domain"
)

// Hints are suggestions for a creation form. Empty fields were not inferred.
type Hints struct {
	CleanedName     string                    `json:"cleaned_name"`
	Implement       domain.ImplementType      `json:"implement,omitempty"`
	LateralType     domain.LateralType        `json:"lateral_type,omitempty"`
	Angle           domain.ExerciseAngle      `json:"angle,omitempty"`
	ContractionBias domain.ContractionBias    `json:"contraction_bias,omitempty"`
	VelocityType    domain.VelocityType       `json:"velocity_type,omitempty"`
	ROMClass        domain.RangeOfMotionClass `json:"rom_class,omitempty"`
	BodyPosition    domain.BodyPosition       `json:"body_position,omitempty"`
}

type rule[T ~string] struct {
	value    T
	keywords []string
}

func on[T ~string](value T, keywords ...string) rule[T] {
	return rule[T]{value: value, keywords: keywords}
}

var implementRules = []rule[domain.ImplementType]{
	on(domain.ImplementBarbell, "barbell", "bb"),
	on(domain.ImplementDumbbell, "dumbbell", "db"),
	on(domain.ImplementMachine, "machine"),
	on(domain.ImplementBodyweight, "bodyweight", "bw"),
	on(domain.ImplementCable, "cable"),
	on(domain.ImplementBand, "band", "banda", "resistance band"),
	on(domain.ImplementKettlebell, "kettlebell", "kb"),
	on(domain.ImplementSmithMachine, "smith", "smith machine"),
	on(domain.ImplementTrapBar, "trap bar", "hex bar"),
}

var lateralRules = []rule[domain.LateralType]{
	on(domain.LateralUnilateral, "single leg", "single-leg"),
	on(domain.LateralUnilateral, "single arm", "single-arm"),
	on(domain.LateralBilateralAlternating, "alternating", "alt"),
}

var contractionRules = []rule[domain.ContractionBias]{
	on(domain.ContractionConcentricBiased, "pause", "paused"),
	on(domain.ContractionIsometric, "iso", "isometric"),
	on(domain.ContractionEccentricEmphasized, "eccentric", "negative"),
}

// Normal velocity is the default and is never inferred.
var velocityRules = []rule[domain.VelocityType]{
	on(domain.VelocityExplosive, "explosive"),
	on(domain.VelocityPlyometric, "jumping", "jump"),
}

var angleRules = []rule[domain.ExerciseAngle]{
	on(domain.AngleInclineMedium, "incline"),
	on(domain.AngleDeclineMedium, "decline"),
	on(domain.AngleUpright, "upright"),
	on(domain.AngleBent90, "90", "90°", "pendlay"),
}

var romRules = []rule[domain.RangeOfMotionClass]{
	on(domain.ROMClassFull, "full rom", "full range"),
	on(domain.ROMClassPartial, "partial", "partials"),
	on(domain.ROMClassLongMuscleLength, "stretch"),
	on(domain.ROMClassShortMuscleLength, "top half", "lockout"),
}

// "lying" cannot tell supine from prone; supine is assumed.
var bodyPositionRules = []rule[domain.BodyPosition]{
	on(domain.PositionSeated, "seated"),
	on(domain.PositionStanding, "standing"),
	on(domain.PositionSupine, "lying", "laying"),
	on(domain.PositionProne, "prone"),
	on(domain.PositionKneeling, "kneeling"),
}

// abbreviations only match as a standalone token.
var abbreviations = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp)
	for _, k := range []string{"bb", "db", "bw", "kb", "iso", "alt", "90", "90°"} {
		m[k] = regexp.MustCompile(`(^|\s)` + regexp.QuoteMeta(k) + `(\s|$)`)
	}
	return m
}()

func mentions(lower, keyword string) bool {
	if re, ok := abbreviations[keyword]; ok {
		return re.MatchString(lower)
	}
	return strings.Contains(lower, keyword)
}

// firstMatch returns the value of the first rule with a keyword in the
// title and queues all of that rule's keywords for stripping.
func firstMatch[T ~string](rules []rule[T], lower string, strip *[]string) T {
	for _, r := range rules {
		for _, k := range r.keywords {
			if mentions(lower, k) {
				*strip = append(*strip, r.keywords...)
				return r.value
			}
		}
	}
	return ""
}

// Parse never fails. A blank title yields empty hints and an empty name.
func Parse(raw string) Hints {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Hints{}
	}

	lower := strings.ToLower(trimmed)
	var strip []string

	h := Hints{
		Implement:       firstMatch(implementRules, lower, &strip),
		LateralType:     firstMatch(lateralRules, lower, &strip),
		ContractionBias: firstMatch(contractionRules, lower, &strip),
		VelocityType:    firstMatch(velocityRules, lower, &strip),
		Angle:           firstMatch(angleRules, lower, &strip),
		ROMClass:        firstMatch(romRules, lower, &strip),
		BodyPosition:    firstMatch(bodyPositionRules, lower, &strip),
	}
	h.CleanedName = stripPhrases(trimmed, strip)
	return h
}

var spaces = regexp.MustCompile(` {2,}`)

// stripPhrases removes longer phrases first so "90°" goes before "90".
func stripPhrases(title string, phrases []string) string {
	phrases = slices.Clone(phrases)
	slices.SortStableFunc(phrases, func(a, b string) int { return len(b) - len(a) })
	for _, p := range phrases {
		title = phrasePattern(p).ReplaceAllString(title, "")
	}
	return strings.TrimSpace(spaces.ReplaceAllString(title, " "))
}

func phrasePattern(phrase string) *regexp.Regexp {
	if re, ok := phrasePatterns[phrase]; ok {
		return re
	}
	return compilePhrase(phrase)
}

var wordChar = regexp.MustCompile(`\w`)

// compilePhrase anchors the phrase on word boundaries. An edge that is not a
// word character, like the ° in "90°", carries no boundary.
func compilePhrase(phrase string) *regexp.Regexp {
	pattern := regexp.QuoteMeta(phrase)
	if wordChar.MatchString(phrase[:1]) {
		pattern = `\b` + pattern
	}
	if r := []rune(phrase); wordChar.MatchString(string(r[len(r)-1])) {
		pattern += `\b`
	}
	return regexp.MustCompile(`(?i)` + pattern)
}

var phrasePatterns = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp)
	add := func(keywords []string) {
		for _, k := range keywords {
			m[k] = compilePhrase(k)
		}
	}
	for _, r := range implementRules {
		add(r.keywords)
	}
	for _, r := range lateralRules {
		add(r.keywords)
	}
	for _, r := range contractionRules {
		add(r.keywords)
	}
	for _, r := range velocityRules {
		add(r.keywords)
	}
	for _, r := range angleRules {
		add(r.keywords)
	}
	for _, r := range romRules {
		add(r.keywords)
	}
	for _, r := range bodyPositionRules {
		add(r.keywords)
	}
	return m
}()

// Prefill copies the hints into any field of d that is still unset. Values
// already on d win. A blank name is replaced by the cleaned name.
func (h Hints) Prefill(d *domain.ExerciseDefinition) {
	if d.Name == "" {
		d.Name = h.CleanedName
	}
	if d.Implement == "" {
		d.Implement = h.Implement
	}
	if d.LateralType == "" {
		d.LateralType = h.LateralType
	}
	if d.Angle == "" {
		d.Angle = h.Angle
	}
	if d.ContractionBias == "" {
		d.ContractionBias = h.ContractionBias
	}
	if d.VelocityType == "" {
		d.VelocityType = h.VelocityType
	}
	if d.ROMClass == "" {
		d.ROMClass = h.ROMClass
	}
	if d.BodyPosition == "" {
		d.BodyPosition = h.BodyPosition
	}
}
