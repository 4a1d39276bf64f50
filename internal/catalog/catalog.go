// Package catalog holds the canonical exercise library seeded into every new
// installation. Entries live in catalog.yaml so the library can change
// without touching the builder or the taxonomy.
package catalog

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/mansoorceksport/totality/internal/domain"
)

//go:embed catalog.yaml
var catalogYAML []byte

// File is the root of a catalog document.
type File struct {
	Version int     `yaml:"version"`
	Groups  []Group `yaml:"groups"`
}

// Group collects entries sharing an implement, split by body region.
type Group struct {
	Name      string   `yaml:"name"`
	Implement string   `yaml:"implement,omitempty"`
	Regions   []Region `yaml:"regions"`
}

type Region struct {
	Name      string  `yaml:"name"`
	Exercises []Entry `yaml:"exercises"`
}

// Entry is one catalog exercise. Implement overrides the group's implement.
type Entry struct {
	Name      string   `yaml:"name"`
	Factory   string   `yaml:"factory"`
	AKA       []string `yaml:"aka,omitempty"`
	Implement string   `yaml:"implement,omitempty"`
	Movement  string   `yaml:"movement,omitempty"`
	Muscle    string   `yaml:"muscle,omitempty"`
	Stance    string   `yaml:"stance,omitempty"`
	Lateral   string   `yaml:"lateral,omitempty"`
	Zone      *int     `yaml:"zone,omitempty"`
}

const (
	FactoryCompound      = "compound"
	FactoryIsolation     = "isolation"
	FactoryCore          = "core"
	FactoryCardioMachine = "cardio_machine"
)

var (
	loadOnce sync.Once
	loaded   []domain.ExerciseDefinition
	version  int
	loadErr  error
)

func load() {
	var f File
	f, loadErr = decodeFile(catalogYAML)
	if loadErr != nil {
		return
	}
	version = f.Version
	loaded, loadErr = f.Definitions()
}

// All returns the canonical definitions in seeding order. It panics if the
// embedded catalog is invalid.
func All() []domain.ExerciseDefinition {
	loadOnce.Do(load)
	if loadErr != nil {
		panic(fmt.Sprintf("catalog: embedded catalog is invalid: %v", loadErr))
	}
	return slices.Clone(loaded)
}

// Version returns the version of the embedded catalog.
func Version() int {
	loadOnce.Do(load)
	return version
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) ([]domain.ExerciseDefinition, error) {
	f, err := decodeFile(data)
	if err != nil {
		return nil, err
	}
	return f.Definitions()
}

func decodeFile(data []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return f, nil
}

// Definitions flattens the file into definitions, in group, region and
// entry order. Every definition is validated; names must be unique.
func (f File) Definitions() ([]domain.ExerciseDefinition, error) {
	var defs []domain.ExerciseDefinition
	seen := make(map[string]string)

	for _, g := range f.Groups {
		for _, r := range g.Regions {
			for _, e := range r.Exercises {
				where := g.Name + "/" + r.Name
				if prev, ok := seen[e.Name]; ok {
					return nil, fmt.Errorf("%s: duplicate entry %q (first in %s)", where, e.Name, prev)
				}
				seen[e.Name] = where

				def, err := e.definition(g.Implement)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", where, err)
				}
				if err := def.Validate(); err != nil {
					return nil, fmt.Errorf("%s: %w", where, err)
				}
				defs = append(defs, def)
			}
		}
	}
	return defs, nil
}

func (e Entry) definition(groupImplement string) (domain.ExerciseDefinition, error) {
	raw := e.Implement
	if raw == "" {
		raw = groupImplement
	}
	implement := domain.ImplementType(raw)

	if e.Factory != FactoryCore && !implement.Valid() {
		return domain.ExerciseDefinition{}, fmt.Errorf("%w: %s: unknown implement %q", domain.ErrInvalidDefinition, e.Name, raw)
	}
	if e.Factory != FactoryCardioMachine && e.Movement == "" {
		return domain.ExerciseDefinition{}, fmt.Errorf("%w: %s: movement is required", domain.ErrInvalidDefinition, e.Name)
	}
	if (e.Factory == FactoryCompound || e.Factory == FactoryIsolation) && e.Muscle == "" {
		return domain.ExerciseDefinition{}, fmt.Errorf("%w: %s: muscle is required", domain.ErrInvalidDefinition, e.Name)
	}

	switch e.Factory {
	case FactoryCompound:
		return compound(e, implement), nil
	case FactoryIsolation:
		return isolation(e, implement), nil
	case FactoryCore:
		return core(e), nil
	case FactoryCardioMachine:
		return cardioMachine(e, implement), nil
	default:
		return domain.ExerciseDefinition{}, fmt.Errorf("%w: %s: unknown factory %q", domain.ErrInvalidDefinition, e.Name, e.Factory)
	}
}
