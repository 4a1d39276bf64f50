package domain

import "slices"

// Movement, plane, position, grip and loading descriptors. All of these are
// optional on an exercise.

type MovementPattern string

const (
	PatternPush                   MovementPattern = "push"
	PatternPull                   MovementPattern = "pull"
	PatternHinge                  MovementPattern = "hinge"
	PatternSquat                  MovementPattern = "squat"
	PatternLunge                  MovementPattern = "lunge"
	PatternTripleExtension        MovementPattern = "tripleExtension"
	PatternCarry                  MovementPattern = "carry"
	PatternGait                   MovementPattern = "gait"
	PatternCoreAntiExtension      MovementPattern = "coreAntiExtension"
	PatternCoreAntiRotation       MovementPattern = "coreAntiRotation"
	PatternRotation               MovementPattern = "rotation"
	PatternHipExtension           MovementPattern = "hipExtension"
	PatternHipFlexion             MovementPattern = "hipFlexion"
	PatternKneeFlexion            MovementPattern = "kneeFlexion"
	PatternKneeExtension          MovementPattern = "kneeExtension"
	PatternElbowFlexion           MovementPattern = "elbowFlexion"
	PatternElbowExtension         MovementPattern = "elbowExtension"
	PatternHorizontalAbduction    MovementPattern = "horizontalAbduction"
	PatternAbduction              MovementPattern = "abduction"
	PatternFlexion                MovementPattern = "flexion"
	PatternElevation              MovementPattern = "elevation"
	PatternCoreRotation           MovementPattern = "coreRotation"
	PatternSpinalFlexion          MovementPattern = "spinalFlexion"
	PatternDorsiflexion           MovementPattern = "dorsiflexion"
	PatternCalfRaise              MovementPattern = "calfRaise"
	PatternHipAbduction           MovementPattern = "hipAbduction"
	PatternHipAdduction           MovementPattern = "hipAdduction"
	PatternCoreAntiLateralFlexion MovementPattern = "coreAntiLateralFlexion"
	PatternOther                  MovementPattern = "other"
)

var movementPatterns = []MovementPattern{
	PatternPush, PatternPull, PatternHinge, PatternSquat, PatternLunge, PatternTripleExtension,
	PatternCarry, PatternGait, PatternCoreAntiExtension, PatternCoreAntiRotation, PatternRotation,
	PatternHipExtension, PatternHipFlexion, PatternKneeFlexion, PatternKneeExtension,
	PatternElbowFlexion, PatternElbowExtension, PatternHorizontalAbduction, PatternAbduction,
	PatternFlexion, PatternElevation, PatternCoreRotation, PatternSpinalFlexion, PatternDorsiflexion,
	PatternCalfRaise, PatternHipAbduction, PatternHipAdduction, PatternCoreAntiLateralFlexion,
	PatternOther,
}

func (v MovementPattern) Valid() bool { return slices.Contains(movementPatterns, v) }

func ParseMovementPattern(raw string) MovementPattern { return decode(raw, movementPatterns, "") }

type PlaneOfMotion string

const (
	PlaneSagittal   PlaneOfMotion = "sagittal"
	PlaneFrontal    PlaneOfMotion = "frontal"
	PlaneTransverse PlaneOfMotion = "transverse"
	PlaneMulti      PlaneOfMotion = "multi"
)

var planesOfMotion = []PlaneOfMotion{
	PlaneSagittal, PlaneFrontal, PlaneTransverse, PlaneMulti,
}

func (v PlaneOfMotion) Valid() bool { return slices.Contains(planesOfMotion, v) }

func ParsePlaneOfMotion(raw string) PlaneOfMotion { return decode(raw, planesOfMotion, "") }

// ROMBias is the coarse range-of-motion bias.
type ROMBias string

const (
	ROMBiasFull     ROMBias = "full"
	ROMBiasLong     ROMBias = "long"
	ROMBiasShort    ROMBias = "short"
	ROMBiasVariable ROMBias = "variable"
)

var romBiases = []ROMBias{
	ROMBiasFull, ROMBiasLong, ROMBiasShort, ROMBiasVariable,
}

func (v ROMBias) Valid() bool { return slices.Contains(romBiases, v) }

func ParseROMBias(raw string) ROMBias { return decode(raw, romBiases, "") }

// RangeOfMotionClass describes which part of the muscle length the exercise trains.
type RangeOfMotionClass string

const (
	ROMClassFull              RangeOfMotionClass = "full"
	ROMClassLongMuscleLength  RangeOfMotionClass = "longMuscleLength"
	ROMClassShortMuscleLength RangeOfMotionClass = "shortMuscleLength"
	ROMClassPartial           RangeOfMotionClass = "partial"
	ROMClassDynamic           RangeOfMotionClass = "dynamic"
	ROMClassVariable          RangeOfMotionClass = "variable"
)

var romClasses = []RangeOfMotionClass{
	ROMClassFull, ROMClassLongMuscleLength, ROMClassShortMuscleLength, ROMClassPartial,
	ROMClassDynamic, ROMClassVariable,
}

func (v RangeOfMotionClass) Valid() bool { return slices.Contains(romClasses, v) }

func ParseRangeOfMotionClass(raw string) RangeOfMotionClass { return decode(raw, romClasses, "") }

type ExerciseAngle string

const (
	AngleFlat          ExerciseAngle = "flat"
	AngleInclineLow    ExerciseAngle = "inclineLow"
	AngleInclineMedium ExerciseAngle = "inclineMedium"
	AngleInclineHigh   ExerciseAngle = "inclineHigh"
	AngleDeclineLow    ExerciseAngle = "declineLow"
	AngleDeclineMedium ExerciseAngle = "declineMedium"
	AngleDeclineHigh   ExerciseAngle = "declineHigh"
	AngleUpright       ExerciseAngle = "upright"
	AngleBent45        ExerciseAngle = "bent45"
	AngleBent90        ExerciseAngle = "bent90"
	AngleCustom        ExerciseAngle = "custom"
)

var exerciseAngles = []ExerciseAngle{
	AngleFlat, AngleInclineLow, AngleInclineMedium, AngleInclineHigh, AngleDeclineLow,
	AngleDeclineMedium, AngleDeclineHigh, AngleUpright, AngleBent45, AngleBent90, AngleCustom,
}

func (v ExerciseAngle) Valid() bool { return slices.Contains(exerciseAngles, v) }

func ParseExerciseAngle(raw string) ExerciseAngle { return decode(raw, exerciseAngles, "") }

type BodyPosition string

const (
	PositionStanding     BodyPosition = "standing"
	PositionSeated       BodyPosition = "seated"
	PositionKneeling     BodyPosition = "kneeling"
	PositionHalfKneeling BodyPosition = "halfKneeling"
	PositionTallKneeling BodyPosition = "tallKneeling"
	PositionSupine       BodyPosition = "supine"
	PositionProne        BodyPosition = "prone"
	PositionSideLying    BodyPosition = "sideLying"
	PositionHipHinged    BodyPosition = "hipHinged"
	PositionOther        BodyPosition = "other"
)

var bodyPositions = []BodyPosition{
	PositionStanding, PositionSeated, PositionKneeling, PositionHalfKneeling, PositionTallKneeling,
	PositionSupine, PositionProne, PositionSideLying, PositionHipHinged, PositionOther,
}

func (v BodyPosition) Valid() bool { return slices.Contains(bodyPositions, v) }

func ParseBodyPosition(raw string) BodyPosition { return decode(raw, bodyPositions, "") }

// GripOrientation is the default hand orientation. GripNone is used by lower-body work.
type GripOrientation string

const (
	GripPronated  GripOrientation = "pronated"
	GripSupinated GripOrientation = "supinated"
	GripNeutral   GripOrientation = "neutral"
	GripMixed     GripOrientation = "mixed"
	GripNone      GripOrientation = "none"
)

var gripOrientations = []GripOrientation{
	GripPronated, GripSupinated, GripNeutral, GripMixed, GripNone,
}

func (v GripOrientation) Valid() bool { return slices.Contains(gripOrientations, v) }

func ParseGripOrientation(raw string) GripOrientation { return decode(raw, gripOrientations, "") }

type GripWidth string

const (
	GripWidthNarrow        GripWidth = "narrow"
	GripWidthShoulderWidth GripWidth = "shoulderWidth"
	GripWidthWide          GripWidth = "wide"
	GripWidthVariable      GripWidth = "variable"
	GripWidthNone          GripWidth = "none"
)

var gripWidths = []GripWidth{
	GripWidthNarrow, GripWidthShoulderWidth, GripWidthWide, GripWidthVariable, GripWidthNone,
}

func (v GripWidth) Valid() bool { return slices.Contains(gripWidths, v) }

func ParseGripWidth(raw string) GripWidth { return decode(raw, gripWidths, "") }

type StanceType string

const (
	StanceFeetTogether  StanceType = "feetTogether"
	StanceHipWidth      StanceType = "hipWidth"
	StanceShoulderWidth StanceType = "shoulderWidth"
	StanceWide          StanceType = "wide"
	StanceSumo          StanceType = "sumo"
	StanceSplitStance   StanceType = "splitStance"
	StanceSingleLeg     StanceType = "singleLeg"
	StanceOther         StanceType = "other"
)

var stanceTypes = []StanceType{
	StanceFeetTogether, StanceHipWidth, StanceShoulderWidth, StanceWide, StanceSumo,
	StanceSplitStance, StanceSingleLeg, StanceOther,
}

func (v StanceType) Valid() bool { return slices.Contains(stanceTypes, v) }

func ParseStanceType(raw string) StanceType { return decode(raw, stanceTypes, "") }

// LateralType distinguishes bilateral, alternating and single-limb work.
type LateralType string

const (
	LateralBilateralSymmetric   LateralType = "bilateralSymmetric"
	LateralBilateralAlternating LateralType = "bilateralAlternating"
	LateralUnilateral           LateralType = "unilateral"
	LateralContralateralLoad    LateralType = "contralateralLoad"
	LateralIpsilateralLoad      LateralType = "ipsilateralLoad"
	LateralCrossBody            LateralType = "crossBody"
	LateralGaitPattern          LateralType = "gaitPattern"
	LateralOther                LateralType = "other"
)

var lateralTypes = []LateralType{
	LateralBilateralSymmetric, LateralBilateralAlternating, LateralUnilateral,
	LateralContralateralLoad, LateralIpsilateralLoad, LateralCrossBody, LateralGaitPattern,
	LateralOther,
}

func (v LateralType) Valid() bool { return slices.Contains(lateralTypes, v) }

func ParseLateralType(raw string) LateralType { return decode(raw, lateralTypes, "") }

type ContractionBias string

const (
	ContractionConcentricBiased       ContractionBias = "concentricBiased"
	ContractionEccentricEmphasized    ContractionBias = "eccentricEmphasized"
	ContractionStretchShorteningCycle ContractionBias = "stretchShorteningCycle"
	ContractionIsometric              ContractionBias = "isometric"
	ContractionMixed                  ContractionBias = "mixed"
)

var contractionBiases = []ContractionBias{
	ContractionConcentricBiased, ContractionEccentricEmphasized, ContractionStretchShorteningCycle,
	ContractionIsometric, ContractionMixed,
}

func (v ContractionBias) Valid() bool { return slices.Contains(contractionBiases, v) }

func ParseContractionBias(raw string) ContractionBias { return decode(raw, contractionBiases, "") }

type VelocityType string

const (
	VelocitySlow       VelocityType = "slow"
	VelocityNormal     VelocityType = "normal"
	VelocityExplosive  VelocityType = "explosive"
	VelocityPlyometric VelocityType = "plyometric"
	VelocityBallistic  VelocityType = "ballistic"
)

var velocityTypes = []VelocityType{
	VelocitySlow, VelocityNormal, VelocityExplosive, VelocityPlyometric, VelocityBallistic,
}

func (v VelocityType) Valid() bool { return slices.Contains(velocityTypes, v) }

func ParseVelocityType(raw string) VelocityType { return decode(raw, velocityTypes, "") }

// StabilityClass ranges from machine-guided to highly unstable setups.
type StabilityClass string

const (
	StabilityExternallyStabilized StabilityClass = "externallyStabilized"
	StabilitySemiStable           StabilityClass = "semiStable"
	StabilityUnstable             StabilityClass = "unstable"
	StabilityHighlyUnstable       StabilityClass = "highlyUnstable"
	StabilityOther                StabilityClass = "other"
)

var stabilityClasses = []StabilityClass{
	StabilityExternallyStabilized, StabilitySemiStable, StabilityUnstable, StabilityHighlyUnstable,
	StabilityOther,
}

func (v StabilityClass) Valid() bool { return slices.Contains(stabilityClasses, v) }

func ParseStabilityClass(raw string) StabilityClass { return decode(raw, stabilityClasses, "") }

type JointAction string

const (
	ActionShoulderFlexion             JointAction = "shoulderFlexion"
	ActionShoulderExtension           JointAction = "shoulderExtension"
	ActionShoulderHorizontalFlexion   JointAction = "shoulderHorizontalFlexion"
	ActionShoulderHorizontalExtension JointAction = "shoulderHorizontalExtension"
	ActionShoulderAbduction           JointAction = "shoulderAbduction"
	ActionShoulderAdduction           JointAction = "shoulderAdduction"
	ActionElbowFlexion                JointAction = "elbowFlexion"
	ActionElbowExtension              JointAction = "elbowExtension"
	ActionHipFlexion                  JointAction = "hipFlexion"
	ActionHipExtension                JointAction = "hipExtension"
	ActionHipAbduction                JointAction = "hipAbduction"
	ActionHipAdduction                JointAction = "hipAdduction"
	ActionKneeFlexion                 JointAction = "kneeFlexion"
	ActionKneeExtension               JointAction = "kneeExtension"
	ActionAnklePlantarflexion         JointAction = "anklePlantarflexion"
	ActionAnkleDorsiflexion           JointAction = "ankleDorsiflexion"
	ActionSpinalFlexion               JointAction = "spinalFlexion"
	ActionSpinalExtension             JointAction = "spinalExtension"
	ActionSpinalLateralFlexion        JointAction = "spinalLateralFlexion"
	ActionSpinalRotation              JointAction = "spinalRotation"
	ActionSpinalAntiExtension         JointAction = "spinalAntiExtension"
	ActionSpinalAntiFlexion           JointAction = "spinalAntiFlexion"
	ActionSpinalAntiRotation          JointAction = "spinalAntiRotation"
	ActionOther                       JointAction = "other"
)

var jointActions = []JointAction{
	ActionShoulderFlexion, ActionShoulderExtension, ActionShoulderHorizontalFlexion,
	ActionShoulderHorizontalExtension, ActionShoulderAbduction, ActionShoulderAdduction,
	ActionElbowFlexion, ActionElbowExtension, ActionHipFlexion, ActionHipExtension,
	ActionHipAbduction, ActionHipAdduction, ActionKneeFlexion, ActionKneeExtension,
	ActionAnklePlantarflexion, ActionAnkleDorsiflexion, ActionSpinalFlexion, ActionSpinalExtension,
	ActionSpinalLateralFlexion, ActionSpinalRotation, ActionSpinalAntiExtension,
	ActionSpinalAntiFlexion, ActionSpinalAntiRotation, ActionOther,
}

func (v JointAction) Valid() bool { return slices.Contains(jointActions, v) }

func ParseJointAction(raw string) JointAction { return decode(raw, jointActions, "") }

type TissueLoadType string

const (
	TissueTendonDominant        TissueLoadType = "tendonDominant"
	TissueMuscleDominant        TissueLoadType = "muscleDominant"
	TissueJointCompressionHeavy TissueLoadType = "jointCompressionHeavy"
	TissueJointShearHeavy       TissueLoadType = "jointShearHeavy"
	TissueMixed                 TissueLoadType = "mixed"
)

var tissueLoadTypes = []TissueLoadType{
	TissueTendonDominant, TissueMuscleDominant, TissueJointCompressionHeavy, TissueJointShearHeavy,
	TissueMixed,
}

func (v TissueLoadType) Valid() bool { return slices.Contains(tissueLoadTypes, v) }

func ParseTissueLoadType(raw string) TissueLoadType { return decode(raw, tissueLoadTypes, "") }

type ForceCurve string

const (
	CurveAscending  ForceCurve = "ascending"
	CurveDescending ForceCurve = "descending"
	CurveBellShaped ForceCurve = "bellShaped"
	CurvePlateau    ForceCurve = "plateau"
	CurveVariable   ForceCurve = "variable"
)

var forceCurves = []ForceCurve{
	CurveAscending, CurveDescending, CurveBellShaped, CurvePlateau, CurveVariable,
}

func (v ForceCurve) Valid() bool { return slices.Contains(forceCurves, v) }

func ParseForceCurve(raw string) ForceCurve { return decode(raw, forceCurves, "") }

type MovementArc string

const (
	ArcVerticalPush   MovementArc = "verticalPush"
	ArcVerticalPull   MovementArc = "verticalPull"
	ArcHorizontalPush MovementArc = "horizontalPush"
	ArcHorizontalPull MovementArc = "horizontalPull"
	ArcDiagonal       MovementArc = "diagonal"
	ArcRotational     MovementArc = "rotational"
	ArcAntiMovement   MovementArc = "antiMovement"
	ArcCircular       MovementArc = "circular"
	ArcOther          MovementArc = "other"
)

var movementArcs = []MovementArc{
	ArcVerticalPush, ArcVerticalPull, ArcHorizontalPush, ArcHorizontalPull, ArcDiagonal,
	ArcRotational, ArcAntiMovement, ArcCircular, ArcOther,
}

func (v MovementArc) Valid() bool { return slices.Contains(movementArcs, v) }

func ParseMovementArc(raw string) MovementArc { return decode(raw, movementArcs, "") }

type ResistanceProfile string

const (
	ResistanceFreeWeight ResistanceProfile = "freeWeight"
	ResistanceCable      ResistanceProfile = "cable"
	ResistanceBand       ResistanceProfile = "band"
	ResistanceMachine    ResistanceProfile = "machine"
	ResistanceBodyweight ResistanceProfile = "bodyweight"
	ResistanceHybrid     ResistanceProfile = "hybrid"
)

var resistanceProfiles = []ResistanceProfile{
	ResistanceFreeWeight, ResistanceCable, ResistanceBand, ResistanceMachine, ResistanceBodyweight,
	ResistanceHybrid,
}

func (v ResistanceProfile) Valid() bool { return slices.Contains(resistanceProfiles, v) }

func ParseResistanceProfile(raw string) ResistanceProfile { return decode(raw, resistanceProfiles, "") }

type ForceVector string

const (
	VectorVertical          ForceVector = "vertical"
	VectorHorizontal        ForceVector = "horizontal"
	VectorDiagonal          ForceVector = "diagonal"
	VectorRotational        ForceVector = "rotational"
	VectorAnteriorPosterior ForceVector = "anteriorPosterior"
	VectorMedialLateral     ForceVector = "medialLateral"
	VectorOther             ForceVector = "other"
)

var forceVectors = []ForceVector{
	VectorVertical, VectorHorizontal, VectorDiagonal, VectorRotational, VectorAnteriorPosterior,
	VectorMedialLateral, VectorOther,
}

func (v ForceVector) Valid() bool { return slices.Contains(forceVectors, v) }

func ParseForceVector(raw string) ForceVector { return decode(raw, forceVectors, "") }
