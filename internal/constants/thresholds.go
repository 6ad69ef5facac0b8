package constants

// Base classification ratios for the three clone tiers. The effective
// cutoff for a tier is its base ratio scaled by the run's sensitivity:
//
//	cutoff = base * sensitivity
//
// A pair is classified by the highest tier whose cutoff its similarity
// meets; tiers are mutually exclusive by construction.
const (
	// BaseType1Ratio is the base ratio for Type-1 (exact) clones.
	BaseType1Ratio = 1.0

	// BaseType2Ratio is the base ratio for Type-2 (renamed) clones.
	BaseType2Ratio = 0.9

	// BaseType3Ratio is the base ratio for Type-3 (modified) clones.
	BaseType3Ratio = 0.7
)

// Sensitivity bounds. Sensitivity is a single scalar in (0, 1] that
// tightens or relaxes all three cutoffs together; the lower bound is
// open, so any positive value up to MaxSensitivity is accepted. It is
// snapshotted at the start of a detection run and held fixed for the
// run's duration.
const (
	// MaxSensitivity is the highest accepted sensitivity (strictest).
	MaxSensitivity = 1.0

	// DefaultSensitivity matches the historical default setting.
	DefaultSensitivity = 0.9
)

// CloneTypeNames provides human-readable names for clone types
var CloneTypeNames = map[int]string{
	1: "Type-1 (Exact)",
	2: "Type-2 (Renamed)",
	3: "Type-3 (Modified)",
}
