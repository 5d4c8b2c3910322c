package config

import "fmt"

// Range is a closed integer interval [Min, Max].
type Range struct {
	Min int `yaml:"min" toml:"min"`
	Max int `yaml:"max" toml:"max"`
}

// Contains reports whether v lies in the range.
func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d]", r.Min, r.Max)
}

// Tier is a named difficulty level.
type Tier int

const (
	TierEasy Tier = iota
	TierNormal
	TierHard
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierEasy:
		return "easy"
	case TierNormal:
		return "normal"
	case TierHard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseTier converts a tier name to a Tier.
func ParseTier(name string) (Tier, error) {
	switch name {
	case "easy":
		return TierEasy, nil
	case "normal":
		return TierNormal, nil
	case "hard":
		return TierHard, nil
	default:
		return TierEasy, fmt.Errorf("config: unknown tier %q", name)
	}
}

// TierParams are the placement ranges of one tier.
type TierParams struct {
	Spacing Range `yaml:"spacing" toml:"spacing"` // Horizontal distance to the previous pair
	Gap     Range `yaml:"gap" toml:"gap"`         // Vertical opening between the segments
}

// Tiers holds the parameters of every tier.
type Tiers struct {
	Easy   TierParams `yaml:"easy" toml:"easy"`
	Normal TierParams `yaml:"normal" toml:"normal"`
	Hard   TierParams `yaml:"hard" toml:"hard"`
}

// DifficultyTable maps tiers to placement parameters and scores to tiers.
type DifficultyTable struct {
	NormalAt int   `yaml:"normal_at" toml:"normal_at"` // Score at which normal starts
	HardAt   int   `yaml:"hard_at" toml:"hard_at"`     // Score at which hard starts
	Tiers    Tiers `yaml:"tiers" toml:"tiers"`
}

// ParametersFor returns the placement ranges of a tier.
// Unknown tiers fall back to easy.
func (d DifficultyTable) ParametersFor(t Tier) TierParams {
	switch t {
	case TierNormal:
		return d.Tiers.Normal
	case TierHard:
		return d.Tiers.Hard
	default:
		return d.Tiers.Easy
	}
}

// TierFor returns the tier a score qualifies for.
func (d DifficultyTable) TierFor(score int) Tier {
	switch {
	case score >= d.HardAt:
		return TierHard
	case score >= d.NormalAt:
		return TierNormal
	default:
		return TierEasy
	}
}

// Next returns the tier for score without ever going below current.
func (d DifficultyTable) Next(current Tier, score int) Tier {
	return max(current, d.TierFor(score))
}
