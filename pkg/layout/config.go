package layout

import (
	"fmt"

	errs "github.com/matzehuels/strata/pkg/errors"
)

// Default values for [Config].
const (
	DefaultDummyWidth         = 1
	DefaultDummyHeight        = 1
	DefaultXOffset            = 9
	DefaultLayerOffset        = 30
	DefaultMaxLayerLength     = -1
	DefaultMinLayerDifference = 1
	DefaultCrossingIterations = 2
	DefaultSweepIterations    = 1
	DefaultVIPBonus           = 10
)

// Combine selects how long edges that share an endpoint are merged into
// common dummy chains.
type Combine int

const (
	// CombineNone gives every long edge its own dummy chain.
	CombineNone Combine = iota
	// CombineSameInputs would merge long edges that share a target port.
	// It is recognised but not implemented.
	CombineSameInputs
	// CombineSameOutputs merges long edges that leave the same source port.
	CombineSameOutputs
)

var combineNames = map[Combine]string{
	CombineNone:        "none",
	CombineSameInputs:  "same-inputs",
	CombineSameOutputs: "same-outputs",
}

// String returns the configuration name of the policy.
func (c Combine) String() string {
	if s, ok := combineNames[c]; ok {
		return s
	}
	return fmt.Sprintf("combine(%d)", int(c))
}

// ParseCombine parses a policy name as produced by [Combine.String].
func ParseCombine(s string) (Combine, error) {
	for c, name := range combineNames {
		if name == s {
			return c, nil
		}
	}
	return CombineNone, errs.New(errs.ErrCodeInvalidConfig,
		"invalid combine policy: %q (must be one of: none, same-outputs, same-inputs)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Combine) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Combine) UnmarshalText(text []byte) error {
	parsed, err := ParseCombine(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Config holds the engine options. The zero value is not usable; start from
// [DefaultConfig].
type Config struct {
	Combine Combine `json:"combine" toml:"combine"`

	// MaxLayerLength splits dummy chains longer than this many layers into a
	// top and a bottom stub when Combine is CombineSameOutputs. Negative
	// means unlimited.
	MaxLayerLength int `json:"max_layer_length" toml:"max_layer_length"`

	// MinLayerDifference is the minimum layer distance of every edge.
	MinLayerDifference int `json:"min_layer_difference" toml:"min_layer_difference"`

	DummyWidth  int `json:"dummy_width" toml:"dummy_width"`
	DummyHeight int `json:"dummy_height" toml:"dummy_height"`

	// XOffset is the horizontal gap between neighbors in a layer.
	XOffset int `json:"x_offset" toml:"x_offset"`
	// LayerOffset is the vertical gap between layer bands.
	LayerOffset int `json:"layer_offset" toml:"layer_offset"`

	CrossingIterations int `json:"crossing_iterations" toml:"crossing_iterations"`
	SweepIterations    int `json:"sweep_iterations" toml:"sweep_iterations"`

	// VIPBonus is the weight of a VIP edge in crossing reduction.
	VIPBonus int `json:"vip_bonus" toml:"vip_bonus"`

	// CheckInvariants verifies the working graph after every phase.
	CheckInvariants bool `json:"check_invariants,omitempty" toml:"check_invariants"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		Combine:            CombineNone,
		MaxLayerLength:     DefaultMaxLayerLength,
		MinLayerDifference: DefaultMinLayerDifference,
		DummyWidth:         DefaultDummyWidth,
		DummyHeight:        DefaultDummyHeight,
		XOffset:            DefaultXOffset,
		LayerOffset:        DefaultLayerOffset,
		CrossingIterations: DefaultCrossingIterations,
		SweepIterations:    DefaultSweepIterations,
		VIPBonus:           DefaultVIPBonus,
	}
}

// Validate checks that the configuration can be used by the engine.
// Unsupported policies are reported by [Engine.Layout], not here, so that a
// configuration file naming one still loads.
func (c Config) Validate() error {
	if _, ok := combineNames[c.Combine]; !ok {
		return errs.Wrap(errs.ErrCodeInvalidConfig, ErrInvalidConfig, "unknown combine policy %d", int(c.Combine))
	}
	if c.MinLayerDifference < 1 {
		return errs.Wrap(errs.ErrCodeInvalidConfig, ErrInvalidConfig, "min layer difference must be >= 1, got %d", c.MinLayerDifference)
	}
	if c.MaxLayerLength >= 0 && c.MaxLayerLength <= 2 {
		return errs.Wrap(errs.ErrCodeInvalidConfig, ErrInvalidConfig, "max layer length must be > 2 or negative, got %d", c.MaxLayerLength)
	}
	if c.DummyWidth < 1 || c.DummyHeight < 1 {
		return errs.Wrap(errs.ErrCodeInvalidConfig, ErrInvalidConfig, "dummy size must be positive, got %dx%d", c.DummyWidth, c.DummyHeight)
	}
	if c.XOffset < 0 || c.LayerOffset < 0 {
		return errs.Wrap(errs.ErrCodeInvalidConfig, ErrInvalidConfig, "offsets must be non-negative")
	}
	if c.CrossingIterations < 0 || c.SweepIterations < 0 {
		return errs.Wrap(errs.ErrCodeInvalidConfig, ErrInvalidConfig, "iteration counts must be non-negative")
	}
	if c.VIPBonus < 1 {
		return errs.Wrap(errs.ErrCodeInvalidConfig, ErrInvalidConfig, "vip bonus must be >= 1, got %d", c.VIPBonus)
	}
	return nil
}
