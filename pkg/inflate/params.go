package inflate

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidParams is returned by Params.Validate.
var ErrInvalidParams = errors.New("invalid inflation parameters")

// Params configures one inflation. The zero value is not useful; start from
// DefaultParams.
type Params struct {
	// Thickness is the height of the highest point of the surface.
	Thickness float64 `yaml:"thickness" form:"thickness" json:"thickness"`
	// Flatness >= 0; larger values flatten the top of the profile.
	Flatness float64 `yaml:"flatness" form:"flatness" json:"flatness"`
	// Exponent > 0 controls how rounded the profile is.
	Exponent float64 `yaml:"exponent" form:"exponent" json:"exponent"`
	// Iterations of the relaxation; 0 means 25*max(cols,rows).
	Iterations int  `yaml:"iterations" form:"iterations" json:"iterations"`
	Hex        bool `yaml:"hex" form:"hex" json:"hex"`
	// Resolution is the number of cells along the larger side of the
	// polygon's bounding box. Ignored when Spacing is set.
	Resolution int     `yaml:"resolution" form:"resolution" json:"resolution"`
	Spacing    float64 `yaml:"spacing" form:"spacing" json:"spacing"`
	// Noise is the amplitude of the fractal surface texture; 0 disables it.
	Noise         float64 `yaml:"noise" form:"noise" json:"noise"`
	NoiseExponent float64 `yaml:"noiseExponent" form:"noiseExponent" json:"noiseExponent"`
	NoiseSeed     uint64  `yaml:"noiseSeed" form:"noiseSeed" json:"noiseSeed"`
	TwoSided      bool    `yaml:"twoSided" form:"twoSided" json:"twoSided"`
	FlatBase      bool    `yaml:"flatBase" form:"flatBase" json:"flatBase"`
	Trim          bool    `yaml:"trim" form:"trim" json:"trim"`
	// Workers bounds the goroutines used per phase; 0 means GOMAXPROCS.
	Workers int `yaml:"workers" form:"workers" json:"workers"`
}

// DefaultParams returns the default configuration.
func DefaultParams() Params {
	return Params{
		Thickness:     10,
		Exponent:      1,
		Hex:           true,
		Resolution:    15,
		NoiseExponent: 1.25,
		Trim:          true,
	}
}

// Validate checks ranges.
func (p Params) Validate() error {
	switch {
	case !(p.Thickness > 0):
		return fmt.Errorf("thickness %g must be positive: %w", p.Thickness, ErrInvalidParams)
	case p.Flatness < 0:
		return fmt.Errorf("flatness %g must not be negative: %w", p.Flatness, ErrInvalidParams)
	case !(p.Exponent > 0):
		return fmt.Errorf("exponent %g must be positive: %w", p.Exponent, ErrInvalidParams)
	case p.Iterations < 0:
		return fmt.Errorf("iterations %d must not be negative: %w", p.Iterations, ErrInvalidParams)
	case p.Noise < 0:
		return fmt.Errorf("noise %g must not be negative: %w", p.Noise, ErrInvalidParams)
	case p.Spacing < 0:
		return fmt.Errorf("spacing %g must not be negative: %w", p.Spacing, ErrInvalidParams)
	case p.Spacing == 0 && p.Resolution < 1:
		return fmt.Errorf("resolution %d must be at least 1: %w", p.Resolution, ErrInvalidParams)
	}
	return nil
}

// PerSide treats Thickness as the total height of the part: for a two-sided
// inflation each half gets half of it. Single-sided params are returned
// unchanged.
func (p Params) PerSide() Params {
	if p.TwoSided {
		p.Thickness *= 0.5
	}
	return p
}

// ParseParams decodes YAML over the defaults.
func ParseParams(data []byte) (Params, error) {
	p := DefaultParams()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Params{}, fmt.Errorf("inflate: parsing params: %w", err)
	}
	return p, p.Validate()
}

// LoadParams reads a YAML parameter file.
func LoadParams(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("inflate: reading params: %w", err)
	}
	return ParseParams(data)
}
