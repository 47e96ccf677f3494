// Package config is for the settings of a primer design request. They're
// unmarshalled from Viper (see: /cmd), which layers flags over environment
// variables over a settings file over the defaults here.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/jjtimmons/sdm/internal/thermo"
)

// Strategy is the topology of a primer pair.
type Strategy string

const (
	// BackToBack primers have abutting 5' ends (Q5 site-directed mutagenesis)
	BackToBack Strategy = "back-to-back"

	// Overlapping primers are each other's reverse complement (QuikChange)
	Overlapping Strategy = "overlapping"
)

// EnvPrefix prefixes every environment variable read into settings
const EnvPrefix = "SDM"

// Design is the immutable configuration of one design request. Build it once
// with Merge and pass it by value.
type Design struct {
	// Tm window (°C) for each primer
	MinTm float64 `json:"minTm" yaml:"minTm" mapstructure:"min-tm"`
	MaxTm float64 `json:"maxTm" yaml:"maxTm" mapstructure:"max-tm"`

	// GC window (%) for each primer
	MinGC float64 `json:"minGC" yaml:"minGC" mapstructure:"min-gc"`
	MaxGC float64 `json:"maxGC" yaml:"maxGC" mapstructure:"max-gc"`

	// bounds on the portion of a primer that anneals to the template
	MinAnnealingLength int `json:"minAnnealingLength" yaml:"minAnnealingLength" mapstructure:"min-annealing-length"`
	MaxAnnealingLength int `json:"maxAnnealingLength" yaml:"maxAnnealingLength" mapstructure:"max-annealing-length"`

	// bounds on the whole primer, mutation included
	MinPrimerLength int `json:"minPrimerLength" yaml:"minPrimerLength" mapstructure:"min-primer-length"`
	MaxPrimerLength int `json:"maxPrimerLength" yaml:"maxPrimerLength" mapstructure:"max-primer-length"`

	Strategy Strategy `json:"strategy" yaml:"strategy" mapstructure:"strategy"`

	// Organism breaks ties between codons in a codon change: "ecoli", "human" or empty
	Organism string `json:"organism" yaml:"organism" mapstructure:"organism"`

	// Circular templates are searched across their origin
	Circular bool `json:"circular" yaml:"circular" mapstructure:"circular"`

	// ConfineTo5Tails applies the Tm window to the 3' annealing portion only
	ConfineTo5Tails bool `json:"confineTo5Tails" yaml:"confineTo5Tails" mapstructure:"confine-to-5-tails"`

	// GCClampRequired rejects primers without a 3' G or C
	GCClampRequired bool `json:"gcClampRequired" yaml:"gcClampRequired" mapstructure:"gc-clamp"`

	CheckOffTargets bool `json:"checkOffTargets" yaml:"checkOffTargets" mapstructure:"check-off-targets"`

	// ExhaustiveSearch enriches the 100 cheapest pairs rather than 10
	ExhaustiveSearch bool `json:"exhaustiveSearch" yaml:"exhaustiveSearch" mapstructure:"exhaustive"`

	Conditions thermo.Conditions `json:"conditions" yaml:"conditions" mapstructure:"conditions"`
}

// Defaults are the settings of a request that overrides nothing.
func Defaults() Design {
	return Design{
		MinTm:              55,
		MaxTm:              72,
		MinGC:              40,
		MaxGC:              60,
		MinAnnealingLength: 15,
		MaxAnnealingLength: 35,
		MinPrimerLength:    18,
		MaxPrimerLength:    60,
		Strategy:           BackToBack,
		CheckOffTargets:    true,
		Conditions:         thermo.DefaultConditions(),
	}
}

// Override holds the settings a user set. Nil fields keep their default.
type Override struct {
	MinTm              *float64 `mapstructure:"min-tm"`
	MaxTm              *float64 `mapstructure:"max-tm"`
	MinGC              *float64 `mapstructure:"min-gc"`
	MaxGC              *float64 `mapstructure:"max-gc"`
	MinAnnealingLength *int     `mapstructure:"min-annealing-length"`
	MaxAnnealingLength *int     `mapstructure:"max-annealing-length"`
	MinPrimerLength    *int     `mapstructure:"min-primer-length"`
	MaxPrimerLength    *int     `mapstructure:"max-primer-length"`
	Strategy           *string  `mapstructure:"strategy"`
	Organism           *string  `mapstructure:"organism"`
	Circular           *bool    `mapstructure:"circular"`
	ConfineTo5Tails    *bool    `mapstructure:"confine-to-5-tails"`
	GCClampRequired    *bool    `mapstructure:"gc-clamp"`
	CheckOffTargets    *bool    `mapstructure:"check-off-targets"`
	ExhaustiveSearch   *bool    `mapstructure:"exhaustive"`

	// reaction conditions, concentrations in mol/L
	PrimerConc   *float64 `mapstructure:"primer-conc"`
	Na           *float64 `mapstructure:"na"`
	Mg           *float64 `mapstructure:"mg"`
	DanglingEnds *bool    `mapstructure:"dangling-ends"`
}

// Keys are every setting Load reads.
var Keys = []string{
	"min-tm", "max-tm", "min-gc", "max-gc",
	"min-annealing-length", "max-annealing-length",
	"min-primer-length", "max-primer-length",
	"strategy", "organism", "circular", "confine-to-5-tails",
	"gc-clamp", "check-off-targets", "exhaustive",
	"primer-conc", "na", "mg", "dangling-ends",
}

// Merge returns base with every set field of o applied. Neither is modified.
func Merge(base Design, o Override) Design {
	d := base
	setFloat(&d.MinTm, o.MinTm)
	setFloat(&d.MaxTm, o.MaxTm)
	setFloat(&d.MinGC, o.MinGC)
	setFloat(&d.MaxGC, o.MaxGC)
	setInt(&d.MinAnnealingLength, o.MinAnnealingLength)
	setInt(&d.MaxAnnealingLength, o.MaxAnnealingLength)
	setInt(&d.MinPrimerLength, o.MinPrimerLength)
	setInt(&d.MaxPrimerLength, o.MaxPrimerLength)
	if o.Strategy != nil {
		d.Strategy = Strategy(strings.ToLower(*o.Strategy))
	}
	if o.Organism != nil {
		d.Organism = strings.ToLower(*o.Organism)
	}
	setBool(&d.Circular, o.Circular)
	setBool(&d.ConfineTo5Tails, o.ConfineTo5Tails)
	setBool(&d.GCClampRequired, o.GCClampRequired)
	setBool(&d.CheckOffTargets, o.CheckOffTargets)
	setBool(&d.ExhaustiveSearch, o.ExhaustiveSearch)
	setFloat(&d.Conditions.PrimerConc, o.PrimerConc)
	setFloat(&d.Conditions.Na, o.Na)
	setFloat(&d.Conditions.Mg, o.Mg)
	setBool(&d.Conditions.DanglingEnds, o.DanglingEnds)
	return d
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// Validate returns every inconsistency in the settings, joined.
func (d Design) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...interface{}) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(d.MinTm < d.MaxTm, "min-tm (%.1f) must be below max-tm (%.1f)", d.MinTm, d.MaxTm)
	check(d.MinGC >= 0 && d.MaxGC <= 100 && d.MinGC <= d.MaxGC, "gc window %.1f-%.1f is not within 0-100", d.MinGC, d.MaxGC)
	check(d.MinAnnealingLength >= 2, "min-annealing-length (%d) must be at least 2", d.MinAnnealingLength)
	check(d.MinAnnealingLength <= d.MaxAnnealingLength, "min-annealing-length (%d) is above max-annealing-length (%d)", d.MinAnnealingLength, d.MaxAnnealingLength)
	check(d.MinPrimerLength >= 2, "min-primer-length (%d) must be at least 2", d.MinPrimerLength)
	check(d.MinPrimerLength <= d.MaxPrimerLength, "min-primer-length (%d) is above max-primer-length (%d)", d.MinPrimerLength, d.MaxPrimerLength)
	check(d.Strategy == BackToBack || d.Strategy == Overlapping, "strategy %q is not %s or %s", d.Strategy, BackToBack, Overlapping)
	check(d.Organism == "" || d.Organism == "ecoli" || d.Organism == "human", "organism %q is not ecoli or human", d.Organism)
	check(d.Conditions.PrimerConc > 0, "primer-conc must be positive")
	check(d.Conditions.Na >= 0 && d.Conditions.Mg >= 0, "salt concentrations can't be negative")
	check(d.Conditions.Na > 0 || d.Conditions.Mg > 0, "at least one of na and mg must be positive")

	return errors.Join(errs...)
}

// Setup points v at a settings file, if there is one, and the SDM_ environment.
func Setup(v *viper.Viper, settingsFile string) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if settingsFile == "" {
		return nil
	}
	v.SetConfigFile(settingsFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read settings file %s: %w", settingsFile, err)
	}
	return nil
}

// Load reads the settings that were explicitly set in v, by flag, environment
// or settings file, and merges them over the defaults.
func Load(v *viper.Viper) (Design, error) {
	set := viper.New()
	for _, key := range Keys {
		if v.IsSet(key) {
			set.Set(key, v.Get(key))
		}
	}

	var o Override
	if err := set.Unmarshal(&o); err != nil {
		return Design{}, fmt.Errorf("failed to decode settings: %w", err)
	}

	d := Merge(Defaults(), o)
	if err := d.Validate(); err != nil {
		return Design{}, err
	}
	return d, nil
}
