package sdm

import (
	"math"
	"time"

	"github.com/jjtimmons/sdm/config"
)

// Step is a single thermocycler step.
type Step struct {
	Name     string  `json:"name" yaml:"name"`
	TempC    float64 `json:"tempC" yaml:"tempC"`
	Duration string  `json:"duration" yaml:"duration"`
}

// Protocol is the PCR and cleanup protocol for a design.
type Protocol struct {
	Name string `json:"name" yaml:"name"`

	// AnnealingTemp in °C
	AnnealingTemp float64 `json:"annealingTemp" yaml:"annealingTemp"`

	// Cycles is how many times CycleSteps repeat
	Cycles int `json:"cycles" yaml:"cycles"`

	Initial    []Step   `json:"initial" yaml:"initial"`
	CycleSteps []Step   `json:"cycleSteps" yaml:"cycleSteps"`
	Final      []Step   `json:"final" yaml:"final"`
	Notes      []string `json:"notes" yaml:"notes"`
}

// protocol builds the cycling conditions for a pair amplifying a product of
// productLength bp.
func protocol(p *Pair, m Mutation, productLength int) Protocol {
	kb := float64(productLength) / 1000
	if p.Strategy == config.Overlapping {
		return quikChange(p, m, kb)
	}
	return q5(p, kb)
}

// q5 is exponential whole-plasmid amplification followed by kinase, ligase
// and DpnI treatment.
func q5(p *Pair, kb float64) Protocol {
	ta := math.Min(math.Min(p.Forward.Tm, p.Reverse.Tm)+3, 72)
	extension := time.Duration(math.Max(20, math.Ceil(kb*30))) * time.Second

	return Protocol{
		Name:          "Q5 site-directed mutagenesis",
		AnnealingTemp: round1(ta),
		Cycles:        25,
		Initial: []Step{
			{Name: "initial denaturation", TempC: 98, Duration: duration(30 * time.Second)},
		},
		CycleSteps: []Step{
			{Name: "denaturation", TempC: 98, Duration: duration(10 * time.Second)},
			{Name: "annealing", TempC: round1(ta), Duration: duration(20 * time.Second)},
			{Name: "extension", TempC: 72, Duration: duration(extension)},
		},
		Final: []Step{
			{Name: "final extension", TempC: 72, Duration: duration(2 * time.Minute)},
			{Name: "hold", TempC: 4, Duration: "indefinite"},
		},
		Notes: []string{
			"12.5 µL Q5 Hot Start High-Fidelity 2X Master Mix, 1.25 µL of each 10 µM primer, 1 µL template (1-25 ng), water to 25 µL",
			"KLD: 1 µL PCR product, 5 µL 2X KLD reaction buffer, 1 µL 10X KLD enzyme mix, 3 µL water, 5 min at room temperature",
			"transform 5 µL of the KLD mix into 50 µL chemically competent E. coli",
		},
	}
}

// quikChange is linear amplification with overlapping primers followed by
// DpnI digestion of the methylated parent. Annealing is 5 °C under the cooler
// primer, kept within 55-68 °C.
func quikChange(p *Pair, m Mutation, kb float64) Protocol {
	ta := math.Max(55, math.Min(math.Min(p.Forward.Tm, p.Reverse.Tm)-5, 68))

	cycles := 18
	switch {
	case m.Type == Substitution && len(m.Bases) == 1:
		cycles = 12
	case m.Type == CodonChange, m.Type == Substitution && len(m.Bases) <= 3:
		cycles = 16
	}
	extension := time.Duration(math.Max(1, math.Ceil(kb))) * time.Minute

	return Protocol{
		Name:          "QuikChange site-directed mutagenesis",
		AnnealingTemp: round1(ta),
		Cycles:        cycles,
		Initial: []Step{
			{Name: "initial denaturation", TempC: 95, Duration: duration(30 * time.Second)},
		},
		CycleSteps: []Step{
			{Name: "denaturation", TempC: 95, Duration: duration(30 * time.Second)},
			{Name: "annealing", TempC: round1(ta), Duration: duration(time.Minute)},
			{Name: "extension", TempC: 68, Duration: duration(extension)},
		},
		Final: []Step{
			{Name: "hold", TempC: 4, Duration: "indefinite"},
		},
		Notes: []string{
			"5 µL 10X reaction buffer, 5-50 ng template, 125 ng of each primer, 1 µL dNTP mix, water to 50 µL, then 1 µL PfuUltra HF DNA polymerase",
			"DpnI: add 1 µL DpnI (10 U/µL) directly to the amplification and incubate 1 h at 37 °C",
			"transform 1 µL of the DpnI-treated DNA into XL1-Blue supercompetent cells",
		},
	}
}

func duration(d time.Duration) string {
	return d.String()
}
