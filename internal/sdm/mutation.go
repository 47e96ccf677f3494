package sdm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jjtimmons/sdm/internal/seq"
)

// MutationType is the kind of change made to a template.
type MutationType string

const (
	// Substitution replaces one or more bases
	Substitution MutationType = "substitution"

	// Insertion adds bases before Position
	Insertion MutationType = "insertion"

	// Deletion removes Length bases starting at Position
	Deletion MutationType = "deletion"

	// CodonChange swaps the codon starting at Position for one encoding AminoAcid
	CodonChange MutationType = "codon-change"
)

// Mutation describes a change to a template. Positions are 0-based.
type Mutation struct {
	Type     MutationType `json:"type" yaml:"type"`
	Position int          `json:"position" yaml:"position"`

	// Bases are the new bases of a substitution or insertion
	Bases string `json:"bases,omitempty" yaml:"bases,omitempty"`

	// Length is the number of bases removed by a deletion
	Length int `json:"length,omitempty" yaml:"length,omitempty"`

	// AminoAcid is the one letter target of a codon change
	AminoAcid string `json:"aminoAcid,omitempty" yaml:"aminoAcid,omitempty"`
}

// ParseMutation reads a mutation from its short notation:
//
//	sub:10:G      substitute the base at 10 with G
//	ins:10:GGC    insert GGC before 10
//	del:10:3      delete 3 bases starting at 10
//	codon:30:K    change the codon starting at 30 to one encoding lysine
func ParseMutation(s string) (Mutation, error) {
	fields := strings.Split(strings.TrimSpace(s), ":")
	if len(fields) != 3 {
		return Mutation{}, &InputError{Field: "mutation", Reason: fmt.Sprintf("%q is not type:position:payload", s)}
	}

	pos, err := strconv.Atoi(fields[1])
	if err != nil {
		return Mutation{}, &InputError{Field: "mutation", Reason: fmt.Sprintf("position %q is not an integer", fields[1]), Err: err}
	}

	payload := strings.ToUpper(fields[2])
	switch strings.ToLower(fields[0]) {
	case "sub", "substitution":
		return Mutation{Type: Substitution, Position: pos, Bases: payload}, nil
	case "ins", "insertion":
		return Mutation{Type: Insertion, Position: pos, Bases: payload}, nil
	case "del", "deletion":
		n, err := strconv.Atoi(fields[2])
		if err != nil {
			return Mutation{}, &InputError{Field: "mutation", Reason: fmt.Sprintf("deletion length %q is not an integer", fields[2]), Err: err}
		}
		return Mutation{Type: Deletion, Position: pos, Length: n}, nil
	case "codon", "codon-change":
		return Mutation{Type: CodonChange, Position: pos, AminoAcid: payload}, nil
	}
	return Mutation{}, &InputError{Field: "mutation", Reason: fmt.Sprintf("unknown mutation type %q", fields[0])}
}

// String returns the mutation in the notation ParseMutation reads.
func (m Mutation) String() string {
	switch m.Type {
	case Substitution:
		return fmt.Sprintf("sub:%d:%s", m.Position, m.Bases)
	case Insertion:
		return fmt.Sprintf("ins:%d:%s", m.Position, m.Bases)
	case Deletion:
		return fmt.Sprintf("del:%d:%d", m.Position, m.Length)
	case CodonChange:
		return fmt.Sprintf("codon:%d:%s", m.Position, m.AminoAcid)
	}
	return string(m.Type)
}

// InputError is a problem with the template, mutation or configuration. No
// search is attempted when one is returned.
type InputError struct {
	Field  string
	Reason string
	Err    error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// Template is the sequence being mutated.
type Template struct {
	Sequence string `json:"sequence" yaml:"sequence"`
	Circular bool   `json:"circular" yaml:"circular"`
}

// NewTemplate cleans and validates a template sequence.
func NewTemplate(s string, circular bool) (Template, error) {
	cleaned, err := seq.Clean(s)
	if err != nil {
		return Template{}, &InputError{Field: "template", Reason: err.Error(), Err: err}
	}
	return Template{Sequence: cleaned, Circular: circular}, nil
}

// MutatedSequence is a template after a mutation is applied.
type MutatedSequence struct {
	Sequence string `json:"sequence" yaml:"sequence"`

	// Start and End bound the changed bases [Start, End) in Sequence.
	// They're equal for a deletion, at the junction.
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`

	// Delta is len(Sequence) - len(template)
	Delta int `json:"delta" yaml:"delta"`

	// Codon is the codon chosen for a codon change
	Codon string `json:"codon,omitempty" yaml:"codon,omitempty"`
}

// Apply makes the mutation on a template. organism is only used to choose
// between equally close codons for a codon change.
func (m Mutation) Apply(t Template, organism string) (*MutatedSequence, error) {
	o := t.Sequence
	n := len(o)
	if n == 0 {
		return nil, &InputError{Field: "template", Reason: "empty sequence"}
	}
	if m.Position < 0 || m.Position > n {
		return nil, &InputError{Field: "mutation", Reason: fmt.Sprintf("position %d is outside the %d bp template", m.Position, n)}
	}

	p := m.Position
	switch m.Type {
	case Substitution:
		bases, err := payload(m.Bases)
		if err != nil {
			return nil, err
		}
		if p+len(bases) > n {
			return nil, &InputError{Field: "mutation", Reason: fmt.Sprintf("substitution of %d bp at %d runs past the template's end", len(bases), p)}
		}
		if o[p:p+len(bases)] == bases {
			return nil, &InputError{Field: "mutation", Reason: fmt.Sprintf("%s at %d is identical to the template", bases, p)}
		}
		return substitute(o, p, bases, ""), nil

	case Insertion:
		bases, err := payload(m.Bases)
		if err != nil {
			return nil, err
		}
		return &MutatedSequence{
			Sequence: o[:p] + bases + o[p:],
			Start:    p,
			End:      p + len(bases),
			Delta:    len(bases),
		}, nil

	case Deletion:
		if m.Length < 1 {
			return nil, &InputError{Field: "mutation", Reason: "deletion length must be at least 1"}
		}
		if p+m.Length > n {
			return nil, &InputError{Field: "mutation", Reason: fmt.Sprintf("deletion of %d bp at %d runs past the template's end", m.Length, p)}
		}
		if m.Length >= n {
			return nil, &InputError{Field: "mutation", Reason: "deletion removes the whole template"}
		}
		return &MutatedSequence{
			Sequence: o[:p] + o[p+m.Length:],
			Start:    p,
			End:      p,
			Delta:    -m.Length,
		}, nil

	case CodonChange:
		if p+3 > n {
			return nil, &InputError{Field: "mutation", Reason: fmt.Sprintf("codon at %d runs past the template's end", p)}
		}
		if len(m.AminoAcid) != 1 {
			return nil, &InputError{Field: "mutation", Reason: fmt.Sprintf("amino acid %q is not a single letter", m.AminoAcid)}
		}
		aa := strings.ToUpper(m.AminoAcid)[0]
		original := o[p : p+3]
		if current, ok := seq.AminoAcid(original); ok && current == aa {
			return nil, &InputError{Field: "mutation", Reason: fmt.Sprintf("codon %s at %d already encodes %c", original, p, aa)}
		}
		codon, err := seq.CodonTable{}.Choose(original, aa, organism)
		if err != nil {
			return nil, &InputError{Field: "mutation", Reason: err.Error(), Err: err}
		}

		// only the bases that differ are the mutated region
		first, last := 0, 2
		for first < 3 && codon[first] == original[first] {
			first++
		}
		for last > first && codon[last] == original[last] {
			last--
		}
		return substitute(o, p+first, codon[first:last+1], codon), nil
	}
	return nil, &InputError{Field: "mutation", Reason: fmt.Sprintf("unknown mutation type %q", m.Type)}
}

func substitute(o string, p int, bases, codon string) *MutatedSequence {
	return &MutatedSequence{
		Sequence: o[:p] + bases + o[p+len(bases):],
		Start:    p,
		End:      p + len(bases),
		Codon:    codon,
	}
}

func payload(bases string) (string, error) {
	if bases == "" {
		return "", &InputError{Field: "mutation", Reason: "no bases given"}
	}
	cleaned, err := seq.Clean(bases)
	if err != nil {
		return "", &InputError{Field: "mutation", Reason: err.Error(), Err: err}
	}
	return cleaned, nil
}

// working is the sequence a search runs over. For circular templates with a
// mutation near an edge it's the mutated plasmid flanked by a copy of the
// original on either side.
type working struct {
	// seq is the mutated sequence primers are cut from
	seq string

	// ref is the original template, aligned to seq up to the mutated region
	ref string

	// start and end bound the mutated region in seq
	start, end int

	delta int

	// shift is subtracted from seq indexes to get mutated sequence coordinates
	shift int

	// product is the mutated sequence without any doubling
	product string

	circular bool
}

func newWorking(t Template, mut *MutatedSequence, circular bool, margin int) *working {
	w := &working{
		seq:      mut.Sequence,
		ref:      t.Sequence,
		start:    mut.Start,
		end:      mut.End,
		delta:    mut.Delta,
		product:  mut.Sequence,
		circular: circular,
	}

	n := len(t.Sequence)
	if circular && (mut.Start < margin || len(mut.Sequence)-mut.End < margin) {
		w.seq = t.Sequence + mut.Sequence + t.Sequence
		w.ref = t.Sequence + t.Sequence + t.Sequence
		w.start += n
		w.end += n
		w.shift = n
	}
	return w
}

// refIndex maps an index in seq outside the mutated region onto ref.
func (w *working) refIndex(i int) int {
	if i < w.start {
		return i
	}
	return i - w.delta
}

// normalize maps an index in seq into [0, len(product)).
func (w *working) normalize(i int) int {
	m := len(w.product)
	j := (i - w.shift) % m
	if j < 0 {
		j += m
	}
	return j
}
