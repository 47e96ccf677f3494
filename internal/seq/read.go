package seq

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Record is a single sequence read from a file.
type Record struct {
	ID  string
	Seq string

	// Circular is set by a FASTA header or GenBank LOCUS line that says "circular"
	Circular bool
}

var (
	// numbering and whitespace in GenBank ORIGIN blocks and wrapped FASTA
	layoutChars = regexp.MustCompile(`[\s\d/]`)

	locusID = regexp.MustCompile(`LOCUS[ \t]+([^ \t\n]+)`)
)

// Read parses a FASTA or GenBank file by its path. FASTA is recognized by its
// extension or a leading '>', GenBank by its extension or a LOCUS line.
func Read(path string) ([]Record, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	contents := string(dat)

	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == ".fa" || ext == ".fasta" || strings.HasPrefix(strings.TrimSpace(contents), ">"):
		return ReadFASTA(contents)
	case ext == ".gb" || ext == ".gbk" || ext == ".genbank" || strings.HasPrefix(strings.TrimSpace(contents), "LOCUS"):
		return ReadGenbank(contents)
	}

	// a bare sequence
	s, err := Clean(contents)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return []Record{{ID: filepath.Base(path), Seq: s}}, nil
}

// ReadFASTA parses a multi-FASTA file.
func ReadFASTA(contents string) ([]Record, error) {
	lines := strings.Split(contents, "\n")

	var records []Record
	var body []string
	flush := func() error {
		if len(records) == 0 {
			return nil
		}
		s, err := Clean(layoutChars.ReplaceAllString(strings.Join(body, ""), ""))
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", records[len(records)-1].ID, err)
		}
		records[len(records)-1].Seq = s
		body = body[:0]
		return nil
	}

	for _, line := range lines {
		if strings.HasPrefix(line, ">") {
			if err := flush(); err != nil {
				return nil, err
			}
			header := strings.TrimSpace(line[1:])
			r := Record{Circular: strings.Contains(strings.ToLower(header), "circular")}
			if fields := strings.Fields(header); len(fields) > 0 {
				r.ID = fields[0]
			}
			records = append(records, r)
			continue
		}
		body = append(body, line)
	}
	if err := flush(); err != nil {
		return nil, err
	}

	if len(records) < 1 {
		return nil, fmt.Errorf("failed to parse a sequence from FASTA without a '>' header")
	}
	return records, nil
}

// ReadGenbank parses the sequence of a GenBank file. Features are ignored.
func ReadGenbank(contents string) ([]Record, error) {
	split := strings.Split(contents, "ORIGIN")
	if len(split) != 2 {
		return nil, fmt.Errorf("failed to parse GenBank: expected one ORIGIN section, found %d", len(split)-1)
	}

	header := split[0]
	id := locusID.FindStringSubmatch(header)
	if id == nil {
		return nil, fmt.Errorf("failed to parse GenBank: no LOCUS line")
	}

	s, err := Clean(layoutChars.ReplaceAllString(split[1], ""))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", id[1], err)
	}

	locus := header
	if i := strings.Index(header, "\n"); i >= 0 {
		locus = header[:i]
	}
	return []Record{{
		ID:       id[1],
		Seq:      s,
		Circular: strings.Contains(strings.ToLower(locus), "circular"),
	}}, nil
}
