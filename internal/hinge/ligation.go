package hinge

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// LigationProfile is an empirically measured ligation frequency matrix
// for one ligase and incubation condition. Entry (o1, o2) is the count
// of observed ligation events between overhang o1 on one strand and
// overhang o2, read 5' to 3', on the other. Correct assembly events
// sit on the (o, revComp(o)) diagonal, everything else is mis-ligation
type LigationProfile struct {
	// Name of the profile, eg "t4_37c_1h"
	Name string

	// OverhangLen is the overhang length the profile was measured at
	OverhangLen int

	overhangs []string
	index     map[string]int
	counts    [][]float64
}

// Count returns the observed ligation count between two overhangs,
// 0 for overhangs outside the profile
func (p *LigationProfile) Count(o1, o2 string) float64 {
	i, ok := p.index[o1]
	if !ok {
		return 0
	}
	j, ok := p.index[o2]
	if !ok {
		return 0
	}
	return p.counts[i][j]
}

// Has returns whether the overhang appears in the profile
func (p *LigationProfile) Has(o string) bool {
	_, ok := p.index[o]
	return ok
}

// Overhangs returns the profile's overhangs in matrix order
func (p *LigationProfile) Overhangs() []string {
	return p.overhangs
}

// readProfile parses a ligation frequency matrix from a TSV. The first
// row is a header, "overhang" then every column overhang. Each later
// row is an overhang then its counts against every column. The matrix
// must be square over the same overhangs in the same order
func readProfile(name string, r io.Reader) (*LigationProfile, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	if !scanner.Scan() {
		return nil, fmt.Errorf("ligation profile %s: empty", name)
	}
	header := strings.Split(strings.TrimRight(scanner.Text(), "\r\n"), "\t")
	if len(header) < 2 || header[0] != "overhang" {
		return nil, fmt.Errorf("ligation profile %s: malformed header", name)
	}

	cols := header[1:]
	hangLen := len(cols[0])
	index := make(map[string]int, len(cols))
	for j, o := range cols {
		if len(o) != hangLen || !validBases(o) {
			return nil, fmt.Errorf("ligation profile %s: bad column overhang %q", name, o)
		}
		if _, dup := index[o]; dup {
			return nil, fmt.Errorf("ligation profile %s: duplicate column %s", name, o)
		}
		index[o] = j
	}

	counts := make([][]float64, len(cols))
	row := 0
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		if row >= len(cols) {
			return nil, fmt.Errorf("ligation profile %s: more rows than columns", name)
		}

		fields := strings.Split(line, "\t")
		if len(fields) != len(cols)+1 {
			return nil, fmt.Errorf("ligation profile %s: row %s has %d fields, want %d", name, fields[0], len(fields), len(cols)+1)
		}
		if fields[0] != cols[row] {
			return nil, fmt.Errorf("ligation profile %s: row %d is %s, want %s", name, row, fields[0], cols[row])
		}

		counts[row] = make([]float64, len(cols))
		for j, f := range fields[1:] {
			c, err := strconv.ParseFloat(f, 64)
			if err != nil || c < 0 {
				return nil, fmt.Errorf("ligation profile %s: bad count %q at %s x %s", name, f, fields[0], cols[j])
			}
			counts[row][j] = c
		}
		row++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ligation profile %s: %v", name, err)
	}
	if row != len(cols) {
		return nil, fmt.Errorf("ligation profile %s: %d rows, want %d", name, row, len(cols))
	}

	return &LigationProfile{
		Name:        name,
		OverhangLen: hangLen,
		overhangs:   cols,
		index:       index,
		counts:      counts,
	}, nil
}
