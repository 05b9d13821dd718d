package hinge

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// ErrUnknownEnzyme is returned by GetEnzyme for a name that matches no
// supported enzyme, wrapped with the name and a suggestion if one is
// close enough
var ErrUnknownEnzyme = errors.New("unknown enzyme")

// Enzyme is a Type IIS restriction enzyme. Each cuts downstream of its
// recognition site and leaves a short single-stranded overhang whose
// sequence the assembly designer is free to choose
type Enzyme struct {
	// Name of the enzyme as sold
	Name string `json:"name"`

	// Recog is the enzyme's recognition sequence, 5' to 3'
	Recog string `json:"recognitionSite"`

	// Spacer is the number of bases between the recognition site and
	// the top-strand cut
	Spacer int `json:"spacer"`

	// OverhangLen is the length of the overhang left after digestion
	OverhangLen int `json:"overhangLength"`

	// profile names the packaged ligation frequency profile for this
	// enzyme's overhang length. Empty when none was measured
	profile string
}

// HasProfile returns whether a measured ligation profile ships for
// this enzyme. Without one, fidelity falls back to static estimates
func (e Enzyme) HasProfile() bool {
	return e.profile != ""
}

// enzymes is the supported Type IIS enzyme set, keyed by name.
// Esp3I, BpiI, AarI and BspQI are isoschizomer aliases
var enzymes = map[string]Enzyme{
	"BsaI":  {Name: "BsaI", Recog: "GGTCTC", Spacer: 1, OverhangLen: 4, profile: "t4_37c_1h"},
	"BsmBI": {Name: "BsmBI", Recog: "CGTCTC", Spacer: 1, OverhangLen: 4, profile: "t4_37c_1h"},
	"Esp3I": {Name: "Esp3I", Recog: "CGTCTC", Spacer: 1, OverhangLen: 4, profile: "t4_37c_1h"},
	"BbsI":  {Name: "BbsI", Recog: "GAAGAC", Spacer: 2, OverhangLen: 4, profile: "t4_37c_1h"},
	"BpiI":  {Name: "BpiI", Recog: "GAAGAC", Spacer: 2, OverhangLen: 4, profile: "t4_37c_1h"},
	"PaqCI": {Name: "PaqCI", Recog: "CACCTGC", Spacer: 4, OverhangLen: 4, profile: "t4_37c_1h"},
	"AarI":  {Name: "AarI", Recog: "CACCTGC", Spacer: 4, OverhangLen: 4, profile: "t4_37c_1h"},
	"BtgZI": {Name: "BtgZI", Recog: "GCGATG", Spacer: 10, OverhangLen: 4, profile: "t4_37c_1h"},
	"SapI":  {Name: "SapI", Recog: "GCTCTTC", Spacer: 1, OverhangLen: 3},
	"BspQI": {Name: "BspQI", Recog: "GCTCTTC", Spacer: 1, OverhangLen: 3},
}

// GetEnzyme returns the enzyme with the passed name. Lookup is case
// insensitive. On a miss the error names the closest known enzyme
func GetEnzyme(name string) (Enzyme, error) {
	if enz, ok := enzymes[name]; ok {
		return enz, nil
	}

	for n, enz := range enzymes {
		if strings.EqualFold(n, name) {
			return enz, nil
		}
	}

	closest := ""
	closestDist := len(name) + 1
	for n := range enzymes {
		if dist := ld(name, n, true); dist < closestDist {
			closest = n
			closestDist = dist
		}
	}

	if closestDist <= 2 {
		return Enzyme{}, fmt.Errorf("%w %s, did you mean %s?", ErrUnknownEnzyme, name, closest)
	}
	return Enzyme{}, fmt.Errorf("%w %s", ErrUnknownEnzyme, name)
}

// EnzymeNames returns the names of every supported enzyme, sorted
func EnzymeNames() []string {
	names := make([]string, 0, len(enzymes))
	for name := range enzymes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EnzymesCmd writes a table of every supported enzyme to stdout: its
// cut site in enzyme catalog notation, the overhang length it leaves
// and the ligation profile behind its fidelity predictions.
func EnzymesCmd(cmd *cobra.Command, args []string) {
	// from https://golang.org/pkg/text/tabwriter/
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.TabIndent)

	fmt.Fprintf(w, "name\tsite\toverhang\tprofile\t\n")
	for _, name := range EnzymeNames() {
		enz := enzymes[name]

		profile := "static estimates"
		if enz.HasProfile() {
			profile = enz.profile
		}

		fmt.Fprintf(
			w, "%s\t%s(%d/%d)\t%dbp\t%s\n",
			enz.Name, enz.Recog, enz.Spacer, enz.Spacer+enz.OverhangLen, enz.OverhangLen, profile,
		)
	}
	w.Flush()
}

// ld compares two strings and returns the levenshtein distance between them
func ld(s, t string, ignoreCase bool) int {
	if ignoreCase {
		s = strings.ToLower(s)
		t = strings.ToLower(t)
	}

	d := make([][]int, len(s)+1)
	for i := range d {
		d[i] = make([]int, len(t)+1)
	}
	for i := range d {
		d[i][0] = i
	}
	for j := range d[0] {
		d[0][j] = j
	}
	for j := 1; j <= len(t); j++ {
		for i := 1; i <= len(s); i++ {
			if s[i-1] == t[j-1] {
				d[i][j] = d[i-1][j-1]
			} else {
				min := d[i-1][j]
				if d[i][j-1] < min {
					min = d[i][j-1]
				}
				if d[i-1][j-1] < min {
					min = d[i-1][j-1]
				}
				d[i][j] = min + 1
			}
		}
	}
	return d[len(s)][len(t)]
}
