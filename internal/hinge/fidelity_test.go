package hinge

import (
	"math"
	"strings"
	"testing"

	"github.com/hingebio/hinge/config"
)

func testProfile(t *testing.T) *LigationProfile {
	t.Helper()

	p, err := readProfile("small", strings.NewReader(smallProfile))
	if err != nil {
		t.Fatalf("readProfile() error = %v", err)
	}
	return p
}

func Test_fidelityModel_junctionFidelity(t *testing.T) {
	p := testProfile(t)

	type fields struct {
		profile *LigationProfile
		legacy  bool
	}
	type args struct {
		o   string
		set []string
	}
	tests := []struct {
		name   string
		fields fields
		args   args
		want   float64
	}{
		{
			"alone in the pot",
			fields{p, false},
			args{
				o:   "AACG",
				set: []string{"AACG"},
			},
			480.0 / 482.0,
		},
		{
			"against a second overhang",
			fields{p, false},
			args{
				o:   "AACG",
				set: []string{"AACG", "GGAC"},
			},
			480.0 / 489.0,
		},
		{
			"legacy whole profile denominator",
			fields{p, true},
			args{
				o:   "AACG",
				set: []string{"AACG"},
			},
			480.0 / 489.0,
		},
		{
			"no profile falls back to the static table",
			fields{nil, false},
			args{
				o:   "ATG",
				set: []string{"ATG"},
			},
			0.94,
		},
		{
			"no profile, overhang off the static table",
			fields{nil, false},
			args{
				o:   "ACTG",
				set: []string{"ACTG"},
			},
			fallbackFidelityDefault,
		},
		{
			"overhang outside the profile",
			fields{p, false},
			args{
				o:   "TTTC",
				set: []string{"TTTC"},
			},
			fallbackFidelityDefault,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := config.New()
			conf.FidelityLegacy = tt.fields.legacy

			m := newFidelityModel(tt.fields.profile, conf)
			if got := m.junctionFidelity(tt.args.o, tt.args.set); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("junctionFidelity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_fidelityModel_fallbackSetting(t *testing.T) {
	conf := config.New()
	conf.FidelityFallback = 0.6

	m := newFidelityModel(nil, conf)
	if got := m.junctionFidelity("ACTG", []string{"ACTG"}); got != 0.6 {
		t.Errorf("junctionFidelity() = %v, want the configured fallback 0.6", got)
	}

	// the static table still wins over the constant
	if got := m.junctionFidelity("ATG", []string{"ATG"}); got != 0.94 {
		t.Errorf("junctionFidelity() = %v, want the table value 0.94", got)
	}
}

func Test_fidelityModel_zeroCounts(t *testing.T) {
	// AAAC saw no ligation events at all
	zero := `overhang	AAAC	GTTT
AAAC	0	0
GTTT	0	12
`
	p, err := readProfile("zero", strings.NewReader(zero))
	if err != nil {
		t.Fatalf("readProfile() error = %v", err)
	}

	m := newFidelityModel(p, config.New())
	if got := m.junctionFidelity("AAAC", []string{"AAAC"}); got != fallbackFidelityDefault {
		t.Errorf("junctionFidelity() with zero counts = %v, want fallback %v", got, fallbackFidelityDefault)
	}
}

func Test_fidelityModel_setFidelity(t *testing.T) {
	m := newFidelityModel(testProfile(t), config.New())

	// product of each member's fidelity against the set
	want := (480.0 / 489.0) * (510.0 / 514.0)
	if got := m.setFidelity([]string{"AACG", "GGAC"}); math.Abs(got-want) > 1e-9 {
		t.Errorf("setFidelity() = %v, want %v", got, want)
	}

	if got := m.setFidelity(nil); got != 1.0 {
		t.Errorf("setFidelity(nil) = %v, want 1.0", got)
	}

	// a singleton set is just its member's junction fidelity
	single := m.setFidelity([]string{"AACG"})
	if want := m.junctionFidelity("AACG", []string{"AACG"}); single != want {
		t.Errorf("setFidelity() singleton = %v, want %v", single, want)
	}

	// growing the set can only hold or lower fidelity
	pair := m.setFidelity([]string{"AACG", "GGAC"})
	if pair > single {
		t.Errorf("setFidelity grew from %v to %v with an added overhang", single, pair)
	}
}

func Test_fidelityModel_efficiency(t *testing.T) {
	m := newFidelityModel(nil, config.New())

	type args struct {
		o string
	}
	tests := []struct {
		name string
		args args
		want float64
	}{
		{
			"unremarkable overhang",
			args{"GCAT"},
			1.0,
		},
		{
			"known poor overhang dampens its matching patterns",
			args{"GGGG"},
			0.35 * (1 - poorPatternStrength*(1-homopolymerEfficiency)) *
				(1 - poorPatternStrength*(1-highGCEfficiency)),
		},
		{
			"known poor overhang with one matching pattern",
			args{"TTAT"},
			0.50 * (1 - poorPatternStrength*(1-lowGCEfficiency)),
		},
		{
			"all GC",
			args{"GCCG"},
			highGCEfficiency,
		},
		{
			"no GC",
			args{"ATTA"},
			lowGCEfficiency,
		},
		{
			"T..A pattern",
			args{"TGGA"},
			tnnaEfficiency,
		},
		{
			"pattern factors stack",
			args{"TAAA"},
			tnnaEfficiency * lowGCEfficiency,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.efficiency(tt.args.o); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("efficiency(%s) = %v, want %v", tt.args.o, got, tt.want)
			}
		})
	}
}
