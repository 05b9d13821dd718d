package hinge

import (
	"errors"
	"strings"
	"testing"
)

func TestGetEnzyme(t *testing.T) {
	type args struct {
		name string
	}
	tests := []struct {
		name    string
		args    args
		want    string
		wantErr bool
	}{
		{
			"find BsaI",
			args{
				name: "BsaI",
			},
			"GGTCTC",
			false,
		},
		{
			"case insensitive lookup",
			args{
				name: "bsmbi",
			},
			"CGTCTC",
			false,
		},
		{
			"suggest on typo",
			args{
				name: "BsaII",
			},
			"",
			true,
		},
		{
			"unknown enzyme",
			args{
				name: "EcoRI",
			},
			"",
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetEnzyme(tt.args.name)
			if (err != nil) != tt.wantErr {
				t.Errorf("GetEnzyme() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got.Recog != tt.want {
				t.Errorf("GetEnzyme().Recog = %v, want %v", got.Recog, tt.want)
			}
		})
	}
}

func TestGetEnzyme_suggestion(t *testing.T) {
	_, err := GetEnzyme("BsaII")
	if err == nil || !strings.Contains(err.Error(), "BsaI") {
		t.Errorf("GetEnzyme() error = %v, want a BsaI suggestion", err)
	}
	if !errors.Is(err, ErrUnknownEnzyme) {
		t.Errorf("GetEnzyme() error = %v, want ErrUnknownEnzyme underneath", err)
	}
}

func TestEnzymeNames(t *testing.T) {
	names := EnzymeNames()
	if len(names) != len(enzymes) {
		t.Errorf("EnzymeNames() returned %d names, want %d", len(names), len(enzymes))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("EnzymeNames() not sorted: %s before %s", names[i-1], names[i])
		}
	}
}

func Test_enzymeOverhangLengths(t *testing.T) {
	for name, enz := range enzymes {
		if enz.OverhangLen != 3 && enz.OverhangLen != 4 {
			t.Errorf("%s has overhang length %d, want 3 or 4", name, enz.OverhangLen)
		}
		if enz.OverhangLen == 3 && enz.HasProfile() {
			t.Errorf("%s has a ligation profile but no 3-base profile ships", name)
		}
	}
}

func Test_ld(t *testing.T) {
	type args struct {
		s          string
		t          string
		ignoreCase bool
	}
	tests := []struct {
		name string
		args args
		want int
	}{
		{
			"equal strings",
			args{"BsaI", "BsaI", false},
			0,
		},
		{
			"single insertion",
			args{"BsaI", "BsaII", false},
			1,
		},
		{
			"case folding",
			args{"bsai", "BSAI", true},
			0,
		},
		{
			"distinct strings",
			args{"SapI", "PaqCI", true},
			3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ld(tt.args.s, tt.args.t, tt.args.ignoreCase); got != tt.want {
				t.Errorf("ld() = %v, want %v", got, tt.want)
			}
		})
	}
}
