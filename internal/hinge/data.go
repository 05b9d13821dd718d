package hinge

import (
	"embed"
	"fmt"
	"sync"
)

// profileFS holds the packaged ligation frequency profiles
//
//go:embed data/*.tsv
var profileFS embed.FS

var (
	profileMu    sync.Mutex
	profileCache = map[string]*LigationProfile{}
)

// loadProfile parses and caches a packaged ligation profile by name
func loadProfile(name string) (*LigationProfile, error) {
	profileMu.Lock()
	defer profileMu.Unlock()

	if p, ok := profileCache[name]; ok {
		return p, nil
	}

	f, err := profileFS.Open("data/" + name + ".tsv")
	if err != nil {
		return nil, fmt.Errorf("failed to open ligation profile %s: %v", name, err)
	}
	defer f.Close()

	p, err := readProfile(name, f)
	if err != nil {
		return nil, err
	}

	profileCache[name] = p
	return p, nil
}

// ligationProfile returns the packaged profile matching the enzyme's
// overhang length, nil when none was measured
func ligationProfile(enz Enzyme) (*LigationProfile, error) {
	if !enz.HasProfile() {
		return nil, nil
	}

	p, err := loadProfile(enz.profile)
	if err != nil {
		return nil, err
	}
	if p.OverhangLen != enz.OverhangLen {
		return nil, fmt.Errorf("ligation profile %s is for %d base overhangs, %s leaves %d", p.Name, p.OverhangLen, enz.Name, enz.OverhangLen)
	}
	return p, nil
}
