// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd) into a flat Config that the rest of the
// app passes around explicitly
package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// stderr is for logging to the user during setup
var stderr = log.New(os.Stderr, "", 0)

// Config holds the tunable settings of a design run
type Config struct {
	// FragmentsMinSize is the smallest average fragment size a
	// requested fragment count may imply
	FragmentsMinSize int `mapstructure:"fragments-min-size"`

	// ScanMinFromEnds is how far from either end of the target the
	// scanner keeps junction candidates
	ScanMinFromEnds int `mapstructure:"scan-min-from-ends"`

	// ScanLimit caps the total number of scanned candidates
	ScanLimit int `mapstructure:"scan-limit"`

	// RegionRadius is the half width of the search window around each
	// ideal junction position
	RegionRadius int `mapstructure:"region-radius"`

	// RegionPoolSize is how many candidates each region keeps after
	// pre-scoring
	RegionPoolSize int `mapstructure:"region-pool-size"`

	// PrimerWindow is the primer length assumed on each side of a
	// junction when scoring primer quality
	PrimerWindow int `mapstructure:"primer-window"`

	// PrimerWindowMin is the shortest window still worth profiling.
	// Shorter windows score a fixed fallback instead
	PrimerWindowMin int `mapstructure:"primer-window-min"`

	// PrimerTmTarget is the melting temperature primers are scored
	// against, with PrimerTmTolerance its zero-score distance
	PrimerTmTarget    float64 `mapstructure:"primer-tm-target"`
	PrimerTmTolerance float64 `mapstructure:"primer-tm-tolerance"`

	// FidelityLegacy switches junction fidelity denominators from the
	// chosen overhang set to the whole ligation profile
	FidelityLegacy bool `mapstructure:"fidelity-legacy"`

	// FidelityFallback is the fidelity assumed for overhangs that are
	// absent from both the ligation profile and the static table
	FidelityFallback float64 `mapstructure:"fidelity-fallback"`

	// WobbleWeight is the per wobble frequency factor of a mispaired
	// duplex relative to a perfect match
	WobbleWeight float64 `mapstructure:"wobble-weight"`

	// WobbleMatchMin is the least paired positions, Watson-Crick or
	// wobble, a flagged duplex must have. 0 means one under the
	// overhang length
	WobbleMatchMin int `mapstructure:"wobble-match-min"`

	// Composite score weights
	WeightOverhang   float64 `mapstructure:"weight-overhang"`
	WeightUpstream   float64 `mapstructure:"weight-upstream"`
	WeightDownstream float64 `mapstructure:"weight-downstream"`
	WeightRisk       float64 `mapstructure:"weight-risk"`
	WeightContext    float64 `mapstructure:"weight-context"`

	// GreedyFloor is the set fidelity below which the greedy
	// optimizer refuses a candidate
	GreedyFloor float64 `mapstructure:"greedy-fidelity-floor"`

	// BnbFloor is the set fidelity below which branch and bound
	// prunes a branch outright
	BnbFloor float64 `mapstructure:"bnb-fidelity-floor"`

	// BnbPruneRatio scales the best score seen so far into the bar a
	// branch's projected score must clear to stay alive
	BnbPruneRatio float64 `mapstructure:"bnb-prune-ratio"`

	// BnbMaxFragments is the largest fragment count the hybrid
	// strategy still runs branch and bound for
	BnbMaxFragments int `mapstructure:"bnb-max-fragments"`

	// BnbMaxNodes bounds the branch and bound search
	BnbMaxNodes int `mapstructure:"bnb-max-nodes"`

	// Annealing schedule
	AnnealSteps        int     `mapstructure:"anneal-steps"`
	AnnealCooling      float64 `mapstructure:"anneal-cooling"`
	AnnealStartTemp    float64 `mapstructure:"anneal-start-temp"`
	AnnealTargetAccept float64 `mapstructure:"anneal-target-accept"`

	// Seed for the optimizers' random source
	Seed int64 `mapstructure:"seed"`

	// Verbose turns on per run search statistics
	Verbose bool `mapstructure:"verbose"`
}

// Setup readies viper: defaults, an optional config file and HINGE_*
// environment overrides. Called once by the root command
func Setup(cfgFile string) {
	viper.SetEnvPrefix("HINGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".hinge")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			stderr.Fatalf("failed to read config file %s: %v", cfgFile, err)
		}
	}
}

// setDefaults registers the built-in defaults with viper
func setDefaults() {
	viper.SetDefault("fragments-min-size", 100)
	viper.SetDefault("scan-min-from-ends", 30)
	viper.SetDefault("scan-limit", 5000)
	viper.SetDefault("region-radius", 50)
	viper.SetDefault("region-pool-size", 10)
	viper.SetDefault("primer-window", 20)
	viper.SetDefault("primer-window-min", 12)
	viper.SetDefault("primer-tm-target", 60.0)
	viper.SetDefault("primer-tm-tolerance", 10.0)
	viper.SetDefault("fidelity-legacy", false)
	viper.SetDefault("fidelity-fallback", 0.85)
	viper.SetDefault("wobble-weight", 0.2)
	viper.SetDefault("wobble-match-min", 0)
	viper.SetDefault("weight-overhang", 0.20)
	viper.SetDefault("weight-upstream", 0.20)
	viper.SetDefault("weight-downstream", 0.20)
	viper.SetDefault("weight-risk", 0.25)
	viper.SetDefault("weight-context", 0.15)
	viper.SetDefault("greedy-fidelity-floor", 0.5)
	viper.SetDefault("bnb-fidelity-floor", 0.3)
	viper.SetDefault("bnb-prune-ratio", 0.7)
	viper.SetDefault("bnb-max-fragments", 6)
	viper.SetDefault("bnb-max-nodes", 200000)
	viper.SetDefault("anneal-steps", 2000)
	viper.SetDefault("anneal-cooling", 0.995)
	viper.SetDefault("anneal-start-temp", 5.0)
	viper.SetDefault("anneal-target-accept", 0.05)
	viper.SetDefault("seed", 1)
	viper.SetDefault("verbose", false)
}

// New returns a Config populated from viper's current state. Defaults
// are registered first so New works without Setup, as in tests
func New() *Config {
	setDefaults()

	conf := &Config{}
	if err := viper.Unmarshal(conf); err != nil {
		stderr.Fatalf("failed to decode settings: %v", err)
	}
	return conf
}

// Validate returns an error naming the first malformed setting
func (c *Config) Validate() error {
	switch {
	case c.FragmentsMinSize < 1:
		return fmt.Errorf("fragments-min-size must be positive, got %d", c.FragmentsMinSize)
	case c.ScanMinFromEnds < 0:
		return fmt.Errorf("scan-min-from-ends cannot be negative, got %d", c.ScanMinFromEnds)
	case c.RegionRadius < 1:
		return fmt.Errorf("region-radius must be positive, got %d", c.RegionRadius)
	case c.RegionPoolSize < 1:
		return fmt.Errorf("region-pool-size must be positive, got %d", c.RegionPoolSize)
	case c.PrimerWindowMin < 1 || c.PrimerWindow < c.PrimerWindowMin:
		return fmt.Errorf("primer windows are malformed: window %d, min %d", c.PrimerWindow, c.PrimerWindowMin)
	case c.PrimerTmTolerance <= 0:
		return fmt.Errorf("primer-tm-tolerance must be positive, got %f", c.PrimerTmTolerance)
	case c.FidelityFallback <= 0 || c.FidelityFallback > 1:
		return fmt.Errorf("fidelity-fallback must be between 0 and 1, got %f", c.FidelityFallback)
	case c.WobbleWeight <= 0 || c.WobbleWeight >= 1:
		return fmt.Errorf("wobble-weight must be between 0 and 1, got %f", c.WobbleWeight)
	case c.WobbleMatchMin < 0:
		return fmt.Errorf("wobble-match-min cannot be negative, got %d", c.WobbleMatchMin)
	case c.WeightOverhang < 0 || c.WeightUpstream < 0 || c.WeightDownstream < 0 ||
		c.WeightRisk < 0 || c.WeightContext < 0:
		return fmt.Errorf("score weights cannot be negative")
	case c.WeightOverhang+c.WeightUpstream+c.WeightDownstream+c.WeightRisk+c.WeightContext == 0:
		return fmt.Errorf("at least one score weight must be positive")
	case c.GreedyFloor < 0 || c.GreedyFloor > 1:
		return fmt.Errorf("greedy-fidelity-floor must be between 0 and 1, got %f", c.GreedyFloor)
	case c.BnbFloor < 0 || c.BnbFloor > 1:
		return fmt.Errorf("bnb-fidelity-floor must be between 0 and 1, got %f", c.BnbFloor)
	case c.BnbPruneRatio <= 0 || c.BnbPruneRatio > 1:
		return fmt.Errorf("bnb-prune-ratio must be between 0 and 1, got %f", c.BnbPruneRatio)
	case c.BnbMaxFragments < 2:
		return fmt.Errorf("bnb-max-fragments must be at least 2, got %d", c.BnbMaxFragments)
	case c.BnbMaxNodes < 1:
		return fmt.Errorf("bnb-max-nodes must be positive, got %d", c.BnbMaxNodes)
	case c.AnnealSteps < 1:
		return fmt.Errorf("anneal-steps must be positive, got %d", c.AnnealSteps)
	case c.AnnealCooling <= 0 || c.AnnealCooling >= 1:
		return fmt.Errorf("anneal-cooling must be between 0 and 1, got %f", c.AnnealCooling)
	case c.AnnealStartTemp <= 0:
		return fmt.Errorf("anneal-start-temp must be positive, got %f", c.AnnealStartTemp)
	case c.AnnealTargetAccept <= 0 || c.AnnealTargetAccept >= 1:
		return fmt.Errorf("anneal-target-accept must be between 0 and 1, got %f", c.AnnealTargetAccept)
	}
	return nil
}
