package hinge

// Junction is one accepted candidate in a final design
type Junction struct {
	// Start of the overhang in the target, -1 for pool picks
	Start int `json:"start"`

	// Overhang is the chosen 5' overhang, RevComp the strand the
	// opposite fragment end carries
	Overhang string `json:"overhang"`
	RevComp  string `json:"revComp"`

	// Fidelity of this junction ligated alongside the whole chosen set
	Fidelity float64 `json:"fidelity"`

	// Efficiency factor of the overhang
	Efficiency float64 `json:"efficiency"`

	// Score is the junction's composite breakdown
	Score *Score `json:"score,omitempty"`
}

// Infeasibility explains why a design request can't succeed as asked,
// with a workable alternative attached
type Infeasibility struct {
	Reason string `json:"reason"`

	// SuggestedFragments is the largest feasible ask: for a target
	// run the most fragments it supports at the configured minimum
	// size, for a pool run the viable overhang count
	SuggestedFragments int `json:"suggestedFragments"`
}

// RegionDiagnostic names a junction region the optimizer couldn't fill
// and why
type RegionDiagnostic struct {
	// Region index in target order and its ideal junction position
	Region int `json:"region"`
	Ideal  int `json:"ideal"`

	Reason string `json:"reason"`
}

// Stats records search effort so callers can see how hard a strategy
// worked and what bounded it
type Stats struct {
	// Nodes expanded and branches pruned by branch and bound
	Nodes  int `json:"nodes,omitempty"`
	Pruned int `json:"pruned,omitempty"`

	// MaxDepth the search reached, in junctions placed
	MaxDepth int `json:"maxDepth,omitempty"`

	// Proposed and Accepted annealing moves
	Proposed int `json:"proposed,omitempty"`
	Accepted int `json:"accepted,omitempty"`

	// InitialTemp of the annealing schedule, after calibration for
	// pool runs
	InitialTemp float64 `json:"initialTemp,omitempty"`

	// bestTrace holds each strict improvement of the best score, in
	// the order they happened
	bestTrace []float64
}

// Solution is the outcome of one design run: the accepted junctions in
// target order plus the aggregate quality record. Runs always return a
// Solution. One that couldn't place every junction says so through
// Complete, Diagnostics and Infeasible instead of an error
type Solution struct {
	// Strategy that produced the solution
	Strategy string `json:"strategy"`

	// Junctions in target order, pick order for pool runs
	Junctions []*Junction `json:"junctions"`

	// Complete is whether every requested junction was placed
	Complete bool `json:"complete"`

	// Fidelity is the predicted fidelity of the whole set ligated in
	// one pot, the product of the junction fidelities
	Fidelity float64 `json:"fidelity"`

	// Efficiency is the product of the junction efficiency factors
	Efficiency float64 `json:"efficiency"`

	// PrimerQuality averages the junctions' primer sub-scores, 0 when
	// no oracle profiled them
	PrimerQuality float64 `json:"primerQuality,omitempty"`

	// PositionQuality reflects how close junctions sit to their ideal
	// positions, 100 for dead center
	PositionQuality float64 `json:"positionQuality,omitempty"`

	// Composite is the mean of the junctions' composite scores
	Composite float64 `json:"composite"`

	// Risks are wobble mispairings predicted inside the chosen set
	Risks []*WobbleRisk `json:"risks,omitempty"`

	// Diagnostics name regions that couldn't be filled
	Diagnostics []*RegionDiagnostic `json:"diagnostics,omitempty"`

	// Infeasible is set when the request itself can't be satisfied
	Infeasible *Infeasibility `json:"infeasible,omitempty"`

	// Alternatives are the full solutions of the strategies a hybrid
	// run weighed and passed over
	Alternatives []*Solution `json:"alternatives,omitempty"`

	// Stats records the search effort behind the solution
	Stats *Stats `json:"stats,omitempty"`
}

// Overhangs returns the chosen overhangs in junction order
func (s *Solution) Overhangs() []string {
	overhangs := make([]string, len(s.Junctions))
	for i, j := range s.Junctions {
		overhangs[i] = j.Overhang
	}
	return overhangs
}
