package hinge

// PrimerProfile is the thermodynamic feature set of one primer window
type PrimerProfile struct {
	// Tm is the predicted melting temperature in Celsius
	Tm float64

	// HairpinDG is the strongest predicted hairpin fold of the
	// window, kcal/mol, more negative is more stable
	HairpinDG float64

	// HomodimerDG is the strongest predicted annealing of the window
	// against another copy of itself
	HomodimerDG float64

	// End3DG is the binding energy of the 3' terminal pentamer, the
	// extension-critical end
	End3DG float64

	// GCClamp is whether a G or C sits among the last five bases
	GCClamp bool

	// GQuad is whether the window carries a G-quadruplex motif
	GQuad bool
}

// PrimerOracle profiles the primer windows flanking a junction for the
// composite scorer. The default implementation is internal/thermo's
// heuristic model, callers with a better predictor can swap in their
// own. A nil oracle leaves the primer sub-scores out of the composite
type PrimerOracle interface {
	Profile(window string) (PrimerProfile, error)
}
