// Package trace implements the ECFP reasoning trace engine: it enumerates
// Morgan/ECFP atom environments, scores their token complexity, composes
// them into a human-readable reasoning trace, and produces the accompanying
// fixed-width fingerprint. facade.go re-exports the single entry point
// consumed by pkg/ecfp and, through it, the CLI and collaborator adapters.
package trace

import "github.com/turtacn/rdktools-go/internal/chem/molgraph"

// TokenMetrics is the structural scoring tuple computed for one token
// string: radius, atom/bond counts of the fragment it names, whether it
// contains a ring bond, how many heteroatoms it has, and whether it
// contains any unsaturated (double/triple/aromatic) bond. It doubles as the
// metrics cache's value type and, together with TokenString, as the
// ascending total order ("complexity key") used to sort tokens.
type TokenMetrics struct {
	Radius      int
	NumAtoms    int
	NumBonds    int
	HasRing     int
	NumHetero   int
	HasUnsat    int
	TokenString string
}

// less implements the ascending complexity-key ordering: (radius,
// num_atoms, num_bonds, has_ring, num_hetero, has_unsat, token_string).
func (a TokenMetrics) less(b TokenMetrics) bool {
	if a.Radius != b.Radius {
		return a.Radius < b.Radius
	}
	if a.NumAtoms != b.NumAtoms {
		return a.NumAtoms < b.NumAtoms
	}
	if a.NumBonds != b.NumBonds {
		return a.NumBonds < b.NumBonds
	}
	if a.HasRing != b.HasRing {
		return a.HasRing < b.HasRing
	}
	if a.NumHetero != b.NumHetero {
		return a.NumHetero < b.NumHetero
	}
	if a.HasUnsat != b.HasUnsat {
		return a.HasUnsat < b.HasUnsat
	}
	return a.TokenString < b.TokenString
}

// TraceResult is the output of TraceFromSMILES: the composed textual trace
// plus the fingerprint bit vector. An unparseable or empty SMILES yields an
// empty trace and an all-zero fingerprint of the requested width.
type TraceResult struct {
	Trace       string
	Fingerprint []byte
}

// Options controls trace generation behaviour.
type Options struct {
	// Radius is the maximum Morgan/ECFP radius to enumerate.
	Radius int

	// Isomeric threads chirality/atom-map information into the Morgan
	// invariant, the rendered SMARTS tokens, and the fingerprint, so that
	// all three outputs derive from the same flag value.
	Isomeric bool

	// Kekulize requests that aromatic rings be kekulised before
	// enumeration; kekulisation failures are swallowed and enumeration
	// continues on the aromatic form.
	Kekulize bool

	// IncludePerCenter controls whether the composed trace's per-center
	// chains section is emitted.
	IncludePerCenter bool

	// FPNBits is the width of the produced fingerprint bit vector.
	FPNBits int
}

// DefaultOptions returns the engine's default Options: radius 2, isomeric
// trace generation, no forced kekulisation, per-center breakdown included,
// and a 2048-bit fingerprint.
func DefaultOptions() Options {
	return Options{
		Radius:           2,
		Isomeric:         true,
		Kekulize:         false,
		IncludePerCenter: true,
		FPNBits:          2048,
	}
}

// toolkit is the package-level chemistry backend used by every stage of the
// engine. It is a package variable rather than a parameter threaded through
// every call so enumerate/compose/fingerprint read naturally as functions
// of a Molecule; it is not exported since the engine ships a single
// implementation today.
var toolkit molgraph.Toolkit = molgraph.NewToolkit()
