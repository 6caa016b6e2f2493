// Package ecfp is the public entry point to the ECFP reasoning trace engine.
// It re-exports internal/chem/trace's single operation and option type so
// that external adapters — the CLI, the descriptor/array collaborator, and
// the tensor-operator collaborator — depend on one small, stable surface
// instead of reaching into the engine's internal packages.
package ecfp

import "github.com/turtacn/rdktools-go/internal/chem/trace"

// Options controls trace generation behaviour. See trace.Options for field
// documentation.
type Options = trace.Options

// Result is the output of TraceFromSMILES: the composed textual trace plus
// the fingerprint bit vector.
type Result = trace.TraceResult

// DefaultOptions returns the engine's default Options: radius 2, isomeric
// trace generation, no forced kekulisation, per-center breakdown included,
// and a 2048-bit fingerprint.
func DefaultOptions() Options {
	return trace.DefaultOptions()
}

// TraceFromSMILES parses smiles and returns the composed textual trace and
// fingerprint bit vector described by opts. An unparseable or empty smiles
// yields an empty trace and an all-zero fingerprint with a nil error; a
// fragment-serialisation failure inside the enumerator is returned as a
// non-nil error.
func TraceFromSMILES(smiles string, opts Options) (Result, error) {
	return trace.TraceFromSMILES(smiles, opts)
}
