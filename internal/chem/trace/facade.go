package trace

import (
	"time"

	"github.com/turtacn/rdktools-go/internal/infrastructure/monitoring/prometheus"
)

// TraceFromSMILES is the single public operation of the core: given a
// SMILES string and Options, it returns the composed textual trace and the
// fingerprint bit vector.
//
// The façade is "soft" at the SMILES boundary (an unparseable or empty string
// yields an empty trace and an all-zero fingerprint, with a nil error) and
// "hard" for internal invariant violations (a fragment-serialisation
// failure inside the enumerator is returned as a non-nil error rather than
// guessed at). There are no retries; this is a pure function of its
// arguments plus the shared token-metrics cache.
func TraceFromSMILES(smiles string, opts Options) (TraceResult, error) {
	start := time.Now()

	mol, err := toolkit.ParseSMILES(smiles)
	if err != nil {
		prometheus.RecordTraceGlobal(false, 0, time.Since(start))
		return TraceResult{Trace: "", Fingerprint: make([]byte, opts.FPNBits)}, nil
	}

	perCenter, err := enumerateEnvironments(mol, opts.Radius, opts.Isomeric, opts.Kekulize)
	if err != nil {
		return TraceResult{}, err
	}

	fp := computeFingerprint(mol, opts.Radius, opts.Isomeric, opts.FPNBits)
	text := composeTrace(mol, perCenter, opts.IncludePerCenter)

	numTokens := 0
	for _, layers := range perCenter {
		numTokens += len(layers)
	}
	prometheus.RecordTraceGlobal(true, numTokens, time.Since(start))

	return TraceResult{Trace: text, Fingerprint: fp}, nil
}
