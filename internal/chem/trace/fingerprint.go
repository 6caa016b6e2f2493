package trace

import "github.com/turtacn/rdktools-go/internal/chem/molgraph"

// computeFingerprint produces a dense byte vector of length nbits, each
// element 0 or 1, for mol at the given radius. includeChirality mirrors the
// isomeric flag of the trace so the two outputs are consistent. Any panic
// raised by the toolkit is recovered and an all-zero vector is returned
// instead, matching the fingerprint producer's "on any adapter exception,
// return all zeros" contract.
func computeFingerprint(mol *molgraph.Molecule, radius int, includeChirality bool, nbits int) []byte {
	fp := make([]byte, nbits)

	bits, ok := safeFingerprintBits(mol, radius, nbits, includeChirality)
	if !ok {
		return fp
	}
	for b := range bits {
		if b >= 0 && b < nbits {
			fp[b] = 1
		}
	}
	return fp
}

func safeFingerprintBits(mol *molgraph.Molecule, radius, nbits int, includeChirality bool) (bits map[int]bool, ok bool) {
	defer func() {
		if recover() != nil {
			bits, ok = nil, false
		}
	}()
	return toolkit.MorganFingerprintBits(mol, radius, nbits, includeChirality), true
}
