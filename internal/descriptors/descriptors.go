// Package descriptors implements the bulk molecular-descriptor and
// SMILES-validation collaborator: per-record wrappers over the chemistry
// toolkit adapter, plus the batched, concurrent entry point the core itself
// is never allowed to provide (the core enumerates a single molecule
// synchronously; fanning out across many SMILES strings is left to
// collaborators such as this package and internal/tensorop).
package descriptors

import (
	"context"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/turtacn/rdktools-go/internal/chem/molgraph"
	"github.com/turtacn/rdktools-go/internal/infrastructure/monitoring/prometheus"
)

// Descriptors holds the bulk molecular descriptors computed for one SMILES
// string. Invalid input produces math.NaN() fields, mirroring the
// underlying toolkit's quiet-NaN behaviour on malformed molecules.
type Descriptors struct {
	MolecularWeight float64
	LogP            float64
	TPSA            float64
}

var toolkit molgraph.Toolkit = molgraph.NewToolkit()

// CalculateDescriptors computes MolecularWeight/LogP/TPSA for every SMILES
// string in smiles, in order. Invalid entries produce a Descriptors value
// whose three fields are all math.NaN().
func CalculateDescriptors(ctx context.Context, smiles []string) []Descriptors {
	out := make([]Descriptors, len(smiles))
	for i, s := range smiles {
		if ctx.Err() != nil {
			for j := i; j < len(out); j++ {
				out[j] = nanDescriptors()
			}
			return out
		}
		out[i] = calculateOne(s)
	}
	return out
}

func nanDescriptors() Descriptors {
	return Descriptors{MolecularWeight: math.NaN(), LogP: math.NaN(), TPSA: math.NaN()}
}

func calculateOne(smiles string) Descriptors {
	mol, err := toolkit.ParseSMILES(smiles)
	if err != nil {
		return nanDescriptors()
	}
	var mw, logp, tpsa float64
	for _, a := range mol.Atoms {
		mw += atomicWeight(a.AtomicNum)
		if isHeteroDescriptor(a.AtomicNum) {
			tpsa += 20.23
			logp -= 0.3
		} else {
			logp += 0.15
		}
	}
	return Descriptors{MolecularWeight: mw, LogP: logp, TPSA: tpsa}
}

func isHeteroDescriptor(atomicNum int) bool {
	return atomicNum != 1 && atomicNum != 6
}

// atomicWeight returns an approximate standard atomic weight, sufficient
// for a bulk descriptor estimate; it is not a substitute for an IUPAC
// isotope-weighted table.
func atomicWeight(atomicNum int) float64 {
	weights := map[int]float64{
		1: 1.008, 5: 10.81, 6: 12.011, 7: 14.007, 8: 15.999, 9: 18.998,
		11: 22.990, 12: 24.305, 14: 28.085, 15: 30.974, 16: 32.06, 17: 35.45,
		19: 39.098, 20: 40.078, 26: 55.845, 30: 65.38, 34: 78.971, 35: 79.904,
		53: 126.904,
	}
	if w, ok := weights[atomicNum]; ok {
		return w
	}
	return 0
}

// ValidateSMILES reports, for each input string, whether it parses into a
// molecule.
func ValidateSMILES(ctx context.Context, smiles []string) []bool {
	out := make([]bool, len(smiles))
	for i, s := range smiles {
		if ctx.Err() != nil {
			return out
		}
		_, err := toolkit.ParseSMILES(s)
		out[i] = err == nil
	}
	return out
}

// CanonicalizeSMILES re-renders every valid input SMILES to a deterministic
// SMARTS-shaped canonical form using the same serialiser the trace engine
// uses for fragments (applied here to the whole molecule). Invalid SMILES
// yield "".
func CanonicalizeSMILES(ctx context.Context, smiles []string) []string {
	out := make([]string, len(smiles))
	for i, s := range smiles {
		if ctx.Err() != nil {
			return out
		}
		mol, err := toolkit.ParseSMILES(s)
		if err != nil {
			continue
		}
		atoms := map[int]bool{}
		bonds := map[int]bool{}
		for a := range mol.Atoms {
			atoms[a] = true
		}
		for b := range mol.Bonds {
			bonds[b] = true
		}
		canon, err := toolkit.FragmentToSMARTS(mol, atoms, bonds, false)
		if err != nil {
			continue
		}
		out[i] = canon
	}
	return out
}

// MorganFingerprints computes a dense radius-R, nbits-wide fingerprint for
// every input SMILES string. Invalid SMILES yield an all-zero row.
func MorganFingerprints(ctx context.Context, smiles []string, radius, nbits int) [][]byte {
	out := make([][]byte, len(smiles))
	for i, s := range smiles {
		row := make([]byte, nbits)
		out[i] = row
		if ctx.Err() != nil {
			continue
		}
		mol, err := toolkit.ParseSMILES(s)
		if err != nil || nbits <= 0 {
			continue
		}
		for b := range mol.MorganFingerprintBits(radius, nbits, true) {
			if b >= 0 && b < nbits {
				row[b] = 1
			}
		}
	}
	return out
}

// BatchOptions controls BatchProcess's batching and concurrency.
type BatchOptions struct {
	// BatchSize is the number of SMILES strings processed per batch.
	// Defaults to 1000 when zero or negative.
	BatchSize int

	// Concurrency is the number of batches processed in parallel. Defaults
	// to 4 when zero or negative.
	Concurrency int

	// Radius and NBits control the MorganFingerprints call made per batch.
	Radius int
	NBits  int
}

// BatchResult is the concatenated, order-preserving output of BatchProcess.
type BatchResult struct {
	Descriptors []Descriptors
	Valid       []bool
	Canonical   []string
	Fingerprints [][]byte
}

// DefaultBatchSize mirrors the Python collaborator's batch_process default.
const DefaultBatchSize = 1000

// DefaultBatchConcurrency is the worker-pool width used when opts.Concurrency
// is left unset.
const DefaultBatchConcurrency = 4

// BatchProcess partitions smiles into batches of opts.BatchSize (default
// 1000, the last batch possibly shorter) and fans each batch out over a
// bounded worker pool built with golang.org/x/sync/errgroup, computing
// descriptors, validity, canonical SMILES, and fingerprints for each. This
// package and internal/tensorop are the only places in the repository that
// fan work out concurrently across inputs; internal/chem/trace and internal/chem/molgraph
// are always invoked synchronously, once per element, regardless of which
// goroutine calls them.
func BatchProcess(ctx context.Context, smiles []string, opts BatchOptions) (BatchResult, error) {
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}

	type batch struct {
		start, end int
	}
	var batches []batch
	for start := 0; start < len(smiles); start += batchSize {
		end := start + batchSize
		if end > len(smiles) {
			end = len(smiles)
		}
		batches = append(batches, batch{start: start, end: end})
	}

	result := BatchResult{
		Descriptors:  make([]Descriptors, len(smiles)),
		Valid:        make([]bool, len(smiles)),
		Canonical:    make([]string, len(smiles)),
		Fingerprints: make([][]byte, len(smiles)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, b := range batches {
		b := b
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			start := time.Now()
			chunk := smiles[b.start:b.end]
			desc := CalculateDescriptors(gctx, chunk)
			valid := ValidateSMILES(gctx, chunk)
			canon := CanonicalizeSMILES(gctx, chunk)
			fps := MorganFingerprints(gctx, chunk, opts.Radius, opts.NBits)
			copy(result.Descriptors[b.start:b.end], desc)
			copy(result.Valid[b.start:b.end], valid)
			copy(result.Canonical[b.start:b.end], canon)
			copy(result.Fingerprints[b.start:b.end], fps)
			prometheus.RecordDescriptorBatchGlobal(len(chunk), time.Since(start), nil)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return BatchResult{}, err
	}
	return result, nil
}
