package trace

import (
	"sort"

	"github.com/turtacn/rdktools-go/internal/chem/molgraph"
)

// centerLayer is an (center atom, radius layer) pair, the unit of work the
// enumerator processes.
type centerLayer struct {
	center int
	layer  int
}

// enumerateEnvironments runs the environment enumerator over mol:
//
//  1. Build a mutable working copy of mol so atom-map-number mutations
//     never leak to the caller's molecule.
//  2. If kekulizeFlag, attempt kekulisation; its error is swallowed and
//     enumeration continues on the aromatic form.
//  3. Call the toolkit's Morgan bit-info with include_chirality=isomeric;
//     from every occurrence (center, layer) with layer <= maxRadius,
//     collect the set of unique pairs.
//  4. Snapshot the working molecule's original atom-map numbers.
//  5. For each (center, layer) pair in ascending (center, layer) order,
//     discover the environment's bond set, derive its atom set, mark the
//     root, render it to SMARTS with the root restored on every exit path,
//     and record the token. Every pair with layer <= maxRadius is recorded
//     unconditionally; layer > maxRadius is the only exclusion.
//
// A SMARTS-serialisation failure propagates to the caller (an internal
// invariant violation, not a soft-fail condition); a parse or
// kekulisation failure never reaches this function since both are handled
// by the façade and by this function respectively before enumeration
// begins.
func enumerateEnvironments(mol *molgraph.Molecule, maxRadius int, isomeric, kekulizeFlag bool) (map[int]map[int]string, error) {
	working := mol.Clone()
	if kekulizeFlag {
		if kek, err := toolkit.Kekulize(working); err == nil {
			working = kek
		}
	}

	info := toolkit.MorganBitInfo(working, maxRadius, isomeric)
	seen := map[centerLayer]bool{}
	for _, occs := range info {
		for _, o := range occs {
			if o.Layer <= maxRadius {
				seen[centerLayer{center: o.Center, layer: o.Layer}] = true
			}
		}
	}
	pairs := make([]centerLayer, 0, len(seen))
	for p := range seen {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].center != pairs[j].center {
			return pairs[i].center < pairs[j].center
		}
		return pairs[i].layer < pairs[j].layer
	})

	snapshot := working.AtomMapSnapshot()
	perCenter := map[int]map[int]string{}

	for _, p := range pairs {
		bondIdxs := toolkit.AtomEnvironmentOfRadius(working, p.center, p.layer)
		atomSet := map[int]bool{p.center: true}
		bondSet := map[int]bool{}
		for _, bidx := range bondIdxs {
			b := working.Bonds[bidx]
			atomSet[b.Begin] = true
			atomSet[b.End] = true
			bondSet[bidx] = true
		}

		restore := working.MarkRoot(p.center, snapshot)
		smarts, err := toolkit.FragmentToSMARTS(working, atomSet, bondSet, isomeric)
		restore()
		if err != nil {
			return nil, err
		}

		if perCenter[p.center] == nil {
			perCenter[p.center] = map[int]string{}
		}
		perCenter[p.center][p.layer] = tokenString(p.layer, smarts)
	}

	return perCenter, nil
}
