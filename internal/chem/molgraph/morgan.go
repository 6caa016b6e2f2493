package molgraph

import "hash/fnv"

// Occurrence records one place in the molecule where a particular Morgan
// identifier was produced: the index of the center atom and the radius
// (layer) at which the identifier was generated.
type Occurrence struct {
	Center int
	Layer  int
}

// invariant computes the initial (radius-0) atom invariant used to seed
// Morgan identifier generation, combining atomic number, degree, charge,
// implicit hydrogen count, isotope and ring membership — the standard
// Daylight-style invariant used by ECFP.
func (m *Molecule) invariant(atomIdx int, includeChirality bool) uint64 {
	a := m.Atoms[atomIdx]
	h := fnv.New64a()
	var buf [7]uint64
	buf[0] = uint64(a.AtomicNum)
	buf[1] = uint64(len(m.BondsOf(atomIdx)))
	buf[2] = uint64(int32(a.Charge))
	buf[3] = uint64(a.ImplicitHs)
	buf[4] = uint64(a.Isotope)
	buf[5] = 0
	if m.IsRingAtom(atomIdx) {
		buf[5] = 1
	}
	buf[6] = 0
	if includeChirality && a.MapNum != 0 {
		buf[6] = uint64(a.MapNum)
	}
	for _, v := range buf {
		writeUint64(h, v)
	}
	return h.Sum64()
}

// IsRingAtom reports whether atomIdx has at least one incident ring bond.
func (m *Molecule) IsRingAtom(atomIdx int) bool {
	for _, bidx := range m.BondsOf(atomIdx) {
		if m.IsRingBond(bidx) {
			return true
		}
	}
	return false
}

func writeUint64(h interface{ Write([]byte) (int, error) }, v uint64) {
	var b [8]byte
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
	_, _ = h.Write(b[:])
}

// morganLayer holds the per-atom identifier and the set of bond indices
// that contributed to it, for one radius during Morgan expansion.
type morganLayer struct {
	ids   []uint64
	bonds []map[int]bool // bonds[atomIdx] = bond indices in this atom's environment so far
}

// buildMorganLayers runs Morgan identifier expansion from radius 0 up to
// maxRadius and returns one morganLayer per radius (index 0..maxRadius).
func (m *Molecule) buildMorganLayers(maxRadius int, includeChirality bool) []morganLayer {
	n := m.NumAtoms()
	layers := make([]morganLayer, maxRadius+1)

	ids0 := make([]uint64, n)
	bonds0 := make([]map[int]bool, n)
	for i := 0; i < n; i++ {
		ids0[i] = m.invariant(i, includeChirality)
		bonds0[i] = map[int]bool{}
	}
	layers[0] = morganLayer{ids: ids0, bonds: bonds0}

	prev := layers[0]
	for r := 1; r <= maxRadius; r++ {
		ids := make([]uint64, n)
		bonds := make([]map[int]bool, n)
		for i := 0; i < n; i++ {
			var neighbours []nb
			merged := map[int]bool{}
			for k := range prev.bonds[i] {
				merged[k] = true
			}
			for _, bidx := range m.BondsOf(i) {
				b := m.Bonds[bidx]
				other := m.OtherEnd(b, i)
				neighbours = append(neighbours, nb{order: uint64(b.Order) + 1, id: prev.ids[other]})
				merged[bidx] = true
				for k := range prev.bonds[other] {
					merged[k] = true
				}
			}
			sortNeighbours(neighbours)

			h := fnv.New64a()
			writeUint64(h, prev.ids[i])
			for _, x := range neighbours {
				writeUint64(h, x.order)
				writeUint64(h, x.id)
			}
			ids[i] = h.Sum64()
			bonds[i] = merged
		}
		layers[r] = morganLayer{ids: ids, bonds: bonds}
		prev = layers[r]
	}
	return layers
}

type nb struct {
	order uint64
	id    uint64
}

func sortNeighbours(xs []nb) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && less(xs[j], xs[j-1]); j-- {
			xs[j], xs[j-1] = xs[j-1], xs[j]
		}
	}
}

func less(a, b nb) bool {
	if a.id != b.id {
		return a.id < b.id
	}
	return a.order < b.order
}

// MorganBitInfo computes, for every radius from 0 to maxRadius, the Morgan
// identifier produced at every atom, deduplicated and recorded as a
// bit-info map from the identifier's hash to every (center, layer) it
// occurred at. An atom's occurrence at radius r > 0 is recorded only when
// its environment's bond set grew over radius r-1; otherwise it describes
// the same environment again (a lone atom never gets past radius 0).
// includeChirality folds each atom's map-number-derived invariant into
// radius 0, mirroring how RDKit's useChirality flag and this engine's
// isomeric option are threaded through.
func (m *Molecule) MorganBitInfo(maxRadius int, includeChirality bool) map[uint64][]Occurrence {
	layers := m.buildMorganLayers(maxRadius, includeChirality)
	info := map[uint64][]Occurrence{}
	for r, layer := range layers {
		for atom, id := range layer.ids {
			if r > 0 && len(layer.bonds[atom]) == len(layers[r-1].bonds[atom]) {
				continue
			}
			info[id] = append(info[id], Occurrence{Center: atom, Layer: r})
		}
	}
	return info
}

// AtomEnvironmentOfRadius returns the set of bond indices that make up the
// environment of the given radius around center: every bond reachable
// within `radius` hops. Radius 0 returns an empty set (a single atom has no
// bonds in its environment).
func (m *Molecule) AtomEnvironmentOfRadius(center, radius int) []int {
	if radius <= 0 {
		return nil
	}
	visitedAtoms := map[int]int{center: 0} // atom -> distance
	bondSet := map[int]bool{}
	queue := []int{center}
	for len(queue) > 0 {
		atom := queue[0]
		queue = queue[1:]
		d := visitedAtoms[atom]
		if d >= radius {
			continue
		}
		for _, bidx := range m.BondsOf(atom) {
			b := m.Bonds[bidx]
			other := m.OtherEnd(b, atom)
			bondSet[bidx] = true
			if _, seen := visitedAtoms[other]; !seen {
				visitedAtoms[other] = d + 1
				queue = append(queue, other)
			}
		}
	}
	out := make([]int, 0, len(bondSet))
	for b := range bondSet {
		out = append(out, b)
	}
	return sortedInts(out)
}

// MorganFingerprintBits folds every identifier produced at every radius up
// to maxRadius into an nBits-wide bit vector, returning the set of bit
// indices that are on.
func (m *Molecule) MorganFingerprintBits(maxRadius int, nBits int, includeChirality bool) map[int]bool {
	info := m.MorganBitInfo(maxRadius, includeChirality)
	bits := map[int]bool{}
	for id := range info {
		bits[int(id%uint64(nBits))] = true
	}
	return bits
}
