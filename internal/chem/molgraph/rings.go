package molgraph

// FindRings computes the set of ring bonds in the molecule: every bond that
// lies on at least one cycle of the molecular graph. The result is memoised
// on the Molecule; it is invalidated whenever AddBond is called.
//
// This is a simplified ring-membership test, not a full smallest-set-of-
// smallest-rings decomposition: it answers "is this bond part of some
// cycle" rather than enumerating the minimal ring basis. That is all the
// token-metrics layer needs (a boolean ring-membership flag and a ring
// count per fragment), so a full SSSR algorithm is not implemented.
func (m *Molecule) FindRings() [][]int {
	if m.ringsDone {
		return m.ringBonds
	}

	inRing := make([]bool, len(m.Bonds))
	visited := make([]bool, len(m.Atoms))
	// parentBond[atom] = bond index used to reach atom during DFS, or -1 for roots.
	parentBond := make([]int, len(m.Atoms))
	for i := range parentBond {
		parentBond[i] = -1
	}
	depth := make([]int, len(m.Atoms))

	var dfs func(atom, viaBond, d int)
	dfs = func(atom, viaBond, d int) {
		visited[atom] = true
		depth[atom] = d
		for _, bidx := range m.BondsOf(atom) {
			if bidx == viaBond {
				continue
			}
			b := m.Bonds[bidx]
			next := m.OtherEnd(b, atom)
			if !visited[next] {
				parentBond[next] = bidx
				dfs(next, bidx, d+1)
				continue
			}
			// Back edge found: every bond on the path from atom up to next
			// (exclusive of viaBond edges already marked) is part of a ring,
			// plus this back edge itself.
			if depth[next] < depth[atom] {
				inRing[bidx] = true
				cur := atom
				for cur != next {
					pb := parentBond[cur]
					if pb < 0 {
						break
					}
					inRing[pb] = true
					cur = m.OtherEnd(m.Bonds[pb], cur)
				}
			}
		}
	}

	for i := range m.Atoms {
		if !visited[i] {
			dfs(i, -1, 0)
		}
	}

	var rings [][]int
	for i, in := range inRing {
		if in {
			rings = append(rings, []int{i})
		}
	}
	m.ringBonds = rings
	m.ringsDone = true
	return m.ringBonds
}

// IsRingBond reports whether the bond at index bidx lies on a cycle.
func (m *Molecule) IsRingBond(bidx int) bool {
	for _, r := range m.FindRings() {
		if len(r) == 1 && r[0] == bidx {
			return true
		}
	}
	return false
}

// RingBondCount returns the number of distinct bonds participating in at
// least one cycle, restricted to the bond indices present in bondSet.
func (m *Molecule) RingBondCount(bondSet map[int]bool) int {
	m.FindRings()
	count := 0
	for bidx := range bondSet {
		if m.IsRingBond(bidx) {
			count++
		}
	}
	return count
}
