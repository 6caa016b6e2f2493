package molgraph

import (
	"strconv"

	"github.com/turtacn/rdktools-go/pkg/errors"
)

// Kekulize returns a clone of m with every aromatic bond replaced by an
// alternating pattern of single and double bonds (a Kekulé structure). Atoms
// and bonds outside the aromatic system are left untouched.
//
// Kekulisation is performed by finding a perfect matching over the aromatic
// bond subgraph: each aromatic atom must receive exactly one double bond. If
// no such matching exists the input is not a valid aromatic system and an
// ErrCodeKekulisation error is returned; callers in this engine (the
// enumerator) swallow that error and continue working with the aromatic
// form rather than failing the whole trace.
func Kekulize(m *Molecule) (*Molecule, error) {
	var aromaticBonds []int
	aromaticAtoms := map[int]bool{}
	for i, b := range m.Bonds {
		if b.Order == BondAromatic {
			aromaticBonds = append(aromaticBonds, i)
			aromaticAtoms[b.Begin] = true
			aromaticAtoms[b.End] = true
		}
	}
	if len(aromaticBonds) == 0 {
		return m.Clone(), nil
	}

	adj := map[int][]int{} // atom -> aromatic bond indices incident to it
	for _, bidx := range aromaticBonds {
		b := m.Bonds[bidx]
		adj[b.Begin] = append(adj[b.Begin], bidx)
		adj[b.End] = append(adj[b.End], bidx)
	}

	matched := map[int]bool{}   // bond index -> chosen as double
	atomDone := map[int]bool{}  // atom index -> already assigned a double bond

	var atoms []int
	for a := range aromaticAtoms {
		atoms = append(atoms, a)
	}
	atoms = sortedInts(atoms)

	var assign func(i int) bool
	assign = func(i int) bool {
		if i == len(atoms) {
			return true
		}
		atom := atoms[i]
		if atomDone[atom] {
			return assign(i + 1)
		}
		for _, bidx := range adj[atom] {
			if matched[bidx] {
				continue
			}
			b := m.Bonds[bidx]
			other := m.OtherEnd(b, atom)
			if atomDone[other] {
				continue
			}
			matched[bidx] = true
			atomDone[atom] = true
			atomDone[other] = true
			if assign(i + 1) {
				return true
			}
			matched[bidx] = false
			atomDone[atom] = false
			atomDone[other] = false
		}
		return false
	}

	if !assign(0) {
		return nil, errors.New(errors.ErrCodeKekulisation,
			"no valid alternating single/double bond assignment exists for the aromatic system").
			WithDetail("aromatic_atom_count=" + strconv.Itoa(len(aromaticAtoms)))
	}

	out := m.Clone()
	for _, bidx := range aromaticBonds {
		if matched[bidx] {
			out.Bonds[bidx].Order = BondDouble
		} else {
			out.Bonds[bidx].Order = BondSingle
		}
	}
	for a := range aromaticAtoms {
		out.Atoms[a].Aromatic = false
	}
	out.ringsDone = false
	return out, nil
}
