package molgraph

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/turtacn/rdktools-go/pkg/errors"
)

// FragmentToSMARTS renders the induced subgraph over atoms (restricted to
// the bonds in bonds) as a deterministic SMARTS string. Atoms are visited in
// a depth-first traversal rooted at the lowest atom index in the fragment,
// breaking ties between branches by atom index, so the same fragment always
// serialises to the same string regardless of how it was discovered.
//
// Atoms are rendered generically as "[#<atomicNum>]" (or "[#<atomicNum>;a]"
// for aromatic atoms) rather than by element symbol: the token vocabulary
// this feeds only needs fragments to compare equal when they are
// structurally identical, not to round-trip back into SMILES.
//
// When isomeric is true, any atom carrying a non-zero MapNum has that
// number rendered as a ":<n>" atom-map suffix inside its bracket (e.g.
// "[#6:1]"), which is how the enumerator's mark-root discipline surfaces
// the center atom in the token text. When isomeric is false the map number
// is omitted even if set, so toggling isomeric changes the rendered token.
func (m *Molecule) FragmentToSMARTS(atoms map[int]bool, bonds map[int]bool, isomeric bool) (string, error) {
	if len(atoms) == 0 {
		return "", errors.New(errors.ErrCodeFragmentSerialisation, "fragment has no atoms")
	}

	root := -1
	for a := range atoms {
		if root == -1 || a < root {
			root = a
		}
	}

	visited := map[int]bool{}
	var sb strings.Builder
	ringClosures := map[int]int{} // bond index -> assigned ring-closure number
	nextRingNum := 1

	var walk func(atom int, viaBond int) error
	walk = func(atom int, viaBond int) error {
		visited[atom] = true
		sb.WriteString(atomSMARTS(m.Atoms[atom], isomeric))

		var children []int
		for _, bidx := range m.BondsOf(atom) {
			if !bonds[bidx] || bidx == viaBond {
				continue
			}
			b := m.Bonds[bidx]
			other := m.OtherEnd(b, atom)
			if !atoms[other] {
				continue
			}
			if visited[other] {
				// Ring closure back to an already-visited atom: only emit once,
				// from the second visitor, using a stable per-bond number.
				if _, ok := ringClosures[bidx]; !ok {
					ringClosures[bidx] = nextRingNum
					nextRingNum++
				}
				continue
			}
			children = append(children, bidx)
		}
		children = sortBondsByOtherAtom(m, atom, children)

		var closing []int
		for bidx := range ringClosures {
			b := m.Bonds[bidx]
			other := m.OtherEnd(b, atom)
			if (b.Begin == atom || b.End == atom) && visited[other] && other != atom {
				closing = append(closing, bidx)
			}
		}
		sort.Slice(closing, func(i, j int) bool { return ringClosures[closing[i]] < ringClosures[closing[j]] })
		for _, bidx := range closing {
			sb.WriteString(bondSMARTS(m.Bonds[bidx].Order))
			sb.WriteString(strconv.Itoa(ringClosures[bidx]))
		}

		for i, bidx := range children {
			b := m.Bonds[bidx]
			other := m.OtherEnd(b, atom)

			if visited[other] {
				// other was reached through a different branch since children
				// was built above; this is a ring closure, not a tree edge, so
				// emit the same bond+number pair the other endpoint used
				// instead of walking into an already-visited atom.
				num, ok := ringClosures[bidx]
				if !ok {
					num = nextRingNum
					ringClosures[bidx] = num
					nextRingNum++
				}
				sb.WriteString(bondSMARTS(b.Order))
				sb.WriteString(strconv.Itoa(num))
				continue
			}

			open := len(children) > 1 && i < len(children)-1
			if open {
				sb.WriteByte('(')
			}
			sb.WriteString(bondSMARTS(b.Order))
			if err := walk(other, bidx); err != nil {
				return err
			}
			if open {
				sb.WriteByte(')')
			}
		}
		return nil
	}

	if err := walk(root, -1); err != nil {
		return "", err
	}
	for a := range atoms {
		if !visited[a] {
			return "", errors.New(errors.ErrCodeFragmentSerialisation,
				"fragment is disconnected; cannot render as a single SMARTS string").
				WithDetail(fmt.Sprintf("unreached_atom=%d", a))
		}
	}
	return sb.String(), nil
}

func atomSMARTS(a Atom, isomeric bool) string {
	mapSuffix := ""
	if isomeric && a.MapNum != 0 {
		mapSuffix = fmt.Sprintf(":%d", a.MapNum)
	}
	if a.Aromatic {
		return fmt.Sprintf("[#%d;a%s]", a.AtomicNum, mapSuffix)
	}
	return fmt.Sprintf("[#%d%s]", a.AtomicNum, mapSuffix)
}

func bondSMARTS(order BondOrder) string {
	switch order {
	case BondDouble:
		return "="
	case BondTriple:
		return "#"
	case BondAromatic:
		return ":"
	default:
		return "-"
	}
}

// sortBondsByOtherAtom orders a set of bond indices incident to atom by the
// index of the atom at the other end, for deterministic traversal order.
func sortBondsByOtherAtom(m *Molecule, atom int, bondIdxs []int) []int {
	out := append([]int(nil), bondIdxs...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0; j-- {
			a := m.OtherEnd(m.Bonds[out[j]], atom)
			b := m.OtherEnd(m.Bonds[out[j-1]], atom)
			if a < b {
				out[j], out[j-1] = out[j-1], out[j]
			} else {
				break
			}
		}
	}
	return out
}
