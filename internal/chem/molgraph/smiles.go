package molgraph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/turtacn/rdktools-go/pkg/errors"
)

// ParseSMILES parses a SMILES string into a Molecule. It supports the
// organic subset (uppercase two-letter and single-letter element symbols,
// lowercase aromatic b/c/n/o/p/s), bracket atoms ([nH], [13CH3], [N+]),
// single/double/triple/aromatic bond symbols, branches, and ring-closure
// digits including the %nn two-digit form. It does not support SMILES
// extensions outside that subset (stereo bonds, reaction arrows, component
// groups).
//
// An empty string is a parse failure, not an empty molecule: the façade
// above treats both identically (an empty trace result) but the toolkit
// layer itself must distinguish "nothing to parse" from "zero-atom molecule".
func ParseSMILES(smiles string) (*Molecule, error) {
	p := &smilesParser{src: smiles}
	return p.parse()
}

type smilesParser struct {
	src string
	pos int

	mol        *Molecule
	prevAtom   int           // index of the atom the next one should bond to, or -1
	prevBond   BondOrder     // pending bond order for the next bond, set by bond symbols
	bondSet    bool          // whether prevBond was explicitly set since the last atom
	branchStk  []int         // stack of atom indices saved across '(' / ')'
	ringOpens  map[int]ringOpen // open ring-closure numbers -> (atom, pending bond)
	organicAtoms map[int]bool // atoms added via addOrganic, needing implicit-H inference
}

type ringOpen struct {
	atom      int
	bond      BondOrder
	bondKnown bool
}

func (p *smilesParser) parse() (*Molecule, error) {
	if strings.TrimSpace(p.src) == "" {
		return nil, errors.New(errors.ErrCodeSMILESParse, "SMILES string is empty").
			WithDetail(fmt.Sprintf("input=%q", p.src))
	}

	p.mol = NewMolecule()
	p.prevAtom = -1
	p.ringOpens = make(map[int]ringOpen)
	p.organicAtoms = make(map[int]bool)

	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '(':
			p.branchStk = append(p.branchStk, p.prevAtom)
			p.pos++
		case c == ')':
			if len(p.branchStk) == 0 {
				return nil, p.errf("unmatched ')'")
			}
			p.prevAtom = p.branchStk[len(p.branchStk)-1]
			p.branchStk = p.branchStk[:len(p.branchStk)-1]
			p.pos++
		case c == '-' || c == '=' || c == '#' || c == ':':
			p.prevBond = bondFromSymbol(c)
			p.bondSet = true
			p.pos++
		case c == '/' || c == '\\':
			// Directional bond markers are accepted and treated as single bonds;
			// this engine does not track cis/trans geometry.
			p.prevBond = BondSingle
			p.bondSet = true
			p.pos++
		case c == '.':
			// Disconnected-component separator: reset the bonding cursor only.
			p.prevAtom = -1
			p.bondSet = false
			p.pos++
		case c == '[':
			if err := p.parseBracketAtom(); err != nil {
				return nil, err
			}
		case c >= '0' && c <= '9':
			if err := p.parseRingClosure(int(c - '0')); err != nil {
				return nil, err
			}
			p.pos++
		case c == '%':
			if err := p.parsePercentRingClosure(); err != nil {
				return nil, err
			}
		default:
			if err := p.parseOrganicAtom(); err != nil {
				return nil, err
			}
		}
	}

	if len(p.branchStk) != 0 {
		return nil, p.errf("unclosed '('")
	}
	if len(p.ringOpens) != 0 {
		return nil, p.errf("unclosed ring bond")
	}
	if p.mol.NumAtoms() == 0 {
		return nil, errors.New(errors.ErrCodeSMILESParse, "SMILES string contains no atoms").
			WithDetail(fmt.Sprintf("input=%q", p.src))
	}
	p.assignImplicitHydrogens()
	return p.mol, nil
}

// bondValenceUnits returns twice a bond's contribution to its endpoints'
// valence, so that an aromatic bond's 1.5-order contribution (3 units) can
// be summed alongside single/double/triple bonds (2/4/6 units) without
// floating point.
func bondValenceUnits(order BondOrder) int {
	switch order {
	case BondDouble:
		return 4
	case BondTriple:
		return 6
	case BondAromatic:
		return 3
	default:
		return 2
	}
}

// assignImplicitHydrogens fills in ImplicitHs for every organic-subset atom
// (one parsed without a bracket) from its default covalent valence minus the
// valence already used by its explicit bonds. It runs once, after the whole
// SMILES has been parsed, because a ring closure or branch can attach a bond
// to an atom well after that atom itself was created. Bracket atoms are
// untouched: they set ImplicitHs explicitly from the "H" count in the
// bracket, per SMILES grammar.
func (p *smilesParser) assignImplicitHydrogens() {
	for idx := range p.organicAtoms {
		valence, ok := defaultImplicitValence[p.mol.Atoms[idx].Symbol]
		if !ok {
			continue
		}
		used := 0
		for _, bidx := range p.mol.BondsOf(idx) {
			used += bondValenceUnits(p.mol.Bonds[bidx].Order)
		}
		if h := (valence*2 - used) / 2; h > 0 {
			p.mol.Atoms[idx].ImplicitHs = h
		}
	}
}

func (p *smilesParser) errf(format string, args ...interface{}) *errors.AppError {
	msg := fmt.Sprintf(format, args...)
	return errors.New(errors.ErrCodeSMILESParse, fmt.Sprintf("could not parse SMILES %q: %s", p.src, msg)).
		WithDetail(fmt.Sprintf("position=%d", p.pos))
}

func bondFromSymbol(c byte) BondOrder {
	switch c {
	case '=':
		return BondDouble
	case '#':
		return BondTriple
	case ':':
		return BondAromatic
	default:
		return BondSingle
	}
}

// bondAfterAtom links the atom at atomIdx to the previous bonding cursor
// using the pending bond order (or an implicit single/aromatic bond when
// none was given), then advances the cursor to atomIdx.
func (p *smilesParser) bondAfterAtom(atomIdx int, aromatic bool) {
	if p.prevAtom >= 0 {
		order := BondSingle
		if p.bondSet {
			order = p.prevBond
		} else if aromatic && p.mol.Atoms[p.prevAtom].Aromatic {
			order = BondAromatic
		}
		p.mol.AddBond(p.prevAtom, atomIdx, order)
	}
	p.prevAtom = atomIdx
	p.bondSet = false
}

func (p *smilesParser) parseOrganicAtom() error {
	c := p.src[p.pos]
	if c == 'B' && p.peekIs(p.pos+1, 'r') {
		p.addOrganic("Br", false)
		p.pos += 2
		return nil
	}
	if c == 'C' && p.peekIs(p.pos+1, 'l') {
		p.addOrganic("Cl", false)
		p.pos += 2
		return nil
	}
	if sym, ok := aromaticSymbols[c]; ok {
		p.addOrganic(sym, true)
		p.pos++
		return nil
	}
	if c == '*' {
		p.addOrganic("*", false)
		p.pos++
		return nil
	}
	if c >= 'A' && c <= 'Z' {
		sym := string(c)
		if atomicNumForSymbol(sym) == 0 {
			return p.errf("unrecognised atom symbol %q", sym)
		}
		p.addOrganic(sym, false)
		p.pos++
		return nil
	}
	return p.errf("unexpected character %q", string(c))
}

func (p *smilesParser) addOrganic(symbol string, aromatic bool) {
	idx := p.mol.AddAtom(Atom{
		Symbol:    symbol,
		AtomicNum: atomicNumForSymbol(symbol),
		Aromatic:  aromatic,
	})
	p.organicAtoms[idx] = true
	p.bondAfterAtom(idx, aromatic)
}

func (p *smilesParser) peekIs(pos int, want byte) bool {
	return pos < len(p.src) && p.src[pos] == want
}

// parseBracketAtom parses a bracket atom like [nH], [13CH3], [N+], [O-].
func (p *smilesParser) parseBracketAtom() error {
	start := p.pos
	end := strings.IndexByte(p.src[start:], ']')
	if end < 0 {
		return p.errf("unclosed '['")
	}
	body := p.src[start+1 : start+end]
	p.pos = start + end + 1

	rest := body
	isotope := 0
	for len(rest) > 0 && rest[0] >= '0' && rest[0] <= '9' {
		j := 0
		for j < len(rest) && rest[j] >= '0' && rest[j] <= '9' {
			j++
		}
		n, _ := strconv.Atoi(rest[:j])
		isotope = n
		rest = rest[j:]
	}

	aromatic := false
	symbol := ""
	switch {
	case len(rest) >= 2 && rest[0] >= 'A' && rest[0] <= 'Z' && atomicNumForSymbol(rest[:2]) != 0:
		symbol = rest[:2]
		rest = rest[2:]
	case len(rest) >= 1 && rest[0] >= 'A' && rest[0] <= 'Z':
		symbol = string(rest[0])
		rest = rest[1:]
	case len(rest) >= 1:
		if sym, ok := aromaticSymbols[rest[0]]; ok {
			symbol = sym
			aromatic = true
			rest = rest[1:]
		} else if rest[0] == '*' {
			symbol = "*"
			rest = rest[1:]
		}
	}
	if symbol == "" {
		return p.errf("bracket atom %q has no recognisable element symbol", body)
	}

	implicitHs := 0
	if len(rest) > 0 && rest[0] == 'H' {
		rest = rest[1:]
		implicitHs = 1
		j := 0
		for j < len(rest) && rest[j] >= '0' && rest[j] <= '9' {
			j++
		}
		if j > 0 {
			n, _ := strconv.Atoi(rest[:j])
			implicitHs = n
			rest = rest[j:]
		}
	}

	charge := 0
	for len(rest) > 0 && (rest[0] == '+' || rest[0] == '-') {
		sign := 1
		if rest[0] == '-' {
			sign = -1
		}
		rest = rest[1:]
		j := 0
		for j < len(rest) && rest[j] >= '0' && rest[j] <= '9' {
			j++
		}
		if j > 0 {
			n, _ := strconv.Atoi(rest[:j])
			charge += sign * n
			rest = rest[j:]
		} else {
			charge += sign
		}
	}

	idx := p.mol.AddAtom(Atom{
		Symbol:     symbol,
		AtomicNum:  atomicNumForSymbol(symbol),
		Aromatic:   aromatic,
		Charge:     charge,
		Isotope:    isotope,
		ImplicitHs: implicitHs,
	})
	p.bondAfterAtom(idx, aromatic)
	return nil
}

func (p *smilesParser) parseRingClosure(number int) error {
	return p.closeOrOpenRing(number)
}

func (p *smilesParser) parsePercentRingClosure() error {
	if p.pos+2 >= len(p.src) {
		return p.errf("truncated '%%nn' ring closure")
	}
	digits := p.src[p.pos+1 : p.pos+3]
	n, err := strconv.Atoi(digits)
	if err != nil {
		return p.errf("invalid ring closure number %q", digits)
	}
	p.pos += 3
	return p.closeOrOpenRing(n)
}

func (p *smilesParser) closeOrOpenRing(number int) error {
	if p.prevAtom < 0 {
		return p.errf("ring closure digit %d with no preceding atom", number)
	}
	pending := p.prevBond
	pendingKnown := p.bondSet
	p.bondSet = false

	if open, ok := p.ringOpens[number]; ok {
		order := BondSingle
		switch {
		case pendingKnown:
			order = pending
		case open.bondKnown:
			order = open.bond
		case p.mol.Atoms[open.atom].Aromatic && p.mol.Atoms[p.prevAtom].Aromatic:
			order = BondAromatic
		}
		p.mol.AddBond(open.atom, p.prevAtom, order)
		delete(p.ringOpens, number)
		return nil
	}
	p.ringOpens[number] = ringOpen{atom: p.prevAtom, bond: pending, bondKnown: pendingKnown}
	return nil
}
