package molgraph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/turtacn/rdktools-go/pkg/errors"
)

// ParseSMARTS parses the narrow SMARTS dialect that Molecule.FragmentToSMARTS
// emits: atoms written generically as "[#<atomicNum>]", optionally carrying
// an aromatic flag ("[#6;a]") and/or an atom-map suffix ("[#6:1]",
// "[#6;a:1]"), bonds written as one of -=#: immediately before the next atom
// or branch, parenthesised branches, and ring closures written as a bond
// symbol followed directly by a decimal ring number. It intentionally does
// not accept the organic subset, element symbols, or charge/isotope syntax —
// those belong to ParseSMILES — because every SMARTS string this engine ever
// parses is one it generated itself via FragmentToSMARTS. This is the
// adapter-level parse computeMetrics uses to build a real fragment molecule
// before running ring perception on it.
func ParseSMARTS(smarts string) (*Molecule, error) {
	p := &smartsParser{src: smarts}
	return p.parse()
}

type smartsParser struct {
	src string
	pos int

	mol       *Molecule
	prevAtom  int
	prevBond  BondOrder
	bondSet   bool
	branchStk []int
	ringOpens map[int]ringOpen
}

func (p *smartsParser) parse() (*Molecule, error) {
	if strings.TrimSpace(p.src) == "" {
		return nil, errors.New(errors.ErrCodeRingPerception, "SMARTS fragment is empty").
			WithDetail(fmt.Sprintf("input=%q", p.src))
	}

	p.mol = NewMolecule()
	p.prevAtom = -1
	p.ringOpens = make(map[int]ringOpen)

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
		case c >= '0' && c <= '9':
			if err := p.parseRingClosure(); err != nil {
				return nil, err
			}
		case c == '[':
			if err := p.parseAtom(); err != nil {
				return nil, err
			}
		default:
			return nil, p.errf("unexpected character %q", string(c))
		}
	}

	if len(p.branchStk) != 0 {
		return nil, p.errf("unclosed '('")
	}
	if len(p.ringOpens) != 0 {
		return nil, p.errf("unclosed ring bond")
	}
	if p.mol.NumAtoms() == 0 {
		return nil, errors.New(errors.ErrCodeRingPerception, "SMARTS fragment contains no atoms").
			WithDetail(fmt.Sprintf("input=%q", p.src))
	}
	return p.mol, nil
}

func (p *smartsParser) errf(format string, args ...interface{}) *errors.AppError {
	msg := fmt.Sprintf(format, args...)
	return errors.New(errors.ErrCodeRingPerception, fmt.Sprintf("could not parse SMARTS %q: %s", p.src, msg)).
		WithDetail(fmt.Sprintf("position=%d", p.pos))
}

// parseAtom parses a bracket atom of the form "[#<atomicNum>]",
// "[#<atomicNum>;a]", "[#<atomicNum>:<mapnum>]", or
// "[#<atomicNum>;a:<mapnum>]".
func (p *smartsParser) parseAtom() error {
	start := p.pos
	end := strings.IndexByte(p.src[start:], ']')
	if end < 0 {
		return p.errf("unclosed '['")
	}
	body := p.src[start+1 : start+end]
	p.pos = start + end + 1

	if len(body) == 0 || body[0] != '#' {
		return p.errf("SMARTS atom %q must begin with '#'", body)
	}
	rest := body[1:]

	j := 0
	for j < len(rest) && rest[j] >= '0' && rest[j] <= '9' {
		j++
	}
	if j == 0 {
		return p.errf("SMARTS atom %q has no atomic number", body)
	}
	atomicNum, err := strconv.Atoi(rest[:j])
	if err != nil {
		return p.errf("invalid atomic number in %q", body)
	}
	rest = rest[j:]

	aromatic := false
	if strings.HasPrefix(rest, ";a") {
		aromatic = true
		rest = rest[2:]
	}

	mapNum := 0
	if strings.HasPrefix(rest, ":") {
		rest = rest[1:]
		j = 0
		for j < len(rest) && rest[j] >= '0' && rest[j] <= '9' {
			j++
		}
		if j == 0 {
			return p.errf("SMARTS atom %q has a malformed atom-map suffix", body)
		}
		n, err := strconv.Atoi(rest[:j])
		if err != nil {
			return p.errf("invalid atom-map number in %q", body)
		}
		mapNum = n
		rest = rest[j:]
	}
	if rest != "" {
		return p.errf("unrecognised trailing content %q in SMARTS atom %q", rest, body)
	}

	idx := p.mol.AddAtom(Atom{
		Symbol:    symbolForAtomicNum[atomicNum],
		AtomicNum: atomicNum,
		Aromatic:  aromatic,
		MapNum:    mapNum,
	})
	p.bondAfterAtom(idx)
	return nil
}

// bondAfterAtom links the atom at atomIdx to the previous bonding cursor.
// Unlike ParseSMILES's organic subset, FragmentToSMARTS always writes an
// explicit bond symbol between atoms, so there is no aromatic-bond
// inference fallback here.
func (p *smartsParser) bondAfterAtom(atomIdx int) {
	if p.prevAtom >= 0 {
		order := BondSingle
		if p.bondSet {
			order = p.prevBond
		}
		p.mol.AddBond(p.prevAtom, atomIdx, order)
	}
	p.prevAtom = atomIdx
	p.bondSet = false
}

// parseRingClosure consumes a run of decimal digits and pairs it against
// p.ringOpens exactly as ParseSMILES's closeOrOpenRing does: the first
// sighting of a number opens it, the second closes it with a bond between
// the two recorded atoms.
func (p *smartsParser) parseRingClosure() error {
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	number, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil {
		return p.errf("invalid ring closure number %q", p.src[start:p.pos])
	}
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
		}
		p.mol.AddBond(open.atom, p.prevAtom, order)
		delete(p.ringOpens, number)
		return nil
	}
	p.ringOpens[number] = ringOpen{atom: p.prevAtom, bond: pending, bondKnown: pendingKnown}
	return nil
}
