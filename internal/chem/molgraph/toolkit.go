package molgraph

// Toolkit is the narrow capability set the trace engine needs from a
// chemistry backend: SMILES parsing, kekulisation, ring perception, Morgan
// environment enumeration, and SMARTS serialisation of a fragment. It is
// defined as an interface, with defaultToolkit as the only implementation
// today, so that a future swap to a cgo-backed or external toolkit does not
// require touching internal/chem/trace.
type Toolkit interface {
	// ParseSMILES parses a SMILES string into a Molecule.
	ParseSMILES(smiles string) (*Molecule, error)

	// ParseSMARTS parses a SMARTS fragment (of the dialect FragmentToSMARTS
	// emits) into a Molecule, so that metrics computation can run ring
	// perception and atom/bond introspection on a real molecule rather than
	// re-deriving them from the fragment's textual shape.
	ParseSMARTS(smarts string) (*Molecule, error)

	// Kekulize returns a Kekulé-form clone of mol, converting aromatic bonds
	// to an alternating single/double pattern.
	Kekulize(mol *Molecule) (*Molecule, error)

	// FindRings returns the set of ring bonds in mol.
	FindRings(mol *Molecule) [][]int

	// MorganBitInfo returns, for every radius up to maxRadius, the Morgan
	// identifier produced at each atom, grouped by identifier.
	MorganBitInfo(mol *Molecule, maxRadius int, includeChirality bool) map[uint64][]Occurrence

	// AtomEnvironmentOfRadius returns the bond indices within radius hops of
	// center.
	AtomEnvironmentOfRadius(mol *Molecule, center, radius int) []int

	// FragmentToSMARTS renders the induced subgraph over atoms (restricted
	// to bonds) as a deterministic SMARTS string.
	FragmentToSMARTS(mol *Molecule, atoms map[int]bool, bonds map[int]bool, isomeric bool) (string, error)

	// MorganFingerprintBits folds every Morgan identifier up to maxRadius
	// into an nBits-wide bit vector.
	MorganFingerprintBits(mol *Molecule, maxRadius int, nBits int, includeChirality bool) map[int]bool
}

// defaultToolkit is the sole Toolkit implementation, delegating directly to
// the Molecule methods defined elsewhere in this package.
type defaultToolkit struct{}

// NewToolkit returns the default Toolkit implementation.
func NewToolkit() Toolkit {
	return defaultToolkit{}
}

func (defaultToolkit) ParseSMILES(smiles string) (*Molecule, error) {
	return ParseSMILES(smiles)
}

func (defaultToolkit) ParseSMARTS(smarts string) (*Molecule, error) {
	return ParseSMARTS(smarts)
}

func (defaultToolkit) Kekulize(mol *Molecule) (*Molecule, error) {
	return Kekulize(mol)
}

func (defaultToolkit) FindRings(mol *Molecule) [][]int {
	return mol.FindRings()
}

func (defaultToolkit) MorganBitInfo(mol *Molecule, maxRadius int, includeChirality bool) map[uint64][]Occurrence {
	return mol.MorganBitInfo(maxRadius, includeChirality)
}

func (defaultToolkit) AtomEnvironmentOfRadius(mol *Molecule, center, radius int) []int {
	return mol.AtomEnvironmentOfRadius(center, radius)
}

func (defaultToolkit) FragmentToSMARTS(mol *Molecule, atoms map[int]bool, bonds map[int]bool, isomeric bool) (string, error) {
	return mol.FragmentToSMARTS(atoms, bonds, isomeric)
}

func (defaultToolkit) MorganFingerprintBits(mol *Molecule, maxRadius int, nBits int, includeChirality bool) map[int]bool {
	return mol.MorganFingerprintBits(maxRadius, nBits, includeChirality)
}
