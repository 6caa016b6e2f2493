package molgraph

// elementAtomicNum maps canonical element symbols to atomic numbers, covering
// the organic subset plus the halogens and a handful of common heteroatoms
// this engine is expected to see in practice.
var elementAtomicNum = map[string]int{
	"H": 1, "B": 5, "C": 6, "N": 7, "O": 8, "F": 9,
	"Si": 14, "P": 15, "S": 16, "Cl": 17,
	"Se": 34, "Br": 35, "I": 53,
	"Na": 11, "K": 19, "Mg": 12, "Ca": 20, "Fe": 26, "Zn": 30,
}

// aromaticSymbols is the set of lowercase one-letter symbols SMILES permits
// for aromatic atoms in the organic subset.
var aromaticSymbols = map[byte]string{
	'b': "B", 'c': "C", 'n': "N", 'o': "O", 'p': "P", 's': "S",
}

// atomicNumForSymbol returns the atomic number for a canonical (capitalised)
// element symbol, or 0 if unknown.
func atomicNumForSymbol(symbol string) int {
	return elementAtomicNum[symbol]
}

// symbolForAtomicNum is the reverse of elementAtomicNum, built once at
// package init. It is used by ParseSMARTS, whose atoms are written as
// "[#<atomicNum>]" and so never carry an element symbol directly.
var symbolForAtomicNum = func() map[int]string {
	out := make(map[int]string, len(elementAtomicNum))
	for sym, num := range elementAtomicNum {
		out[num] = sym
	}
	return out
}()

// defaultImplicitValence gives the normal covalent valence used to infer
// implicit hydrogen counts for organic-subset atoms without a bracket.
var defaultImplicitValence = map[string]int{
	"B": 3, "C": 4, "N": 3, "O": 2, "P": 3, "S": 2,
	"F": 1, "Cl": 1, "Br": 1, "I": 1,
}
