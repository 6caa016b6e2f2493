package molgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMorganBitInfo_SingleAtomHasOnlyRadiusZero(t *testing.T) {
	mol, err := ParseSMILES("C")
	require.NoError(t, err)

	info := mol.MorganBitInfo(2, true)
	var layers []int
	for _, occs := range info {
		for _, o := range occs {
			layers = append(layers, o.Layer)
		}
	}
	assert.Contains(t, layers, 0)
	for _, l := range layers {
		assert.Equal(t, 0, l)
	}
}

func TestMorganBitInfo_EthanolRadiusZeroCoversEveryAtom(t *testing.T) {
	mol, err := ParseSMILES("CCO")
	require.NoError(t, err)

	info := mol.MorganBitInfo(0, true)
	distinctCenters := map[int]bool{}
	for _, occs := range info {
		for _, o := range occs {
			distinctCenters[o.Center] = true
		}
	}
	assert.Len(t, distinctCenters, 3)
	// Every atom gets a radius-0 occurrence. The terminal CH3 and the CH2
	// bonded to O differ in degree and implicit-hydrogen count, so their
	// radius-0 invariants already differ; the identifier count can never
	// exceed the atom count.
	assert.LessOrEqual(t, len(info), 3)
}

func TestAtomEnvironmentOfRadius_ZeroIsEmpty(t *testing.T) {
	mol, err := ParseSMILES("CCO")
	require.NoError(t, err)
	env := mol.AtomEnvironmentOfRadius(0, 0)
	assert.Empty(t, env)
}

func TestAtomEnvironmentOfRadius_OneIncludesImmediateBonds(t *testing.T) {
	mol, err := ParseSMILES("CCO")
	require.NoError(t, err)
	env := mol.AtomEnvironmentOfRadius(1, 1)
	assert.Len(t, env, 2)
}

func TestMorganFingerprintBits_WithinRange(t *testing.T) {
	mol, err := ParseSMILES("CCO")
	require.NoError(t, err)
	bits := mol.MorganFingerprintBits(2, 2048, true)
	require.NotEmpty(t, bits)
	for b := range bits {
		assert.GreaterOrEqual(t, b, 0)
		assert.Less(t, b, 2048)
	}
}

func TestMorganFingerprintBits_Deterministic(t *testing.T) {
	mol, err := ParseSMILES("c1ccccc1")
	require.NoError(t, err)
	a := mol.MorganFingerprintBits(2, 1024, true)
	b := mol.MorganFingerprintBits(2, 1024, true)
	assert.Equal(t, a, b)
}
