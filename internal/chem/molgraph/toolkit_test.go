package molgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultToolkit_ImplementsToolkit(t *testing.T) {
	var tk Toolkit = NewToolkit()
	mol, err := tk.ParseSMILES("CCO")
	require.NoError(t, err)
	assert.Equal(t, 3, mol.NumAtoms())

	bits := tk.MorganFingerprintBits(mol, 2, 2048, true)
	assert.NotEmpty(t, bits)

	env := tk.AtomEnvironmentOfRadius(mol, 0, 1)
	assert.NotEmpty(t, env)

	rings := tk.FindRings(mol)
	assert.Empty(t, rings)
}

func TestDefaultToolkit_KekulizeDelegates(t *testing.T) {
	tk := NewToolkit()
	mol, err := tk.ParseSMILES("c1ccccc1")
	require.NoError(t, err)
	kek, err := tk.Kekulize(mol)
	require.NoError(t, err)
	for _, a := range kek.Atoms {
		assert.False(t, a.Aromatic)
	}
}
