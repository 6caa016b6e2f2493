package ecfp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/rdktools-go/pkg/ecfp"
)

func TestDefaultOptions(t *testing.T) {
	opts := ecfp.DefaultOptions()
	assert.Equal(t, 2, opts.Radius)
	assert.True(t, opts.Isomeric)
	assert.False(t, opts.Kekulize)
	assert.True(t, opts.IncludePerCenter)
	assert.Equal(t, 2048, opts.FPNBits)
}

func TestTraceFromSMILES_Facade(t *testing.T) {
	result, err := ecfp.TraceFromSMILES("CCO", ecfp.DefaultOptions())
	require.NoError(t, err)
	assert.NotEmpty(t, result.Trace)
	assert.Len(t, result.Fingerprint, 2048)
}

func TestTraceFromSMILES_EmptyInput(t *testing.T) {
	result, err := ecfp.TraceFromSMILES("", ecfp.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "", result.Trace)
}
