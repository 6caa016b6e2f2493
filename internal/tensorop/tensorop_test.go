package tensorop

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAttr_RejectsNonPositive(t *testing.T) {
	_, err := NewAttr(0)
	assert.Error(t, err)
	_, err = NewAttr(-4)
	assert.Error(t, err)
}

func TestNewAttr_AcceptsPositive(t *testing.T) {
	attr, err := NewAttr(256)
	require.NoError(t, err)
	assert.Equal(t, 256, attr.FingerprintSize)
}

func TestProcess_EmptyElementYieldsEmptyTraceAndZeroFingerprint(t *testing.T) {
	attr, err := NewAttr(32)
	require.NoError(t, err)

	traces, fps, err := Process(context.Background(), []string{""}, attr)
	require.NoError(t, err)
	require.Len(t, traces, 1)
	assert.Equal(t, "", traces[0])
	require.Len(t, fps[0], 32)
	for _, b := range fps[0] {
		assert.Equal(t, byte(0), b)
	}
}

func TestProcess_InvalidInputYieldsInvalidMarker(t *testing.T) {
	attr, err := NewAttr(32)
	require.NoError(t, err)

	traces, fps, err := Process(context.Background(), []string{"((("}, attr)
	require.NoError(t, err)
	assert.Equal(t, "[invalid]", traces[0])
	require.Len(t, fps[0], 32)
}

func TestProcess_ValidInputYieldsVerbatimTrace(t *testing.T) {
	attr, err := NewAttr(64)
	require.NoError(t, err)

	traces, fps, err := Process(context.Background(), []string{"CCO"}, attr)
	require.NoError(t, err)
	assert.NotEmpty(t, traces[0])
	assert.Len(t, fps[0], 64)
}

func TestProcess_MixedBatchAllSubstitutionRules(t *testing.T) {
	attr, err := NewAttr(16)
	require.NoError(t, err)

	input := []string{"", "CCO", "((("}
	traces, fps, err := Process(context.Background(), input, attr)
	require.NoError(t, err)
	require.Len(t, traces, 3)
	assert.Equal(t, "", traces[0])
	assert.NotEmpty(t, traces[1])
	assert.Equal(t, "[invalid]", traces[2])
	for _, fp := range fps {
		assert.Len(t, fp, 16)
	}
}

func TestProcess_OrderPreservedAcrossConcurrency(t *testing.T) {
	attr, err := NewAttr(8)
	require.NoError(t, err)

	input := make([]string, 40)
	for i := range input {
		if i%3 == 0 {
			input[i] = ""
		} else if i%3 == 1 {
			input[i] = "CC"
		} else {
			input[i] = "((("
		}
	}

	traces, _, err := Process(context.Background(), input, attr)
	require.NoError(t, err)
	for i := range input {
		switch i % 3 {
		case 0:
			assert.Equal(t, "", traces[i])
		case 1:
			assert.NotEmpty(t, traces[i])
			assert.NotEqual(t, "[invalid]", traces[i])
		case 2:
			assert.Equal(t, "[invalid]", traces[i])
		}
	}
}
