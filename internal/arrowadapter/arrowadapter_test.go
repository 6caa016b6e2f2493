package arrowadapter

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/rdktools-go/internal/descriptors"
)

func TestDescriptorsToArrow_RowCountAndColumns(t *testing.T) {
	desc := []descriptors.Descriptors{
		{MolecularWeight: 16.04, LogP: 0.6, TPSA: 0},
		{MolecularWeight: math.NaN(), LogP: math.NaN(), TPSA: math.NaN()},
	}
	rec := DescriptorsToArrow(desc)
	defer rec.Release()

	require.Equal(t, int64(2), rec.NumRows())
	require.Equal(t, int64(3), rec.NumCols())
	assert.Equal(t, "molecular_weight", rec.ColumnName(0))
	assert.Equal(t, "logp", rec.ColumnName(1))
	assert.Equal(t, "tpsa", rec.ColumnName(2))
}

func TestFingerprintsToArrow_NBitsMetadata(t *testing.T) {
	fps := [][]byte{
		{1, 0, 1, 0},
		{0, 0, 0, 1},
	}
	rec := FingerprintsToArrow(fps)
	defer rec.Release()

	require.Equal(t, int64(8), rec.NumRows())
	md := rec.Schema().Metadata()
	idx := md.FindKey("nbits")
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, strconv.Itoa(4), md.Values()[idx])
}

func TestFingerprintsToArrow_EmptyInput(t *testing.T) {
	rec := FingerprintsToArrow(nil)
	defer rec.Release()
	assert.Equal(t, int64(0), rec.NumRows())
}

func TestValidMaskToArrow_RowCount(t *testing.T) {
	rec := ValidMaskToArrow([]bool{true, false, true})
	defer rec.Release()
	assert.Equal(t, int64(3), rec.NumRows())
	assert.Equal(t, "valid", rec.ColumnName(0))
}
