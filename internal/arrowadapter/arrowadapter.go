// Package arrowadapter marshals descriptor, fingerprint, and validity
// results into Apache Arrow records. It performs no chemistry itself; it is
// pure marshalling, handed already-computed Go values by
// internal/descriptors and returning columnar records ready to hand back to
// a caller expecting Arrow (a TensorFlow custom op, a Python FFI boundary,
// a file writer).
package arrowadapter

import (
	"strconv"

	"github.com/apache/arrow/go/v12/arrow"
	"github.com/apache/arrow/go/v12/arrow/array"
	"github.com/apache/arrow/go/v12/arrow/memory"

	"github.com/turtacn/rdktools-go/internal/descriptors"
)

// DescriptorsToArrow renders a slice of descriptors.Descriptors as a
// three-column Arrow record: molecular_weight, logp, tpsa, each a
// *array.Float64.
func DescriptorsToArrow(desc []descriptors.Descriptors) arrow.Record {
	pool := memory.NewGoAllocator()

	mwBuilder := array.NewFloat64Builder(pool)
	logpBuilder := array.NewFloat64Builder(pool)
	tpsaBuilder := array.NewFloat64Builder(pool)
	defer mwBuilder.Release()
	defer logpBuilder.Release()
	defer tpsaBuilder.Release()

	for _, d := range desc {
		mwBuilder.Append(d.MolecularWeight)
		logpBuilder.Append(d.LogP)
		tpsaBuilder.Append(d.TPSA)
	}

	mwArr := mwBuilder.NewFloat64Array()
	logpArr := logpBuilder.NewFloat64Array()
	tpsaArr := tpsaBuilder.NewFloat64Array()
	defer mwArr.Release()
	defer logpArr.Release()
	defer tpsaArr.Release()

	schema := arrow.NewSchema([]arrow.Field{
		{Name: "molecular_weight", Type: arrow.PrimitiveTypes.Float64},
		{Name: "logp", Type: arrow.PrimitiveTypes.Float64},
		{Name: "tpsa", Type: arrow.PrimitiveTypes.Float64},
	}, nil)

	return array.NewRecord(schema, []arrow.Array{mwArr, logpArr, tpsaArr}, int64(len(desc)))
}

// FingerprintsToArrow renders a slice of dense {0,1} fingerprint rows as a
// single flat *array.Uint8 column. The per-row bit width is carried in the
// record schema's "nbits" metadata field rather than as a FixedSizeBinary
// column, since fingerprint width varies by caller-supplied option and
// FixedSizeBinary would fix it at build time.
func FingerprintsToArrow(fps [][]byte) arrow.Record {
	pool := memory.NewGoAllocator()

	builder := array.NewUint8Builder(pool)
	defer builder.Release()

	nbits := 0
	if len(fps) > 0 {
		nbits = len(fps[0])
	}
	for _, row := range fps {
		for _, bit := range row {
			builder.Append(bit)
		}
	}

	arr := builder.NewUint8Array()
	defer arr.Release()

	md := arrow.NewMetadata([]string{"nbits"}, []string{strconv.Itoa(nbits)})
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "bits", Type: arrow.PrimitiveTypes.Uint8},
	}, &md)

	return array.NewRecord(schema, []arrow.Array{arr}, int64(len(fps)*nbits))
}

// ValidMaskToArrow renders a []bool as a single-column Arrow record of
// *array.Boolean.
func ValidMaskToArrow(valid []bool) arrow.Record {
	pool := memory.NewGoAllocator()

	builder := array.NewBooleanBuilder(pool)
	defer builder.Release()
	builder.AppendValues(valid, nil)

	arr := builder.NewBooleanArray()
	defer arr.Release()

	schema := arrow.NewSchema([]arrow.Field{
		{Name: "valid", Type: arrow.FixedWidthTypes.Boolean},
	}, nil)

	return array.NewRecord(schema, []arrow.Array{arr}, int64(len(valid)))
}
