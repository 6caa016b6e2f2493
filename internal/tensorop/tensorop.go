// Package tensorop implements the TensorFlow-custom-operator-contract
// adapter: a two-output (traces, fingerprints) op whose element-wise
// substitution rules mirror what the native op does around empty input,
// adapter failures, and adapter-reported invalidity.
package tensorop

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/turtacn/rdktools-go/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/rdktools-go/pkg/ecfp"
)

// Attr mirrors the op's attribute set: the fixed width of every output
// fingerprint row.
type Attr struct {
	FingerprintSize int
}

// NewAttr validates fingerprintSize and returns an Attr, rejecting
// non-positive sizes the way the native op rejects a malformed
// fingerprint_size attribute at graph-construction time.
func NewAttr(fingerprintSize int) (Attr, error) {
	if fingerprintSize <= 0 {
		return Attr{}, fmt.Errorf("tensorop: fingerprint_size must be positive, got %d", fingerprintSize)
	}
	return Attr{FingerprintSize: fingerprintSize}, nil
}

// Process computes a trace string and a fingerprint row for every element
// of input, applying the op's substitution rules:
//
//   - an empty input element produces "" verbatim as its trace; its
//     fingerprint is left all-zero.
//   - if the underlying façade panics or returns an error for a non-empty
//     element, the trace becomes "[error] {message}" and the fingerprint is
//     left all-zero.
//   - if the façade returns "" for a non-empty element (a parse failure,
//     per the façade's soft-fail contract), the trace becomes "[invalid]"
//     and the fingerprint is whatever the façade returned (all-zero).
//   - otherwise the façade's trace and fingerprint are used verbatim.
//
// Work is dispatched across runtime.GOMAXPROCS(0) goroutines via
// golang.org/x/sync/errgroup; Process itself never returns a non-nil error
// for per-element failures, only for context cancellation.
func Process(ctx context.Context, input []string, attr Attr) ([]string, [][]byte, error) {
	traces := make([]string, len(input))
	fingerprints := make([][]byte, len(input))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, s := range input {
		i, s := i, s
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			trace, fp := processOne(s, attr)
			traces[i] = trace
			fingerprints[i] = fp
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return traces, fingerprints, nil
}

func processOne(s string, attr Attr) (trace string, fp []byte) {
	fp = make([]byte, attr.FingerprintSize)
	if s == "" {
		prometheus.RecordTensorOpElementGlobal("empty")
		return "", fp
	}

	result, err := callFacade(s, attr)
	if err != nil {
		prometheus.RecordTensorOpElementGlobal("error")
		return "[error] " + err.Error(), fp
	}
	if result.Trace == "" {
		prometheus.RecordTensorOpElementGlobal("invalid")
		return "[invalid]", result.Fingerprint
	}
	prometheus.RecordTensorOpElementGlobal("ok")
	return result.Trace, result.Fingerprint
}

// callFacade invokes the ECFP façade for a single input, recovering any
// panic as an error so Process's substitution rule for adapter failures
// applies uniformly whether the façade fails by error or by panic.
func callFacade(s string, attr Attr) (result ecfp.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = toError(r)
		}
	}()

	opts := ecfp.DefaultOptions()
	opts.FPNBits = attr.FingerprintSize
	return ecfp.TraceFromSMILES(s, opts)
}

func toError(r interface{}) error {
	if e, ok := r.(error); ok {
		return e
	}
	return errors.New(fmt.Sprint(r))
}
