package trace

import (
	"strconv"
	"strings"
	"sync"

	"github.com/turtacn/rdktools-go/internal/chem/molgraph"
	"github.com/turtacn/rdktools-go/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/rdktools-go/pkg/errors"
)

// tokenString renders a radius and SMARTS fragment as the canonical
// "r{radius}:{smarts}" token string. The radius tag is always included;
// the façade never suppresses it.
func tokenString(radius int, smarts string) string {
	return "r" + strconv.Itoa(radius) + ":" + smarts
}

// tokenRadius extracts the radius from a token string of the "r{int}:..."
// shape: the substring between position 1 and the first ':' is the decimal
// radius. If the token does not begin with "r", has no ':', or the
// substring does not parse as a non-negative integer, the radius is 0.
// ErrCodeTokenParse is never raised here; malformed tokens simply bucket
// into radius 0.
func tokenRadius(token string) int {
	if !strings.HasPrefix(token, "r") {
		return 0
	}
	rest := token[1:]
	colon := strings.IndexByte(rest, ':')
	if colon < 0 {
		return 0
	}
	n, err := strconv.Atoi(rest[:colon])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// tokenSMARTS extracts the SMARTS fragment from a token string: everything
// after the first ':'. If the token has no ':' the whole token is the
// SMARTS.
func tokenSMARTS(token string) string {
	colon := strings.IndexByte(token, ':')
	if colon < 0 {
		return token
	}
	return token[colon+1:]
}

// computeMetrics derives (num_atoms, num_bonds, has_ring, num_hetero,
// has_unsat) by parsing the SMARTS fragment through the toolkit's SMARTS
// adapter and running ring perception on the resulting molecule, the same
// two-step adapter call the reference engine's compute_metrics makes
// (SmartsToMol followed by a ring-perception pass). If the SMARTS cannot be
// parsed or ring perception fails, the failure is wrapped with
// ErrCodeRingPerception and swallowed: the token still sorts, just with
// all-zero structural fields.
func computeMetrics(radius int, smarts, token string) TokenMetrics {
	m := TokenMetrics{Radius: radius, TokenString: token}
	if smarts == "" {
		return m
	}

	mol, err := toolkit.ParseSMARTS(smarts)
	if err != nil {
		_ = errors.Wrap(err, errors.ErrCodeRingPerception,
			"failed to parse SMARTS fragment for metrics computation")
		return m
	}

	m.NumAtoms = len(mol.Atoms)
	for _, a := range mol.Atoms {
		if a.AtomicNum != 1 && a.AtomicNum != 6 {
			m.NumHetero++
		}
	}

	m.NumBonds = len(mol.Bonds)
	for _, b := range mol.Bonds {
		if b.Order != molgraph.BondSingle {
			m.HasUnsat = 1
		}
	}

	if rings := toolkit.FindRings(mol); len(rings) > 0 {
		m.HasRing = 1
	}

	return m
}

// metricsCache is the process-wide, content-addressed mapping from token
// string to its TokenMetrics. Lookups read under the lock; on a miss the
// metrics are computed outside the lock (computeMetrics is a pure,
// allocation-only function, but the lock is still held for the shortest
// possible time), then inserted under the lock with insert-if-absent
// semantics so a race between two callers computing the same token resolves
// to identical values either way.
type metricsCache struct {
	mu  sync.Mutex
	byToken map[string]TokenMetrics
}

func newMetricsCache() *metricsCache {
	return &metricsCache{byToken: make(map[string]TokenMetrics)}
}

func (c *metricsCache) get(token string) (TokenMetrics, bool) {
	c.mu.Lock()
	m, ok := c.byToken[token]
	c.mu.Unlock()
	prometheus.RecordCacheAccessGlobal(ok)
	return m, ok
}

func (c *metricsCache) insertIfAbsent(token string, m TokenMetrics) TokenMetrics {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.byToken[token]; ok {
		return existing
	}
	c.byToken[token] = m
	return m
}

// metricsFor returns the TokenMetrics for token, computing and caching them
// on first use. It is the sole entry point the rest of the package uses to
// obtain a token's metrics.
func (c *metricsCache) metricsFor(token string) TokenMetrics {
	if m, ok := c.get(token); ok {
		return m
	}
	radius := tokenRadius(token)
	smarts := tokenSMARTS(token)
	m := computeMetrics(radius, smarts, token)
	return c.insertIfAbsent(token, m)
}

// globalMetricsCache is the single process-wide cache every façade
// invocation shares.
var globalMetricsCache = newMetricsCache()
