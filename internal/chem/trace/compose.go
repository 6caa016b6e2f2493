package trace

import (
	"sort"
	"strconv"
	"strings"

	"github.com/turtacn/rdktools-go/internal/chem/molgraph"
)

// multiplicationSign is U+00D7, encoded as the UTF-8 byte sequence C3 97.
const multiplicationSign = "×"

// rightArrowSeparator is U+2192, encoded as the UTF-8 byte sequence E2 86 92,
// surrounded by a single space on each side as required by the textual
// trace format.
const rightArrowSeparator = " → "

// composeTrace renders perCenter (and, when includePerCenter is true, mol's
// element symbols) into the bit-exact multi-line textual trace this engine
// exposes as its output format.
//
// Stage A renders one line per radius present in perCenter, in ascending
// radius order, aggregating identical tokens across all centers into a
// single "{token}×{count}" entry, the entries themselves sorted by the
// ascending complexity key.
//
// Stage B, only when includePerCenter and perCenter is non-empty, emits an
// empty line, the literal header "# per-center chains", then one line per
// center in ascending atom-index order chaining that center's tokens in
// ascending layer order with " → " between them.
//
// Stage C joins every emitted line with a single "\n" and adds no trailing
// newline.
func composeTrace(mol *molgraph.Molecule, perCenter map[int]map[int]string, includePerCenter bool) string {
	byRadius := map[int]map[string]int{}
	for _, layers := range perCenter {
		for layer, token := range layers {
			if byRadius[layer] == nil {
				byRadius[layer] = map[string]int{}
			}
			byRadius[layer][token]++
		}
	}

	var lines []string

	var radii []int
	for r := range byRadius {
		radii = append(radii, r)
	}
	sort.Ints(radii)
	for _, r := range radii {
		lines = append(lines, renderRadiusLine(r, byRadius[r]))
	}

	if includePerCenter && len(perCenter) > 0 {
		lines = append(lines, "")
		lines = append(lines, "# per-center chains")

		var centers []int
		for c := range perCenter {
			centers = append(centers, c)
		}
		sort.Ints(centers)
		for _, c := range centers {
			lines = append(lines, renderCenterLine(mol, c, perCenter[c]))
		}
	}

	return strings.Join(lines, "\n")
}

func renderRadiusLine(radius int, counts map[string]int) string {
	type entry struct {
		token   string
		count   int
		metrics TokenMetrics
	}
	entries := make([]entry, 0, len(counts))
	for token, count := range counts {
		entries = append(entries, entry{token: token, count: count, metrics: globalMetricsCache.metricsFor(token)})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].metrics.less(entries[j].metrics)
	})

	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, e.token+multiplicationSign+strconv.Itoa(e.count))
	}
	return "r" + strconv.Itoa(radius) + ": " + strings.Join(parts, ", ")
}

func renderCenterLine(mol *molgraph.Molecule, center int, layers map[int]string) string {
	var sortedLayers []int
	for l := range layers {
		sortedLayers = append(sortedLayers, l)
	}
	sort.Ints(sortedLayers)

	tokens := make([]string, 0, len(sortedLayers))
	for _, l := range sortedLayers {
		tokens = append(tokens, layers[l])
	}

	symbol := mol.Atoms[center].Symbol
	return symbol + strconv.Itoa(center) + ": " + strings.Join(tokens, rightArrowSeparator)
}
