package verdict

import (
	"regexp"
	"sort"
	"strconv"
)

var citationMarkerPattern = regexp.MustCompile(`\[(\d+)\]`)

// remapCitations renumbers model-supplied sources sequentially from 1 in
// order of first appearance and rewrites the explanation's [N] markers to
// match. Sources with no model-supplied index, or one already claimed by an
// earlier source, are skipped entirely. Markers citing an index with no
// mapping are left as-is (dangling citations).
func remapCitations(explanation string, sources []parsedSource) (string, []Source) {
	if len(sources) == 0 {
		return explanation, nil
	}

	mapping := make(map[int]int, len(sources))
	var out []Source
	next := 1
	for _, src := range sources {
		if src.Index == nil {
			continue
		}
		if _, seen := mapping[*src.Index]; seen {
			continue
		}
		mapping[*src.Index] = next
		out = append(out, Source{Index: next, Name: src.Name, URL: src.URL})
		next++
	}

	rewritten := citationMarkerPattern.ReplaceAllStringFunc(explanation, func(marker string) string {
		orig, err := strconv.Atoi(marker[1 : len(marker)-1])
		if err != nil {
			return marker
		}
		mapped, ok := mapping[orig]
		if !ok {
			return marker
		}
		return "[" + strconv.Itoa(mapped) + "]"
	})

	// Assignment order already yields ascending indices; the sort guards
	// against future reordering of the loop above.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Index < out[j].Index })

	return rewritten, out
}
