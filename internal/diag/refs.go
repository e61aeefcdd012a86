package diag

import (
	"sort"
	"strings"
)

// FormatRefs renders diagnostics into the stable reference form consumed by
// recorded diagnostics files: one "<id><span>" line per diagnostic, sorted
// deterministically. Returns "" when there is nothing to render — callers
// translate that into "no diagnostics file at all" rather than an empty one.
func FormatRefs(diags []Diagnostic) string {
	if len(diags) == 0 {
		return ""
	}

	ordered := make([]Diagnostic, len(diags))
	copy(ordered, diags)
	sort.SliceStable(ordered, func(i, j int) bool {
		di, dj := ordered[i], ordered[j]
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		return di.Code < dj.Code
	})

	var b strings.Builder
	for i, d := range ordered {
		b.WriteString(d.Ref())
		if i < len(ordered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// JoinRefs renders diagnostics inline, comma-separated, in the order given.
// Tree dumps append this after a token's content.
func JoinRefs(diags []Diagnostic) string {
	if len(diags) == 0 {
		return ""
	}
	refs := make([]string, 0, len(diags))
	for _, d := range diags {
		refs = append(refs, d.Ref())
	}
	return strings.Join(refs, ",")
}
