package main

import (
	"github.com/ajaybhargavb/Razor/internal/lower"
	"github.com/ajaybhargavb/Razor/internal/pipeline"
)

// assemblePasses builds the standard pass list for one run. The design-time
// profile adds the class restructuring pass; the runner orders the result
// by priority. disabled may be nil.
func assemblePasses(designTime bool, disabled func(string) bool) []pipeline.Pass {
	passes := []pipeline.Pass{
		lower.DocumentClassifierPass{},
		lower.DirectiveClassifierPass{},
	}
	if designTime {
		passes = append(passes, lower.DesignTimeDirectivePass{})
	}
	if disabled == nil {
		return passes
	}
	kept := make([]pipeline.Pass, 0, len(passes))
	for _, p := range passes {
		if !disabled(p.Name()) {
			kept = append(kept, p)
		}
	}
	return kept
}
