// Package report assembles the per-slide narratives into the final
// output and validates the inline image references against what was
// actually submitted.
package report

import (
	"fmt"
	"io"
	"regexp"
)

// reImageRef matches the inline reference tokens the service embeds,
// e.g. [image src=IMG_1_2.png caption="A bar chart"].
var reImageRef = regexp.MustCompile(`\[image src=([A-Za-z0-9_]+)\.png caption="([^"]*)"\]`)

// WritePlain writes one block per slide, each followed by a blank line,
// in slide order.
func WritePlain(w io.Writer, blocks []string) error {
	for _, block := range blocks {
		if _, err := fmt.Fprintf(w, "%s\n\n", block); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	return nil
}

// References returns the identifiers of all inline image tokens in a
// narrative, in order of appearance.
func References(narrative string) []string {
	var ids []string
	for _, m := range reImageRef.FindAllStringSubmatch(narrative, -1) {
		ids = append(ids, m[1])
	}
	return ids
}

// UnknownRefs returns the referenced identifiers that were never
// submitted for the slide. The service may omit identifiers but must
// not invent them; a non-empty result means the narrative references
// images the reader cannot resolve.
func UnknownRefs(narrative string, submitted []string) []string {
	known := make(map[string]bool, len(submitted))
	for _, id := range submitted {
		known[id] = true
	}

	var unknown []string
	for _, id := range References(narrative) {
		if !known[id] {
			unknown = append(unknown, id)
		}
	}
	return unknown
}
