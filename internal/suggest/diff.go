package suggest

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Differences computes the change segments between an original clause and a
// proposed replacement using a Myers diff with semantic cleanup. Adjacent
// delete/insert pairs are folded into a single changed segment.
func Differences(original, suggested string) []Difference {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(original, suggested, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var out []Difference
	var pendingRemoval string
	hasPending := false

	flush := func() {
		if hasPending {
			out = append(out, Difference{Type: DiffRemoved, Original: pendingRemoval})
			pendingRemoval = ""
			hasPending = false
		}
	}

	for _, d := range diffs {
		text := strings.TrimSpace(d.Text)
		if text == "" {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			flush()
			pendingRemoval = text
			hasPending = true
		case diffmatchpatch.DiffInsert:
			if hasPending {
				out = append(out, Difference{Type: DiffChanged, Original: pendingRemoval, Suggested: text})
				pendingRemoval = ""
				hasPending = false
			} else {
				out = append(out, Difference{Type: DiffAdded, Suggested: text})
			}
		case diffmatchpatch.DiffEqual:
			flush()
		}
	}
	flush()

	return out
}
