package threads

import (
	"fmt"
	"regexp"
	"strconv"
)

// markerRe matches the labels the aggregator emits for thread sections.
// The id token is either a forum topic id or "None" for the general bucket,
// and the word boundary keeps "Thread 14" from matching inside "Thread 141".
var markerRe = regexp.MustCompile(`Thread (\d+|None)\b`)

// Directory maps forum topic ids to their display names. It is built once
// from configuration and never mutated afterwards, so it is safe to share
// across concurrent summary runs.
type Directory struct {
	names   map[int64]string
	general string
}

// NewDirectory builds a directory from a topic-id -> display-name map and
// the name of the general bucket (messages sent outside any topic).
func NewDirectory(names map[int64]string, general string) *Directory {
	copied := make(map[int64]string, len(names))
	for id, name := range names {
		copied[id] = name
	}
	return &Directory{names: copied, general: general}
}

// Name returns the display name for a topic id, or a generated
// "Thread {id}" label when the id is not in the directory.
func (d *Directory) Name(id int64) string {
	if name, ok := d.names[id]; ok {
		return name
	}
	return fmt.Sprintf("Thread %d", id)
}

// GeneralName returns the display name of the general bucket.
func (d *Directory) GeneralName() string {
	return d.general
}

// Reconcile rewrites every known thread marker in text with its display
// name. Markers for ids the directory does not know are left untouched:
// the "Thread {id}" fallback applies when labels are constructed, not when
// already-rendered text is rewritten. Applying Reconcile to its own output
// is a no-op since display names contain no marker substrings.
func (d *Directory) Reconcile(text string) string {
	return markerRe.ReplaceAllStringFunc(text, func(marker string) string {
		token := marker[len("Thread "):]
		if token == "None" {
			if d.general != "" {
				return d.general
			}
			return marker
		}
		id, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return marker
		}
		if name, ok := d.names[id]; ok {
			return name
		}
		return marker
	})
}
