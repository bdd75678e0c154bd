package processor

import (
	"fmt"
	"maps"
	"slices"

	"github.com/erraggy/rxdoc/document"
	"github.com/erraggy/rxdoc/rxerrors"
)

// ExtractCaptures builds the captures of a successful match. groups holds
// group 0 followed by every capturing group, nil where a group did not
// participate; names maps group names to indices in groups. Group 0 is
// not reported. A name pointing at group 0 or past the end of groups is an
// engine error.
func ExtractCaptures(groups []*string, names map[string]int) (*document.Captures, error) {
	if len(groups) == 0 {
		return nil, &rxerrors.EngineError{Op: "captures", Message: "match reported without group 0"}
	}
	caps := &document.Captures{
		ByIndex: make([]*string, len(groups)-1),
		ByName:  make(map[string]*string, len(names)),
	}
	for i, g := range groups[1:] {
		caps.ByIndex[i] = copyString(g)
	}
	for _, name := range slices.Sorted(maps.Keys(names)) {
		idx := names[name]
		if idx <= 0 || idx >= len(groups) {
			return nil, &rxerrors.EngineError{
				Op:      "captures",
				Message: fmt.Sprintf("group %q refers to index %d but the match has %d groups", name, idx, len(groups)),
			}
		}
		caps.ByName[name] = copyString(groups[idx])
	}
	return caps, nil
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
