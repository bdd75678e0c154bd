package resolver

import (
	"github.com/erraggy/rxdoc/document"
	"github.com/erraggy/rxdoc/rxerrors"
)

// ResolveValue returns the text v stands for. Literals are returned
// unchanged; a reference must index collection, whose document key is name.
func ResolveValue(v document.Value, collection []string, name string) (string, error) {
	switch v.Kind {
	case document.ValueLiteral:
		return v.Literal, nil
	case document.ValueRef:
		if v.Index < 0 || v.Index >= len(collection) {
			return "", &rxerrors.ReferenceError{Collection: name, Index: v.Index, Length: len(collection)}
		}
		return collection[v.Index], nil
	default:
		return "", &rxerrors.DocumentError{Message: "value is neither a string nor a reference"}
	}
}
