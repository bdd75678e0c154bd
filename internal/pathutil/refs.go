package pathutil

import "strconv"

// PatternPath returns "patterns[i]".
func PatternPath(i int) string {
	return "patterns[" + strconv.Itoa(i) + "]"
}

// EntryPath returns "patterns[i].execute[j]".
func EntryPath(i, j int) string {
	return PatternPath(i) + ".execute[" + strconv.Itoa(j) + "]"
}

// FieldPath appends a field name to a base path: "patterns[0].options".
func FieldPath(base, field string) string {
	if base == "" {
		return field
	}
	return base + "." + field
}

// CollectionRef returns "collection[i]", e.g. "subject_strings[3]".
func CollectionRef(collection string, i int) string {
	return collection + "[" + strconv.Itoa(i) + "]"
}
