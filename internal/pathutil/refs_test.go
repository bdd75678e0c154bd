package pathutil

import "testing"

func TestRefHelpers(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"pattern", PatternPath(2), "patterns[2]"},
		{"entry", EntryPath(0, 1), "patterns[0].execute[1]"},
		{"field", FieldPath(EntryPath(1, 0), "subject"), "patterns[1].execute[0].subject"},
		{"field on empty base", FieldPath("", "patterns"), "patterns"},
		{"collection", CollectionRef("subject_strings", 3), "subject_strings[3]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestRefHelpersMatchBuilder(t *testing.T) {
	p := Get()
	defer Put(p)
	p.Push("patterns")
	p.PushIndex(4)
	p.Push("execute")
	p.PushIndex(7)

	if got, want := p.String(), EntryPath(4, 7); got != want {
		t.Errorf("builder = %q, helper = %q", got, want)
	}
}
