package pathutil

import (
	"strconv"
	"sync"
)

// segment is a field name, or a sequence index when field is empty.
type segment struct {
	field string
	index int
}

// PathBuilder builds a location incrementally while a document is walked.
// Indices are kept as integers; text is only produced by String.
type PathBuilder struct {
	segs []segment
}

// Push appends a field name.
func (p *PathBuilder) Push(field string) {
	p.segs = append(p.segs, segment{field: field})
}

// PushIndex appends a sequence index, rendered "[i]".
func (p *PathBuilder) PushIndex(i int) {
	p.segs = append(p.segs, segment{index: i})
}

// Pop removes the last segment. Popping an empty builder is a no-op.
func (p *PathBuilder) Pop() {
	if n := len(p.segs); n > 0 {
		p.segs = p.segs[:n-1]
	}
}

// Depth returns the number of segments.
func (p *PathBuilder) Depth() int {
	return len(p.segs)
}

// Reset empties the builder, keeping its storage.
func (p *PathBuilder) Reset() {
	p.segs = p.segs[:0]
}

// String renders the location, e.g. "patterns[2].execute[0].subject".
func (p *PathBuilder) String() string {
	buf := make([]byte, 0, 16*len(p.segs))
	for i, s := range p.segs {
		if s.field == "" {
			buf = append(buf, '[')
			buf = strconv.AppendInt(buf, int64(s.index), 10)
			buf = append(buf, ']')
			continue
		}
		if i > 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, s.field...)
	}
	return string(buf)
}

// Documents nest at most patterns[i].execute[j].field, so pooled builders
// rarely grow; anything deeper than maxPooledDepth is left to the GC.
const maxPooledDepth = 16

var builders = sync.Pool{
	New: func() any {
		return &PathBuilder{segs: make([]segment, 0, 6)}
	},
}

// Get returns an empty builder from the pool. Return it with Put.
func Get() *PathBuilder {
	p := builders.Get().(*PathBuilder)
	p.Reset()
	return p
}

// Put recycles p.
func Put(p *PathBuilder) {
	if p == nil || cap(p.segs) > maxPooledDepth {
		return
	}
	builders.Put(p)
}
