package testutil

import (
	"sync"

	"github.com/erraggy/rxdoc/engine"
)

// FakeEngine is a scripted engine.Engine. Patterns listed in CompileErrors
// fail to compile with the given error; subjects listed in ExecuteErrors fail
// to execute. Any other execution returns Matches[pattern+"\x00"+subject], or
// a non-match when no entry exists.
type FakeEngine struct {
	CompileErrors map[string]error
	ExecuteErrors map[string]error
	Matches       map[string]*engine.Match
	// Concurrent is reported through the engine.Reentrant interface.
	Concurrent bool

	mu       sync.Mutex
	next     int
	live     map[int]bool
	compiled []FakeCall
	executed []FakeCall
}

// FakeCall records one Compile or Execute call.
type FakeCall struct {
	Pattern string
	Subject string
	Flags   engine.Flags
}

type fakeHandle struct {
	id      int
	pattern string
}

// MatchKey returns the Matches key for pattern and subject.
func MatchKey(pattern, subject string) string {
	return pattern + "\x00" + subject
}

// Compile implements engine.Engine.
func (f *FakeEngine) Compile(pattern string, flags engine.Flags) (engine.Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.compiled = append(f.compiled, FakeCall{Pattern: pattern, Flags: flags})
	if err, ok := f.CompileErrors[pattern]; ok {
		return nil, err
	}
	if f.live == nil {
		f.live = make(map[int]bool)
	}
	f.next++
	f.live[f.next] = true
	return &fakeHandle{id: f.next, pattern: pattern}, nil
}

// Execute implements engine.Engine.
func (f *FakeEngine) Execute(h engine.Handle, subject string, flags engine.Flags) (*engine.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fh, ok := h.(*fakeHandle)
	if !ok || !f.live[fh.id] {
		panic("testutil: execute on an invalid or released handle")
	}
	f.executed = append(f.executed, FakeCall{Pattern: fh.pattern, Subject: subject, Flags: flags})
	if err, ok := f.ExecuteErrors[subject]; ok {
		return nil, err
	}
	if m, ok := f.Matches[MatchKey(fh.pattern, subject)]; ok {
		return m, nil
	}
	return &engine.Match{}, nil
}

// Release implements engine.Engine.
func (f *FakeEngine) Release(h engine.Handle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if fh, ok := h.(*fakeHandle); ok {
		delete(f.live, fh.id)
	}
}

// Symbols implements engine.Engine.
func (f *FakeEngine) Symbols() *engine.SymbolTable {
	return engine.DefaultSymbols()
}

// Reentrant implements engine.Reentrant.
func (f *FakeEngine) Reentrant() bool {
	return f.Concurrent
}

// Compiled returns the Compile calls made so far.
func (f *FakeEngine) Compiled() []FakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]FakeCall(nil), f.compiled...)
}

// Executed returns the Execute calls made so far.
func (f *FakeEngine) Executed() []FakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]FakeCall(nil), f.executed...)
}

// Live returns the number of handles compiled but not yet released.
func (f *FakeEngine) Live() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.live)
}

// Str returns a pointer to s.
func Str(s string) *string {
	return &s
}

var (
	_ engine.Engine    = (*FakeEngine)(nil)
	_ engine.Reentrant = (*FakeEngine)(nil)
)
