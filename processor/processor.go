package processor

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/erraggy/rxdoc/document"
	"github.com/erraggy/rxdoc/engine"
	"github.com/erraggy/rxdoc/internal/issues"
	"github.com/erraggy/rxdoc/internal/pathutil"
	"github.com/erraggy/rxdoc/resolver"
	"github.com/erraggy/rxdoc/rxerrors"
)

// Processor annotates documents with compile and match results.
// A Processor holds no per-document state and may be reused.
type Processor struct {
	engine      engine.Engine
	logger      Logger
	concurrency int
	symbols     *engine.SymbolTable
}

// New returns a Processor configured by opts.
func New(opts ...Option) (*Processor, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &Processor{
		engine:      cfg.engine,
		logger:      cfg.logger,
		concurrency: cfg.concurrency,
		symbols:     cfg.symbols,
	}, nil
}

// Process is a convenience wrapper around New and (*Processor).Process.
func Process(doc *document.Document, opts ...Option) (*Result, error) {
	p, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return p.Process(doc)
}

// patternOutcome is what one pattern contributes to the result.
type patternOutcome struct {
	issues []Issue
	stats  Stats
}

func (o *patternOutcome) report(log Logger, path string, pattern, entry int, err error) {
	issue := issues.New(path, pattern, entry, err)
	o.issues = append(o.issues, issue)
	o.stats.Issues++
	log.Warn("skipping", "path", path, "kind", issue.Kind.String(), "error", err)
}

// Process validates doc and returns an annotated copy. doc itself is not
// modified. A structurally invalid document is rejected with a
// *rxerrors.DocumentError before any pattern is compiled; every other
// failure is local to a pattern or entry and reported in Result.Issues.
//
// Outputs are overwritten on every pass, so processing an annotated
// document again yields the same document.
func (p *Processor) Process(doc *document.Document) (*Result, error) {
	start := time.Now()
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	out := doc.Clone()
	runID := uuid.NewString()
	log := p.logger.With("run_id", runID)

	outcomes := make([]patternOutcome, len(out.Patterns))
	workers := p.concurrency
	if workers > 1 && !engine.IsReentrant(p.engine) {
		log.Warn("engine is not reentrant, processing sequentially", "concurrency", workers)
		workers = 1
	}
	log.Debug("processing document", "patterns", len(out.Patterns), "workers", workers)

	if workers > 1 && len(out.Patterns) > 1 {
		var g errgroup.Group
		g.SetLimit(workers)
		for i := range out.Patterns {
			g.Go(func() error {
				outcomes[i] = p.processPattern(log, out, i)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range out.Patterns {
			outcomes[i] = p.processPattern(log, out, i)
		}
	}

	result := &Result{Document: out, Issues: []Issue{}, RunID: runID}
	for _, o := range outcomes {
		result.Issues = append(result.Issues, o.issues...)
		result.Stats.add(o.stats)
	}
	result.ProcessTime = time.Since(start)

	log.Info("document processed",
		"patterns", result.Stats.Patterns,
		"compiled", result.Stats.Compiled,
		"matched", result.Stats.Matched,
		"issues", result.Stats.Issues,
		"elapsed", result.ProcessTime,
	)
	return result, nil
}

// processPattern compiles pattern i and runs its entries. It only writes
// to doc.Patterns[i].
func (p *Processor) processPattern(log Logger, doc *document.Document, i int) patternOutcome {
	pat := doc.Patterns[i]
	path := pathutil.PatternPath(i)
	o := patternOutcome{stats: Stats{Patterns: 1, Entries: len(pat.Execute)}}

	h, ok := p.compilePattern(log, doc, i, &o)
	if !ok {
		for _, e := range pat.Execute {
			clearEntry(e)
		}
		o.stats.Skipped += len(pat.Execute)
		return o
	}
	defer p.engine.Release(h)

	for j := range pat.Execute {
		p.executeEntry(log, doc, h, i, j, &o)
	}
	log.Debug("pattern done", "path", path, "entries", len(pat.Execute))
	return o
}

// compilePattern resolves and compiles pattern i. It reports whether a
// handle was produced. A pattern the engine rejects gets compile=false and
// the engine's error; a pattern that could not be resolved gets no outputs
// at all.
func (p *Processor) compilePattern(log Logger, doc *document.Document, i int, o *patternOutcome) (engine.Handle, bool) {
	pat := doc.Patterns[i]
	path := pathutil.PatternPath(i)
	pat.Compile, pat.Error = nil, nil

	text, err := resolver.ResolveValue(pat.Value, doc.PatternStrings, document.PatternStrings)
	if err != nil {
		o.report(log, pathutil.FieldPath(path, "value"), i, issues.NoEntry, err)
		return nil, false
	}
	set, err := resolver.NormalizeOptions(pat.Options, doc.CompileOptions, engine.NamespaceCompile, p.symbols)
	if err != nil {
		o.report(log, pathutil.FieldPath(path, "options"), i, issues.NoEntry, err)
		return nil, false
	}

	h, err := p.engine.Compile(text, set.Mask)
	if err != nil {
		var ce *engine.CompileError
		if errors.As(err, &ce) {
			pat.Compile = document.Bool(false)
			pat.Error = document.NewCompileError(ce.Message, ce.Offset)
			o.stats.CompileFailures++
			log.Debug("pattern rejected", "path", path, "message", ce.Message, "offset", ce.Offset)
			return nil, false
		}
		o.report(log, path, i, issues.NoEntry, asEngineError("compile", err))
		return nil, false
	}

	pat.Compile = document.Bool(true)
	o.stats.Compiled++
	log.Debug("pattern compiled", "path", path, "options", set.String())
	return h, true
}

// executeEntry runs entry j of pattern i against h. A failure only clears
// that entry.
func (p *Processor) executeEntry(log Logger, doc *document.Document, h engine.Handle, i, j int, o *patternOutcome) {
	e := doc.Patterns[i].Execute[j]
	path := pathutil.EntryPath(i, j)
	clearEntry(e)

	subject, err := resolver.ResolveValue(e.Subject, doc.SubjectStrings, document.SubjectStrings)
	if err != nil {
		o.report(log, pathutil.FieldPath(path, "subject"), i, j, err)
		return
	}
	set, err := resolver.NormalizeOptions(e.Options, doc.ExecuteOptions, engine.NamespaceExecute, p.symbols)
	if err != nil {
		o.report(log, pathutil.FieldPath(path, "options"), i, j, err)
		return
	}

	m, err := p.engine.Execute(h, subject, set.Mask)
	if err == nil && m == nil {
		err = &rxerrors.EngineError{Op: "execute", Message: "engine returned no result"}
	}
	if err != nil {
		o.report(log, path, i, j, asEngineError("execute", err))
		return
	}
	if !m.Matched {
		e.Match = document.Bool(false)
		o.stats.NotMatched++
		return
	}

	caps, err := ExtractCaptures(m.Groups, m.Names)
	if err != nil {
		o.report(log, path, i, j, err)
		return
	}
	e.Match = document.Bool(true)
	e.Captures = caps
	o.stats.Matched++
}

func clearEntry(e *document.Execution) {
	e.Match = nil
	e.Captures = nil
}

// asEngineError classifies an engine failure that is not already part of
// the taxonomy.
func asEngineError(op string, err error) error {
	if errors.Is(err, rxerrors.ErrExternalEngine) {
		return err
	}
	return &rxerrors.EngineError{Op: op, Message: "engine call failed", Cause: err}
}
