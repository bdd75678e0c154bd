// Package extproc processes rxdoc documents in a child process.
//
// Processing runs third-party regex code on caller-supplied patterns and
// subjects. Running it out of process isolates the caller from crashes and
// lets a runaway match be killed on a deadline:
//
//	doc := document.NewCompileOnly([]string{`^hello`, `unclosed(group`}, nil)
//	out, err := extproc.Run(ctx, doc, extproc.WithTimeout(5*time.Second))
//	if errors.Is(err, extproc.ErrTimeout) {
//		// the child was killed
//	}
//
// By default the child is "rxdoc process --no-norm --format json -q -" found
// on PATH; use [WithCommand] to point elsewhere.
package extproc
