package processor

import (
	"github.com/erraggy/rxdoc/engine"
	"github.com/erraggy/rxdoc/rxerrors"
)

// Option configures a Processor.
type Option func(*processConfig) error

type processConfig struct {
	engine      engine.Engine
	logger      Logger
	concurrency int
	symbols     *engine.SymbolTable
}

// applyOptions applies opts over the defaults: the coregex engine, no
// logging, sequential processing and the engine's own symbol table.
func applyOptions(opts ...Option) (*processConfig, error) {
	cfg := &processConfig{
		logger:      NopLogger{},
		concurrency: 1,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.engine == nil {
		cfg.engine = engine.New()
	}
	if cfg.symbols == nil {
		cfg.symbols = cfg.engine.Symbols()
	}
	if cfg.symbols == nil {
		return nil, &rxerrors.ConfigError{Option: "engine", Message: "engine reported no symbol table"}
	}
	return cfg, nil
}

// WithEngine sets the regex engine.
// Default: engine.New()
func WithEngine(e engine.Engine) Option {
	return func(cfg *processConfig) error {
		if e == nil {
			return &rxerrors.ConfigError{Option: "engine", Message: "must not be nil"}
		}
		cfg.engine = e
		return nil
	}
}

// WithLogger sets the logger.
// Default: NopLogger
func WithLogger(l Logger) Option {
	return func(cfg *processConfig) error {
		if l == nil {
			return &rxerrors.ConfigError{Option: "logger", Message: "must not be nil"}
		}
		cfg.logger = l
		return nil
	}
}

// WithConcurrency sets how many patterns may be processed at once. Values
// above 1 only take effect when the engine is reentrant. Output is the same
// as a sequential run.
// Default: 1
func WithConcurrency(n int) Option {
	return func(cfg *processConfig) error {
		if n < 1 {
			return &rxerrors.ConfigError{Option: "concurrency", Value: n, Message: "must be at least 1"}
		}
		cfg.concurrency = n
		return nil
	}
}

// WithSymbolTable overrides the option table used to resolve names.
// Default: the engine's Symbols()
func WithSymbolTable(t *engine.SymbolTable) Option {
	return func(cfg *processConfig) error {
		if t == nil {
			return &rxerrors.ConfigError{Option: "symbols", Message: "must not be nil"}
		}
		cfg.symbols = t
		return nil
	}
}
