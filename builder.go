// FILE: lixenwraith/treelog/builder.go
package treelog

// Builder provides a fluent API for building logger configurations.
// It wraps a Config instance and provides chainable methods for setting values.
type Builder struct {
	cfg *Config
	err error // Accumulate errors for deferred handling
}

// NewBuilder creates a new configuration builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Build creates a new Logger instance with the specified configuration.
func (b *Builder) Build() (*Logger, error) {
	if b.err != nil {
		return nil, b.err
	}
	return NewLogger(b.cfg)
}

// Name sets the logger name, used as the record category.
func (b *Builder) Name(name string) *Builder {
	b.cfg.Name = name
	return b
}

// Level sets the severity threshold.
func (b *Builder) Level(level Level) *Builder {
	if b.err != nil {
		return b
	}
	if !level.valid() {
		b.err = fmtErrorf("invalid level: %d", level)
		return b
	}
	b.cfg.Level = defaultLevelNames[level]
	return b
}

// LevelString sets the severity threshold from a string.
func (b *Builder) LevelString(level string) *Builder {
	if b.err != nil {
		return b
	}
	if _, err := ParseLevel(level); err != nil {
		b.err = err
		return b
	}
	b.cfg.Level = level
	return b
}

// Threading sets the threading policy: "guarded" or "uncontended".
func (b *Builder) Threading(threading string) *Builder {
	b.cfg.Threading = threading
	return b
}

// Parent attaches the new logger under an existing one.
func (b *Builder) Parent(parent *Logger) *Builder {
	b.cfg.Parent = parent
	return b
}

// Pattern sets the pattern applied to sinks built from this config.
func (b *Builder) Pattern(pattern string) *Builder {
	b.cfg.Pattern = pattern
	return b
}

// Sink attaches a pre-built sink to the new logger.
func (b *Builder) Sink(sink Sink) *Builder {
	b.cfg.Sinks = append(b.cfg.Sinks, sink)
	return b
}

// Console enables a console sink on the given target, "stdout" or
// "stderr".
func (b *Builder) Console(target string) *Builder {
	b.cfg.EnableConsole = true
	b.cfg.ConsoleTarget = target
	return b
}

// File enables a file sink writing to dir/name.ext.
func (b *Builder) File(dir, name, ext string) *Builder {
	b.cfg.EnableFile = true
	b.cfg.FileDirectory = dir
	b.cfg.FileName = name
	b.cfg.FileExtension = ext
	return b
}

// FileRotation sets the file sink's rotation policy.
func (b *Builder) FileRotation(maxSizeMB, maxBackups, maxAgeDays int64, compress bool) *Builder {
	b.cfg.FileMaxSizeMB = maxSizeMB
	b.cfg.FileMaxBackups = maxBackups
	b.cfg.FileMaxAgeDays = maxAgeDays
	b.cfg.FileCompress = compress
	return b
}

// Example usage:
// logger, err := treelog.NewBuilder().
//
//	Name("app").
//	LevelString("debug").
//	Console("stderr").
//	Pattern("{time}.{msec} {level} {category}: {message}").
//	Build()
//
// if err == nil {
//
//	 defer logger.Close()
//	 logger.Info("logger initialized")
//
// }
