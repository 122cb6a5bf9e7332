package appdata

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/canzero/canzero-appdata/internal/fsutil"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// record is the persisted shape. The dirty flag never reaches disk.
type record struct {
	ConfigPath string `toml:"config_path,omitempty"`
}

// AppData mirrors the on-disk record in memory. It is not safe for
// concurrent use.
type AppData struct {
	loc    Location
	record record
	dirty  bool

	log            logrus.FieldLogger
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
	inst           *instruments
}

// Option customizes an AppData at construction.
type Option func(*AppData)

// WithLogger routes store diagnostics to l instead of the logrus standard logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(a *AppData) {
		if l != nil {
			a.log = l
		}
	}
}

// WithTracerProvider overrides the global otel tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(a *AppData) {
		a.tracerProvider = tp
	}
}

// WithMeterProvider overrides the global otel meter provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(a *AppData) {
		a.meterProvider = mp
	}
}

// New returns an empty, clean record bound to loc.
func New(loc Location, opts ...Option) *AppData {
	a := &AppData{
		loc: loc,
		log: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.inst = newInstruments(a.tracerProvider, a.meterProvider)
	return a
}

// Read loads the record stored at loc. A missing file yields an empty record
// and touches nothing on disk.
func Read(ctx context.Context, loc Location, opts ...Option) (*AppData, error) {
	a := New(loc, opts...)
	ctx, span := a.inst.start(ctx, opRead, loc)

	rec, err := a.load()
	a.inst.finish(ctx, span, opRead, err)
	if err != nil {
		return nil, err
	}
	a.record = rec
	return a, nil
}

func (a *AppData) load() (record, error) {
	var rec record
	data, err := os.ReadFile(a.loc.File)
	if errors.Is(err, fs.ErrNotExist) {
		a.log.WithField("path", a.loc.File).Debug("no appdata file; using defaults")
		return rec, nil
	}
	if err != nil {
		return rec, fmt.Errorf("read appdata: %w", err)
	}
	rec, err = decodeRecord(data, a.loc.File)
	if err != nil {
		a.log.WithError(err).WithField("path", a.loc.File).Error("appdata file is broken")
		return record{}, err
	}
	a.log.WithField("path", a.loc.File).Debug("loaded appdata")
	return rec, nil
}

func decodeRecord(data []byte, path string) (record, error) {
	var rec record
	if err := toml.Unmarshal(data, &rec); err != nil {
		return record{}, &ParseError{Path: path, Err: err}
	}
	if rec.ConfigPath != "" && !filepath.IsAbs(rec.ConfigPath) {
		return record{}, &ParseError{Path: path, Err: fmt.Errorf("config_path %q is not absolute", rec.ConfigPath)}
	}
	return rec, nil
}

func encodeRecord(rec record) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(rec); err != nil {
		return nil, fmt.Errorf("encode appdata: %w", err)
	}
	return buf.Bytes(), nil
}

// SetConfigPath stores the canonical form of path. An empty path clears the
// setting. Paths naming a directory are rejected with ErrInvalidConfigPath
// and leave the record unchanged. The record only becomes dirty when the
// stored value actually changes.
func (a *AppData) SetConfigPath(path string) error {
	next := ""
	if path != "" {
		canonical, err := fsutil.Canonicalize(path)
		if err != nil {
			return err
		}
		isDir, err := fsutil.IsDir(canonical)
		if err != nil {
			return fmt.Errorf("stat config path: %w", err)
		}
		if isDir {
			return fmt.Errorf("%w: %s is a directory", ErrInvalidConfigPath, canonical)
		}
		next = canonical
	}

	if next == a.record.ConfigPath {
		return nil
	}
	a.record.ConfigPath = next
	a.dirty = true
	return nil
}

// ConfigPath returns the stored path and whether one is set.
func (a *AppData) ConfigPath() (string, bool) {
	return a.record.ConfigPath, a.record.ConfigPath != ""
}

// Dirty reports whether the record holds changes not yet written to disk.
func (a *AppData) Dirty() bool {
	return a.dirty
}

// Location returns where the record is persisted.
func (a *AppData) Location() Location {
	return a.loc
}

// Flush writes the record when it diverged from disk, creating the storage
// directory first. Clean records perform no I/O.
func (a *AppData) Flush(ctx context.Context) error {
	if !a.dirty {
		return nil
	}
	ctx, span := a.inst.start(ctx, opFlush, a.loc)
	err := a.write()
	a.inst.finish(ctx, span, opFlush, err)
	if err != nil {
		return err
	}
	a.dirty = false
	a.log.WithField("path", a.loc.File).Debug("saved appdata")
	return nil
}

func (a *AppData) write() error {
	if err := fsutil.EnsureDir(a.loc.Dir); err != nil {
		return fmt.Errorf("create appdata dir: %w", err)
	}
	data, err := encodeRecord(a.record)
	if err != nil {
		return err
	}
	if err := os.WriteFile(a.loc.File, data, 0o644); err != nil {
		return fmt.Errorf("write appdata %s: %w", a.loc.File, err)
	}
	return nil
}

// Close flushes pending changes. It is meant to be deferred right after Read
// or New, with its error checked.
func (a *AppData) Close() error {
	return a.Flush(context.Background())
}
