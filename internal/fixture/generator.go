// Package fixture generates the add_sat lowering tests: one LLVM IR file per
// width, signedness and lane count, each carrying the wrapper under test and
// the CHECK lines describing its expected lowering.
package fixture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"text/template"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/txtar"

	"addsatgen/internal/config"
	"addsatgen/internal/diag"
	"addsatgen/internal/ir"
	"addsatgen/internal/mangle"
)

// Generator renders and writes fixtures for a configuration.
type Generator struct {
	cfg      config.Config
	reporter *diag.Reporter
	preamble *template.Template

	// create opens a fixture for writing.
	create func(path string) (io.WriteCloser, error)
}

// Result lists the fixtures a WriteAll call produced, in enumeration order.
type Result struct {
	Written []string
	Failed  []string
}

// StaleFile is a fixture on disk that no longer matches the generator.
type StaleFile struct {
	Name   string
	Reason string
}

// New validates cfg and prepares the preamble template. reporter receives
// per-fixture failures; a nil reporter discards them.
func New(cfg config.Config, reporter *diag.Reporter) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tmpl, err := loadPreamble()
	if err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	if reporter == nil {
		reporter = diag.NewReporter(io.Discard, "text")
	}
	return &Generator{
		cfg:      cfg,
		reporter: reporter,
		preamble: tmpl,
		create: func(path string) (io.WriteCloser, error) {
			return os.Create(path)
		},
	}, nil
}

// Variants returns the configured domain in enumeration order.
func (g *Generator) Variants() []Variant {
	return Variants(g.cfg.Widths, g.cfg.Lanes)
}

// Render produces the complete fixture text for v.
func (g *Generator) Render(v Variant) ([]byte, error) {
	var buf bytes.Buffer
	if err := g.preamble.Execute(&buf, newPreambleData(g.cfg)); err != nil {
		return nil, fmt.Errorf("fixture: render preamble for %s: %w", v, err)
	}
	callee := mangle.Function("add_sat", mangle.Params(v.Width, v.Signed, v.Lanes, 2))
	ir.PrintCallWrapper(&buf, ir.BinaryWrapper(v.FuncName(), callee, v.Type()))
	for _, c := range Checks(v) {
		fmt.Fprintln(&buf, c)
	}
	return buf.Bytes(), nil
}

// WriteAll writes every fixture into dir, creating it if needed. A fixture
// that cannot be written is reported and skipped; the remaining fixtures are
// still written. The returned error is non-nil only when dir cannot be
// created or ctx is cancelled.
func (g *Generator) WriteAll(ctx context.Context, dir string) (Result, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("fixture: create output dir: %w", err)
	}
	variants := g.Variants()
	ok := make([]bool, len(variants))

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.cfg.Jobs)
	for i, v := range variants {
		if gctx.Err() != nil {
			break
		}
		i, v := i, v
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(dir, v.FileName())
			if err := g.writeOne(path, v); err != nil {
				g.reporter.FileErrorf(path, 0, "%v", err)
				return nil
			}
			ok[i] = true
			return nil
		})
	}
	err := eg.Wait()
	if err == nil {
		err = ctx.Err()
	}

	var res Result
	for i, v := range variants {
		path := filepath.Join(dir, v.FileName())
		if ok[i] {
			res.Written = append(res.Written, path)
		} else {
			res.Failed = append(res.Failed, path)
		}
	}
	if err != nil {
		return res, fmt.Errorf("fixture: %w", err)
	}
	return res, nil
}

func (g *Generator) writeOne(path string, v Variant) (err error) {
	data, err := g.Render(v)
	if err != nil {
		return err
	}
	f, err := g.create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = closeErr
		}
	}()
	_, err = f.Write(data)
	return err
}

// Archive bundles every fixture into a single txtar archive keyed by file
// name.
func (g *Generator) Archive() (*txtar.Archive, error) {
	ar := &txtar.Archive{
		Comment: []byte(fmt.Sprintf("add_sat fixtures generated by %s.\n", g.cfg.Generator)),
	}
	for _, v := range g.Variants() {
		data, err := g.Render(v)
		if err != nil {
			return nil, err
		}
		ar.Files = append(ar.Files, txtar.File{Name: v.FileName(), Data: data})
	}
	return ar, nil
}

// WriteArchive writes the txtar form of Archive to w.
func (g *Generator) WriteArchive(w io.Writer) error {
	ar, err := g.Archive()
	if err != nil {
		return err
	}
	_, err = w.Write(txtar.Format(ar))
	return err
}

// Stale compares the fixtures in dir against a fresh rendering. Missing and
// differing fixtures are returned in enumeration order, followed by
// add_sat_*.ll files the configuration no longer produces.
func (g *Generator) Stale(dir string) ([]StaleFile, error) {
	var stale []StaleFile
	expected := make(map[string]struct{})
	for _, v := range g.Variants() {
		name := v.FileName()
		expected[name] = struct{}{}
		want, err := g.Render(v)
		if err != nil {
			return nil, err
		}
		got, err := os.ReadFile(filepath.Join(dir, name))
		switch {
		case errors.Is(err, fs.ErrNotExist):
			stale = append(stale, StaleFile{Name: name, Reason: "missing"})
		case err != nil:
			return nil, fmt.Errorf("fixture: read %s: %w", name, err)
		case !bytes.Equal(got, want):
			stale = append(stale, StaleFile{Name: name, Reason: "out of date"})
		}
	}

	matches, err := filepath.Glob(filepath.Join(dir, "add_sat_*.ll"))
	if err != nil {
		return nil, fmt.Errorf("fixture: list %s: %w", dir, err)
	}
	sort.Strings(matches)
	for _, m := range matches {
		name := filepath.Base(m)
		if _, ok := expected[name]; !ok {
			stale = append(stale, StaleFile{Name: name, Reason: "not generated"})
		}
	}
	return stale, nil
}
