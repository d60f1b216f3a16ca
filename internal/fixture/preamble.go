package fixture

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"text/template"

	"addsatgen/internal/config"
)

// TemplateDirEnv names a directory holding a replacement preamble.ll.tmpl.
const TemplateDirEnv = "ADDSATGEN_TEMPLATE_DIR"

const preambleFile = "preamble.ll.tmpl"

//go:embed templates/preamble.ll.tmpl
var defaultPreamble string

var (
	preambleOnce sync.Once
	preambleTmpl *template.Template
	preambleErr  error
)

type preambleData struct {
	Tool       string
	Pass       string
	Checker    string
	Generator  string
	DataLayout string
	Triple     string
}

func newPreambleData(cfg config.Config) preambleData {
	return preambleData{
		Tool:       cfg.Tool,
		Pass:       cfg.Pass,
		Checker:    cfg.Checker,
		Generator:  cfg.Generator,
		DataLayout: cfg.DataLayout,
		Triple:     cfg.Triple,
	}
}

func loadPreamble() (*template.Template, error) {
	preambleOnce.Do(func() {
		preambleTmpl, preambleErr = parsePreamble(os.Getenv(TemplateDirEnv))
	})
	return preambleTmpl, preambleErr
}

// parsePreamble parses dir/preamble.ll.tmpl, or the built-in preamble when
// dir is empty.
func parsePreamble(dir string) (*template.Template, error) {
	text := defaultPreamble
	if dir != "" {
		path := filepath.Join(dir, preambleFile)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", path, err)
		}
		text = string(data)
	}
	tmpl, err := template.New(preambleFile).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", preambleFile, err)
	}
	return tmpl, nil
}
