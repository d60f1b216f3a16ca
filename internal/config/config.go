package config

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// DefaultDataLayout is the SPIR 32-bit datalayout clspv tests are written
// against.
const DefaultDataLayout = "e-p:32:32-i64:64-v16:16-v24:32-v32:32-v48:64-v96:128-v192:256-v256:256-v512:512-v1024:1024"

// Config controls what the generator emits and where.
type Config struct {
	// OutputDir receives one file per variant.
	OutputDir string `yaml:"output_dir"`
	// Generator is named in the AUTO-GENERATED notice of every fixture.
	Generator string `yaml:"generator"`
	// Tool and Pass form the first RUN directive.
	Tool string `yaml:"tool"`
	Pass string `yaml:"pass"`
	// Checker is the pattern checker fed by the second RUN directive.
	Checker    string `yaml:"checker"`
	DataLayout string `yaml:"datalayout"`
	Triple     string `yaml:"triple"`
	Widths     []int  `yaml:"widths"`
	Lanes      []int  `yaml:"lanes"`
	// Jobs bounds how many fixtures are written concurrently.
	Jobs int `yaml:"jobs"`
}

var (
	supportedWidths = []int{8, 16, 32, 64}
	supportedLanes  = []int{1, 2, 3, 4, 8, 16}
)

// Default returns the configuration that reproduces the stock clspv
// add_sat fixtures.
func Default() Config {
	return Config{
		OutputDir:  ".",
		Generator:  "cmd/addsatgen",
		Tool:       "clspv-opt",
		Pass:       "-ReplaceOpenCLBuiltin",
		Checker:    "FileCheck",
		DataLayout: DefaultDataLayout,
		Triple:     "spir-unknown-unknown",
		Widths:     []int{8, 16, 32, 64},
		Lanes:      []int{1, 2, 3, 4},
		Jobs:       1,
	}
}

// Load reads a YAML file and overlays it on Default. Fields absent from the
// file keep their default values. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the generator cannot express.
func (c Config) Validate() error {
	if len(c.Widths) == 0 {
		return fmt.Errorf("config: at least one width is required")
	}
	for _, w := range c.Widths {
		if !slices.Contains(supportedWidths, w) {
			return fmt.Errorf("config: unsupported width %d (want one of %v)", w, supportedWidths)
		}
	}
	if len(c.Lanes) == 0 {
		return fmt.Errorf("config: at least one lane count is required")
	}
	for _, n := range c.Lanes {
		if !slices.Contains(supportedLanes, n) {
			return fmt.Errorf("config: unsupported lane count %d (want one of %v)", n, supportedLanes)
		}
	}
	if hasDuplicates(c.Widths) || hasDuplicates(c.Lanes) {
		return fmt.Errorf("config: widths and lanes must not repeat")
	}
	if c.Jobs < 1 {
		return fmt.Errorf("config: jobs must be >= 1 (got %d)", c.Jobs)
	}
	if c.Tool == "" || c.Checker == "" {
		return fmt.Errorf("config: tool and checker must be set")
	}
	return nil
}

func hasDuplicates(values []int) bool {
	seen := make(map[int]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			return true
		}
		seen[v] = struct{}{}
	}
	return false
}
