package validate

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"addsatgen/internal/diag"
)

var (
	captureDef = regexp.MustCompile(`\[\[([A-Za-z_][A-Za-z0-9_]*):(.*?)\]\]`)
	captureUse = regexp.MustCompile(`\[\[([A-Za-z_][A-Za-z0-9_]*)\]\]`)
)

const (
	runPrefix   = "; RUN:"
	checkPrefix = "; CHECK:"
)

// CheckFixture verifies that data is a well-formed lit/FileCheck fixture:
// it has RUN directives, one define and one declare, and CHECK lines ending
// in a ret whose captures are each defined once before being referenced.
// Problems are reported against name.
func CheckFixture(name string, data []byte, reporter *diag.Reporter) error {
	if reporter == nil {
		return fmt.Errorf("no reporter provided for validation")
	}
	c := &checker{
		reporter: reporter,
		name:     name,
		defined:  make(map[string]int),
		used:     make(map[string]bool),
	}
	c.run(data)
	if c.errCount > 0 {
		return fmt.Errorf("%s: validation failed with %d issue(s)", name, c.errCount)
	}
	return nil
}

type checker struct {
	reporter *diag.Reporter
	name     string
	errCount int

	runs      int
	defines   int
	declares  int
	lastCheck string
	checkLine int

	defined map[string]int
	used    map[string]bool
	order   []string
}

func (c *checker) errorf(line int, format string, args ...any) {
	c.errCount++
	c.reporter.FileErrorf(c.name, line, format, args...)
}

func (c *checker) run(data []byte) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, runPrefix):
			c.runs++
		case strings.HasPrefix(line, checkPrefix):
			c.checkDirective(lineNo, strings.TrimSpace(strings.TrimPrefix(line, checkPrefix)))
		case strings.HasPrefix(line, "define "):
			c.defines++
		case strings.HasPrefix(line, "declare "):
			c.declares++
		}
	}
	if err := sc.Err(); err != nil {
		c.errorf(0, "read fixture: %v", err)
		return
	}
	c.finish()
}

func (c *checker) checkDirective(line int, body string) {
	c.lastCheck = body
	c.checkLine = line

	for _, m := range captureUse.FindAllStringSubmatch(body, -1) {
		name := m[1]
		if _, ok := c.defined[name]; !ok {
			c.errorf(line, "capture [[%s]] used before definition", name)
			continue
		}
		c.used[name] = true
	}
	for _, m := range captureDef.FindAllStringSubmatch(body, -1) {
		name, pattern := m[1], m[2]
		if prev, ok := c.defined[name]; ok {
			c.errorf(line, "capture [[%s]] redefined (first defined on line %d)", name, prev)
			continue
		}
		if _, err := regexp.Compile(pattern); err != nil {
			c.errorf(line, "capture [[%s]] has invalid pattern %q: %v", name, pattern, err)
		}
		c.defined[name] = line
		c.order = append(c.order, name)
	}
}

func (c *checker) finish() {
	if c.runs == 0 {
		c.errorf(0, "missing %q directive", runPrefix)
	}
	if c.defines != 1 {
		c.errorf(0, "expected exactly one define, found %d", c.defines)
	}
	if c.declares != 1 {
		c.errorf(0, "expected exactly one declare, found %d", c.declares)
	}
	if c.checkLine == 0 {
		c.errorf(0, "missing %q directives", checkPrefix)
		return
	}
	if !strings.HasPrefix(c.lastCheck, "ret ") {
		c.errorf(c.checkLine, "last CHECK must match the ret, got %q", c.lastCheck)
	}
	for _, name := range c.order {
		if !c.used[name] {
			c.reporter.FileWarnf(c.name, c.defined[name], "capture [[%s]] is never used", name)
		}
	}
}
