package diag

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, "text")
	r.Errorf("boom %d", 1)
	r.FileWarnf("a.ll", 3, "unused capture [[%s]]", "x")
	r.FileErrorf("b.ll", 0, "missing RUN directive")

	want := strings.Join([]string{
		"error: boom 1",
		"a.ll:3: warning: unused capture [[x]]",
		"b.ll: error: missing RUN directive",
		"",
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("text output mismatch (-want +got):\n%s", diff)
	}
	if got := r.ErrorCount(); got != 2 {
		t.Fatalf("ErrorCount()=%d, want 2", got)
	}
	if got := r.WarningCount(); got != 1 {
		t.Fatalf("WarningCount()=%d, want 1", got)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, "json")
	r.FileErrorf("add_sat_char.ll", 12, "capture [[add]] used before definition")

	var got jsonDiagnostic
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &got); err != nil {
		t.Fatalf("decode json diagnostic: %v\n%s", err, buf.String())
	}
	want := jsonDiagnostic{
		Severity: "error",
		File:     "add_sat_char.ll",
		Line:     12,
		Message:  "capture [[add]] used before definition",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("json diagnostic mismatch (-want +got):\n%s", diff)
	}
}

func TestUnknownFormatFallsBackToText(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf, "yaml").Warnf("hello")
	if got := buf.String(); got != "warning: hello\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestNilWriterStillCounts(t *testing.T) {
	r := NewReporter(nil, "text")
	if r.HasErrors() {
		t.Fatalf("fresh reporter should have no errors")
	}
	r.Errorf("x")
	if !r.HasErrors() {
		t.Fatalf("expected HasErrors after Errorf")
	}
}

func TestConcurrentReports(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, "text")
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Errorf("worker failure")
		}()
	}
	wg.Wait()
	if got := r.ErrorCount(); got != 16 {
		t.Fatalf("ErrorCount()=%d, want 16", got)
	}
	if got := strings.Count(buf.String(), "\n"); got != 16 {
		t.Fatalf("expected 16 lines, got %d", got)
	}
}
