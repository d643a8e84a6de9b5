package crony

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestWithParser(t *testing.T) {
	parser := NewParser().WithCache()
	a := NewAnalyser(WithParser(parser))
	if a.parser != parser {
		t.Error("expected provided parser")
	}
}

func TestWithVerboseLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", log.LstdFlags)
	a := NewAnalyser(WithLogger(VerbosePrintfLogger(logger)))
	if a.logger.(printfLogger).logger != logger {
		t.Error("expected provided logger")
	}

	analyse(t, a, "#bogus")
	if out := buf.String(); !strings.Contains(out, "skipping invalid line,") {
		t.Error("expected to see the skipped line, got:", out)
	}
}

func TestWithIncludeDisabled(t *testing.T) {
	if NewAnalyser().includeDisabled {
		t.Error("disabled jobs should be excluded by default")
	}
	if !NewAnalyser(WithIncludeDisabled(true)).includeDisabled {
		t.Error("expected disabled jobs to be included")
	}
}

func TestWithHooksCopiesValue(t *testing.T) {
	var called bool
	hooks := AnalysisHooks{OnJobAnalysed: func(Job, int) { called = true }}
	a := NewAnalyser(WithLogger(DiscardLogger), WithHooks(hooks))

	// Changing the caller's copy afterwards has no effect.
	hooks.OnJobAnalysed = nil
	analyse(t, a, "* * * * * x")
	if !called {
		t.Error("expected the hook given to WithHooks to be called")
	}
}
