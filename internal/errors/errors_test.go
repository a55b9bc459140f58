package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "deps error",
			code:    CodeMalformedDeps,
			wantMsg: "Dependency list changed shape",
			wantCat: CategoryDeps,
		},
		{
			name:    "render error",
			code:    CodeGateUnmounted,
			wantMsg: "Gate used after unmount",
			wantCat: CategoryRender,
		},
		{
			name:    "config error",
			code:    CodeConfigInvalid,
			wantMsg: "Invalid configuration",
			wantCat: CategoryConfig,
		},
		{
			name:    "unknown error code",
			code:    "M999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestIsMatchesByCode(t *testing.T) {
	sentinel := New(CodeMalformedDeps)
	err := fmt.Errorf("memo %q: %w", "total", New(CodeMalformedDeps).WithDetail("arity 2 -> 3"))

	if !stderrors.Is(err, sentinel) {
		t.Error("expected wrapped error to match sentinel by code")
	}
	if stderrors.Is(err, New(CodeGateUnmounted)) {
		t.Error("expected different code not to match")
	}
	if stderrors.Is(Newf(CategoryCLI, "no code"), Newf(CategoryCLI, "no code")) {
		t.Error("expected uncoded errors not to match each other")
	}
}

func TestErrorString(t *testing.T) {
	err := New(CodeUnknownSlot).WithDetailf("slot %q", "missing")
	want := `M005: Unknown state slot: slot "missing"`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	wrapped := New(CodeReportUpload).Wrap(stderrors.New("access denied"))
	if !strings.HasSuffix(wrapped.Error(), ": access denied") {
		t.Errorf("Error() = %q, want wrapped cause suffix", wrapped.Error())
	}
	if stderrors.Unwrap(wrapped) == nil {
		t.Error("expected Unwrap to return the cause")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, CodeConfigParse) != nil {
		t.Error("expected nil for nil input")
	}

	orig := New(CodeConfigInvalid)
	if FromError(orig, CodeConfigParse) != orig {
		t.Error("expected existing Error to pass through")
	}

	cause := stderrors.New("bad json")
	le := FromError(cause, CodeConfigParse)
	if le.Code != CodeConfigParse || le.Wrapped != cause {
		t.Errorf("FromError = %+v", le)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New(CodeGateUnmounted).WithDetail(`gate "child" was disposed`).WithExample("h.Mount()")
	out := err.Format()

	for _, want := range []string{
		"ERROR M002: Gate used after unmount",
		`gate "child" was disposed`,
		"Hint: Mount a new instance",
		"Example:",
		"    h.Mount()",
		"Learn more: https://memolab.dev/docs/errors/M002",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	err := New(CodeUnknownSlot).WithDetail("x")
	if got := err.FormatCompact(); got != "M005: Unknown state slot (x)" {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestFormatJSON(t *testing.T) {
	err := New(CodeRenderPanic).WithDetail("boom")
	var decoded map[string]string
	if e := json.Unmarshal([]byte(err.FormatJSON()), &decoded); e != nil {
		t.Fatalf("invalid JSON: %v", e)
	}
	if decoded["code"] != CodeRenderPanic || decoded["detail"] != "boom" {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five six seven", 10)
	for _, l := range lines {
		if len(l) > 10 {
			t.Errorf("line %q exceeds width", l)
		}
	}
	if strings.Join(lines, " ") != "one two three four five six seven" {
		t.Errorf("wrapText lost words: %v", lines)
	}
	if wrapText("", 10) != nil {
		t.Error("expected nil for empty text")
	}
}

func TestFprint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Fprint(&buf, fmt.Errorf("ctx: %w", New(CodeHolderDisposed)))
	if !strings.Contains(buf.String(), "ERROR M008") {
		t.Errorf("Fprint() = %q", buf.String())
	}

	buf.Reset()
	Fprint(&buf, stderrors.New("plain"))
	if !strings.Contains(buf.String(), "ERROR: plain") {
		t.Errorf("Fprint() = %q", buf.String())
	}
}

func TestRegistryComplete(t *testing.T) {
	for _, code := range GetAllCodes() {
		tmpl, ok := GetTemplate(code)
		if !ok {
			t.Fatalf("GetTemplate(%q) missing", code)
		}
		if tmpl.Message == "" || tmpl.DocURL == "" || tmpl.Category == "" {
			t.Errorf("incomplete template for %s: %+v", code, tmpl)
		}
		if !strings.HasSuffix(tmpl.DocURL, code) {
			t.Errorf("DocURL for %s should end with the code: %s", code, tmpl.DocURL)
		}
	}
}
