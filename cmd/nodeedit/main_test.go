package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunBuiltinSchema(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(nil, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	out := stdout.String()
	for _, want := range []string{"top node doc", "node paragraph", "[textblock]", "mark strong"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunSchemaFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(good, []byte("nodes:\n  - name: doc\n    content: text*\n  - name: text\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("[[nodes]]\ncontent = \"text*\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantOut    string
		wantErrOut string
	}{
		{"valid file", []string{"-q", good}, 0, good + ": ok", ""},
		{"invalid file", []string{bad}, 1, "", "nodes.0.name: required"},
		{"missing file", []string{filepath.Join(dir, "none.json")}, 1, "", "schema file not found"},
		{"unsupported", []string{filepath.Join(dir, "x.ini")}, 1, "", "unsupported schema file format"},
		{"debug logging", []string{"-log-level", "debug", "-q", good}, 0, good + ": ok", `msg="schema compiled"`},
		{"debug logging of a rejected file", []string{"-log-level", "debug", bad}, 1, "", `msg="schema rejected"`},
		{"bad log level", []string{"-log-level", "loud"}, 2, "", "invalid log level"},
		{"version", []string{"-version"}, 0, "nodeedit dev", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, &stdout, &stderr)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr %q)", code, tt.wantCode, stderr.String())
			}
			if !strings.Contains(stdout.String(), tt.wantOut) {
				t.Errorf("stdout = %q, want it to contain %q", stdout.String(), tt.wantOut)
			}
			if !strings.Contains(stderr.String(), tt.wantErrOut) {
				t.Errorf("stderr = %q, want it to contain %q", stderr.String(), tt.wantErrOut)
			}
		})
	}
}
