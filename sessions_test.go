package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEncodeProjectPath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "typical project path",
			in:   "/Users/foo/my-project",
			want: "-Users-foo-my-project",
		},
		{
			name: "dots and underscores become dashes",
			in:   "/home/u/a_b.c",
			want: "-home-u-a-b-c",
		},
		{
			name: "spaces become dashes",
			in:   "/tmp/my project",
			want: "-tmp-my-project",
		},
		{
			name: "dashes preserved",
			in:   "already-dashed",
			want: "already-dashed",
		},
		{
			name: "unicode letters preserved",
			in:   "/tmp/café",
			want: "-tmp-café",
		},
		{
			name: "cjk letters preserved",
			in:   "/tmp/日本",
			want: "-tmp-日本",
		},
		{
			name: "four-byte rune becomes two dashes",
			in:   "/tmp/😀",
			want: "-tmp---",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := encodeProjectPath(tt.in); got != tt.want {
				t.Errorf("encodeProjectPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestResolveWatchPathUnderClaudeDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	in := filepath.Join(home, ".claude", "projects", "some-proj")
	got, err := resolveWatchPath(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != in {
		t.Errorf("got %q, want pass-through %q", got, in)
	}
}

func TestResolveWatchPathFallsBackToInput(t *testing.T) {
	in := filepath.Join(t.TempDir(), "no-such-claude-project")
	got, err := resolveWatchPath(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != in {
		t.Errorf("got %q, want %q", got, in)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("result not absolute: %q", got)
	}
}

func TestFindSessionFileRejectsBadID(t *testing.T) {
	_, err := findSessionFile("not-a-uuid")
	if err == nil {
		t.Fatal("expected error for malformed session id")
	}
	if !strings.Contains(err.Error(), "invalid session id") {
		t.Errorf("err = %v, want invalid session id message", err)
	}
}
