package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// claudeDir returns ~/.claude, the root Claude Code keeps its state under.
func claudeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".claude"), nil
}

// encodeProjectPath converts a filesystem path to the directory name
// Claude Code uses under ~/.claude/projects/.
//
// Letters, digits, and dashes pass through. Every other character becomes
// max(1, utf8_bytes/2) dashes: ASCII separators and BMP characters map to
// one dash, characters beyond the BMP (4 UTF-8 bytes) map to two.
func encodeProjectPath(path string) string {
	var b strings.Builder
	for _, r := range path {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' {
			b.WriteRune(r)
			continue
		}
		dashes := utf8.RuneLen(r) / 2
		if dashes < 1 {
			dashes = 1
		}
		b.WriteString(strings.Repeat("-", dashes))
	}
	return b.String()
}

// resolveWatchPath maps a user-supplied path to the session directory to
// watch. Paths already under ~/.claude pass through; otherwise the path is
// encoded and looked up under ~/.claude/projects/, falling back to the
// path itself when no project directory exists.
func resolveWatchPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	base, err := claudeDir()
	if err != nil {
		return abs, nil
	}
	if rel, err := filepath.Rel(base, abs); err == nil && !strings.HasPrefix(rel, "..") {
		return abs, nil
	}
	encoded := filepath.Join(base, "projects", encodeProjectPath(abs))
	if _, err := os.Stat(encoded); err == nil {
		return encoded, nil
	}
	return abs, nil
}

// findSessionFile locates the JSONL transcript for a session UUID by
// scanning ~/.claude/projects/.
func findSessionFile(sessionID string) (string, error) {
	if _, err := uuid.Parse(sessionID); err != nil {
		return "", fmt.Errorf("invalid session id %q: %w", sessionID, err)
	}
	base, err := claudeDir()
	if err != nil {
		return "", err
	}
	projects := filepath.Join(base, "projects")

	var found string
	target := sessionID + ".jsonl"
	err = filepath.WalkDir(projects, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if !d.IsDir() && d.Name() == target {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", fmt.Errorf("session not found: %s", sessionID)
	}
	return found, nil
}

// latestSessionFile returns the most recently modified transcript under
// ~/.claude/projects/.
func latestSessionFile() (string, error) {
	base, err := claudeDir()
	if err != nil {
		return "", err
	}
	projects := filepath.Join(base, "projects")

	var (
		newest     string
		newestTime time.Time
	)
	err = filepath.WalkDir(projects, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".jsonl") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.ModTime().After(newestTime) {
			newest = path
			newestTime = info.ModTime()
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if newest == "" {
		return "", fmt.Errorf("no sessions found")
	}
	return newest, nil
}
