package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/shitchell/claude-stream/stream"
)

// fileWatcher tracks per-file read offsets so each filesystem event only
// processes appended lines.
type fileWatcher struct {
	proc         *stream.Processor
	positions    map[string]int64
	showFilename bool
	current      string
}

func newFileWatcher(proc *stream.Processor, showFilename bool) *fileWatcher {
	return &fileWatcher{
		proc:         proc,
		positions:    make(map[string]int64),
		showFilename: showFilename,
	}
}

// printFileHeader announces which file the following output came from.
// Only emitted when watching a directory and the source file changes.
func (w *fileWatcher) printFileHeader(path string) {
	if !w.showFilename || w.current == path {
		return
	}
	w.current = path
	fmt.Fprintln(w.proc.Out, w.proc.Formatter.Format([]stream.Block{
		stream.DividerBlock{Char: "─", Width: 60},
		stream.HeaderBlock{
			Text:   path,
			Level:  2,
			Icon:   "📄",
			Styles: stream.NewStyleSet(stream.StyleInfo),
		},
	}))
}

// processNewLines renders anything appended to path since the last read.
func (w *fileWatcher) processNewLines(path string) {
	fi, err := os.Stat(path)
	if err != nil || fi.IsDir() {
		return
	}
	offset := w.positions[path]
	if fi.Size() <= offset {
		return
	}

	w.printFileHeader(path)
	newOffset, err := w.proc.ProcessFileChunk(path, offset)
	if err != nil {
		fmt.Fprintf(w.proc.ErrOut, "warning: file IO error for %s: %v\n", path, err)
		return
	}
	w.positions[path] = newOffset
}

// processTail renders the last n lines of path and records its end offset
// so subsequent events read only new data.
func (w *fileWatcher) processTail(path string, n int) {
	fi, err := os.Stat(path)
	if err != nil || fi.IsDir() {
		return
	}
	if fi.Size() > 0 {
		w.printFileHeader(path)
	}
	offset, err := w.proc.ProcessFileTail(path, n)
	if err != nil {
		fmt.Fprintf(w.proc.ErrOut, "warning: file IO error for %s: %v\n", path, err)
		return
	}
	w.positions[path] = offset
}

// collectSessionFiles returns target itself when it is a file, otherwise
// every .jsonl file beneath it.
func collectSessionFiles(target string) ([]string, error) {
	fi, err := os.Stat(target)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return []string{target}, nil
	}
	var files []string
	err = filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".jsonl") {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// watchPath follows a session file or directory like tail -f, rendering
// appended records until ctx is cancelled. When tailLines > 0 each
// existing file contributes its last N lines first, most recent file
// first; otherwise existing content is skipped.
func watchPath(ctx context.Context, target string, proc *stream.Processor, tailLines int) error {
	fi, err := os.Stat(target)
	if err != nil {
		return err
	}

	fw := newFileWatcher(proc, fi.IsDir())

	files, err := collectSessionFiles(target)
	if err != nil {
		return err
	}

	if tailLines <= 0 {
		// Skip existing content; only new writes render.
		for _, f := range files {
			if info, err := os.Stat(f); err == nil {
				fw.positions[f] = info.Size()
			}
		}
	} else {
		sort.Slice(files, func(i, j int) bool {
			fi, ei := os.Stat(files[i])
			fj, ej := os.Stat(files[j])
			if ei != nil || ej != nil {
				return ei == nil
			}
			return fi.ModTime().After(fj.ModTime())
		})
		for _, f := range files {
			fw.processTail(f, tailLines)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// fsnotify watches are not recursive; add every subdirectory, and pick
	// up new ones from Create events below.
	if fi.IsDir() {
		err = filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				return watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return err
		}
	} else {
		if err := watcher.Add(filepath.Dir(target)); err != nil {
			return err
		}
	}

	fmt.Fprintf(proc.ErrOut, "\n%s\n\n", noticeStyle.Render("Watching for changes... (Ctrl+C to stop)"))

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(proc.ErrOut, "\nexiting")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			switch {
			case event.Has(fsnotify.Create):
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
					continue
				}
				if strings.HasSuffix(event.Name, ".jsonl") {
					fw.positions[event.Name] = 0
					fw.processNewLines(event.Name)
				}
			case event.Has(fsnotify.Write):
				if strings.HasSuffix(event.Name, ".jsonl") {
					fw.processNewLines(event.Name)
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(proc.ErrOut, "warning: watch error: %v\n", err)
		}
	}
}
