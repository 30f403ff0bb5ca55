// Command claude-stream parses and prettifies Claude Code JSONL session
// logs. It reads from a file, a session id, or stdin, and can follow files
// or whole project directories like tail -f.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/shitchell/claude-stream/stream"
)

type options struct {
	file    string
	session string
	latest  bool

	format string

	showThinking    bool
	hideThinking    bool
	showToolResults bool
	hideToolResults bool
	showMetadata    bool
	hideMetadata    bool
	lineNumbers     bool
	compact         bool

	showTypes    []string
	showSubtypes []string
	showTools    []string
	grep         []string
	exclude      []string

	watch string
	lines int
}

func newRootCmd() (*cobra.Command, *options) {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "claude-stream [file]",
		Short: "Parse and prettify Claude Code JSONL stream output",
		Long: `Parse and prettify Claude Code JSONL stream output.

Output formats:
  ansi        Terminal colors (default on a TTY)
  markdown    Markdown formatting
  plain       Plain text, no formatting (default when piped)`,
		Example: `  claude-stream session.jsonl                 # Parse entire file
  claude-stream session.jsonl -n 20           # Show last 20 lines
  claude-stream --latest -n 50                # Last 50 lines of most recent session
  claude-stream --latest --format markdown > out.md
  claude-stream --watch ~/.claude/projects/   # Watch all sessions
  claude-stream --watch .                     # Watch current dir's Claude sessions`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&opts.file, "file", "f", "", "read from JSONL file")
	fl.StringVar(&opts.session, "session", "", "find and parse session by UUID")
	fl.BoolVar(&opts.latest, "latest", false, "parse most recent session")
	cmd.MarkFlagsMutuallyExclusive("file", "session", "latest")

	fl.StringVarP(&opts.format, "format", "F", "", "output format: ansi, markdown, plain")

	fl.BoolVar(&opts.showThinking, "show-thinking", false, "show thinking blocks (default)")
	fl.BoolVar(&opts.hideThinking, "hide-thinking", false, "hide thinking blocks")
	fl.BoolVar(&opts.showToolResults, "show-tool-results", false, "show tool inputs and results (default)")
	fl.BoolVar(&opts.hideToolResults, "hide-tool-results", false, "hide tool inputs and results")
	fl.BoolVar(&opts.showMetadata, "show-metadata", false, "show uuid/session/timestamp metadata")
	fl.BoolVar(&opts.hideMetadata, "hide-metadata", false, "hide metadata (default)")
	fl.BoolVar(&opts.lineNumbers, "line-numbers", false, "prefix messages with their line number")
	fl.BoolVar(&opts.compact, "compact", false, "shorthand for --hide-metadata --hide-thinking --hide-tool-results")

	fl.StringArrayVar(&opts.showTypes, "show-type", nil, "show only these message types (repeatable)")
	fl.StringArrayVar(&opts.showSubtypes, "show-subtype", nil, "show only these subtypes (repeatable)")
	fl.StringArrayVar(&opts.showTools, "show-tool", nil, "show only these tools (repeatable)")
	fl.StringArrayVar(&opts.grep, "grep", nil, "include only messages matching pattern (repeatable)")
	fl.StringArrayVar(&opts.exclude, "exclude", nil, "exclude messages matching pattern (repeatable)")

	fl.StringVarP(&opts.watch, "watch", "w", "", "watch a file or directory for changes (like tail -f)")
	fl.IntVarP(&opts.lines, "lines", "n", 0, "show only last N lines (works with files and --watch)")

	return cmd, opts
}

// buildConfig resolves flags into a render config. --compact applies
// first; explicitly passed visibility flags override it.
func buildConfig(cmd *cobra.Command, opts *options) stream.Config {
	cfg := stream.DefaultConfig()

	if opts.compact {
		cfg.ShowThinking = false
		cfg.ShowToolResults = false
		cfg.ShowMetadata = false
		cfg.ShowTypes = stream.TypeSet("assistant", "user")
	}

	changed := cmd.Flags().Changed
	if changed("show-thinking") {
		cfg.ShowThinking = true
	}
	if changed("hide-thinking") {
		cfg.ShowThinking = false
	}
	if changed("show-tool-results") {
		cfg.ShowToolResults = true
	}
	if changed("hide-tool-results") {
		cfg.ShowToolResults = false
	}
	if changed("show-metadata") {
		cfg.ShowMetadata = true
	}
	if changed("hide-metadata") {
		cfg.ShowMetadata = false
	}
	cfg.ShowLineNumbers = opts.lineNumbers

	if len(opts.showTypes) > 0 {
		cfg.ShowTypes = stream.TypeSet(opts.showTypes...)
	}
	if len(opts.showSubtypes) > 0 {
		cfg.ShowSubtypes = stream.TypeSet(opts.showSubtypes...)
	}
	if len(opts.showTools) > 0 {
		cfg.ShowTools = stream.TypeSet(opts.showTools...)
	}
	cfg.GrepPatterns = opts.grep
	cfg.ExcludePatterns = opts.exclude

	return cfg
}

// pickFormatter maps a --format value to a formatter. With no explicit
// choice, the stdout color profile decides: terminals get ANSI, pipes and
// dumb terminals get plain text.
func pickFormatter(name string) (stream.Formatter, error) {
	switch name {
	case "ansi":
		return stream.NewANSIFormatter(), nil
	case "markdown":
		return stream.NewMarkdownFormatter(), nil
	case "plain":
		return stream.NewPlainFormatter(), nil
	case "":
		profile := colorprofile.Detect(os.Stdout, os.Environ())
		if profile == colorprofile.NoTTY || profile == colorprofile.Ascii {
			return stream.NewPlainFormatter(), nil
		}
		return stream.NewANSIFormatter(), nil
	}
	return nil, fmt.Errorf("unknown format: %s", name)
}

func run(cmd *cobra.Command, args []string, opts *options) error {
	cfg := buildConfig(cmd, opts)

	formatter, err := pickFormatter(opts.format)
	if err != nil {
		return err
	}
	proc := stream.NewProcessor(cfg, formatter)

	if opts.watch != "" {
		target, err := resolveWatchPath(opts.watch)
		if err != nil {
			return err
		}
		if _, err := os.Stat(target); err != nil {
			return fmt.Errorf("path not found: %s", opts.watch)
		}
		if target != opts.watch {
			fmt.Fprintf(proc.ErrOut, "watching: %s\n", target)
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return watchPath(ctx, target, proc, opts.lines)
	}

	path := opts.file
	if len(args) > 0 {
		path = args[0]
	}

	switch {
	case path != "":
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("file not found: %s", path)
		}
	case opts.session != "":
		path, err = findSessionFile(opts.session)
		if err != nil {
			return err
		}
	case opts.latest:
		path, err = latestSessionFile()
		if err != nil {
			return err
		}
	case !term.IsTerminal(int(os.Stdin.Fd())):
		return proc.ProcessStream(os.Stdin, opts.lines)
	default:
		return fmt.Errorf("no input source specified")
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return proc.ProcessStream(f, opts.lines)
}

func main() {
	cmd, _ := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}
