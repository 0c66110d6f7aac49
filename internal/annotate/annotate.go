// Package annotate renders a checked-out line list for the terminal: a
// per-line revision gutter, deletion markers for range checkouts, and
// optional syntax highlighting.
package annotate

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/thiagokokada/linelog-go/internal/linelog"
)

// Commit is the metadata shown in the gutter for one revision, when the
// revision came from a repository commit rather than a live save.
type Commit struct {
	Hash string
	When time.Time
}

// Options control rendering.
type Options struct {
	// Path of the rendered file, used to pick a syntax lexer. Empty disables
	// highlighting regardless of Syntax.
	Path string
	// Plain suppresses the gutter. Deleted lines still get a "-" prefix so a
	// range checkout stays readable.
	Plain  bool
	Syntax bool
	Theme  ThemePreference
	// Commits maps revision numbers to commit metadata. Revisions without an
	// entry (live saves, revision 0) show the number alone.
	Commits map[int]Commit
}

// Render writes lines to w, one output line per input line. Line texts keep
// their own terminators, so Render adds none.
func Render(w io.Writer, lines []linelog.Line, opts Options) error {
	hl := newHighlighter(opts)
	gutter := newGutter(lines, opts)
	for _, line := range lines {
		if _, err := io.WriteString(w, gutter(line)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, hl(line.Text)); err != nil {
			return err
		}
	}
	return nil
}

// newGutter builds the per-line prefix formatter. The revision column is
// sized once for the widest revision on show.
func newGutter(lines []linelog.Line, opts Options) func(linelog.Line) string {
	anyDeleted := false
	maxRev := 0
	for _, line := range lines {
		anyDeleted = anyDeleted || line.Deleted
		maxRev = max(maxRev, line.Rev)
	}
	if opts.Plain {
		if !anyDeleted {
			return func(linelog.Line) string { return "" }
		}
		return func(line linelog.Line) string {
			if line.Deleted {
				return "-"
			}
			return " "
		}
	}
	revWidth := len(fmt.Sprint(maxRev))
	return func(line linelog.Line) string {
		marker := " "
		if line.Deleted {
			marker = "-"
		}
		if c, ok := opts.Commits[line.Rev]; ok {
			return fmt.Sprintf("%s%*d %s %s | ", marker, revWidth, line.Rev,
				c.Hash, c.When.Format("2006-01-02"))
		}
		return fmt.Sprintf("%s%*d | ", marker, revWidth, line.Rev)
	}
}

// newHighlighter returns the per-line text transform: identity when
// highlighting is off or no lexer matches the path.
func newHighlighter(opts Options) func(string) string {
	identity := func(text string) string { return text }
	if !opts.Syntax || opts.Path == "" {
		return identity
	}
	lexer := lexers.Match(opts.Path)
	if lexer == nil {
		return identity
	}
	lexer = chroma.Coalesce(lexer)
	style := styleForPreference(opts.Theme)
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		return identity
	}
	// Tokenising line by line loses multi-line constructs but keeps the
	// gutter column intact, since escapes never span output lines.
	return func(text string) string {
		iterator, err := lexer.Tokenise(nil, text)
		if err != nil {
			return text
		}
		var b strings.Builder
		if err := formatter.Format(&b, style, iterator); err != nil {
			return text
		}
		return b.String()
	}
}
