// Package cli wires the line-history log to a terminal front end: it ingests
// a file's commit history, materializes any revision or revision window with
// an annotation gutter, and can keep recording live saves.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/thiagokokada/linelog-go/internal/annotate"
	"github.com/thiagokokada/linelog-go/internal/git"
	"github.com/thiagokokada/linelog-go/internal/linediff"
	"github.com/thiagokokada/linelog-go/internal/linelog"
	"github.com/thiagokokada/linelog-go/internal/watch"
)

// Config describes one invocation. Rev < 0 selects the latest revision;
// From < 0 selects exact mode.
type Config struct {
	Path    string
	Rev     int
	From    int
	Plain   bool
	Syntax  bool
	Theme   annotate.ThemePreference
	Watch   bool
	Limit   int
	Verbose bool
}

func Run(cfg Config) error {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	svc, err := git.Open(filepath.Dir(cfg.Path))
	if err != nil {
		return err
	}
	rel, err := svc.RelPath(cfg.Path)
	if err != nil {
		return err
	}
	revs, err := svc.FileRevisions(rel, cfg.Limit)
	if err != nil {
		return err
	}
	log := linelog.New(linediff.Blocks)
	commits := ingest(log, revs)
	slog.Debug("history ingested",
		slog.String("file", rel),
		slog.Int("commits", len(revs)),
		slog.Int("revisions", log.MaxRev()),
	)

	if cfg.Watch {
		return runWatch(svc, log, rel)
	}
	if log.MaxRev() == 0 && len(revs) == 0 {
		return fmt.Errorf("%s has no committed history", rel)
	}

	b := resolveBounds(cfg.Rev, cfg.From, log.MaxRev())
	if b.ranged {
		log.CheckoutRange(b.start, b.rev)
	} else {
		log.Checkout(b.rev)
	}
	return annotate.Render(os.Stdout, log.Lines(), annotate.Options{
		Path:    rel,
		Plain:   cfg.Plain,
		Syntax:  cfg.Syntax,
		Theme:   cfg.Theme,
		Commits: commits,
	})
}

// runWatch seeds the log with the working copy, then records every
// debounced save until interrupted. All RecordText calls stay on this
// goroutine; the watcher only signals.
func runWatch(svc *git.Service, log *linelog.Log, rel string) error {
	record := func() {
		text, ok, err := svc.WorkingCopy(rel)
		if err != nil {
			slog.Error("read working copy", slog.String("file", rel), slog.Any("error", err))
			return
		}
		if !ok {
			// Deleted on disk: record the empty state, same as a deleting
			// commit.
			text = ""
		}
		before := log.MaxRev()
		rev := log.RecordText(text)
		if rev == before {
			slog.Debug("save without line changes", slog.String("file", rel))
			return
		}
		fmt.Printf("revision %d: %d lines\n", rev, len(log.Lines()))
	}
	record()

	w, err := watch.New(svc.AbsPath(rel), watch.DefaultDebounceDelay)
	if err != nil {
		return err
	}
	defer w.Close()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	fmt.Printf("watching %s at revision %d (ctrl-c to stop)\n", rel, log.MaxRev())
	for {
		select {
		case <-w.C:
			record()
		case <-interrupt:
			fmt.Printf("\nstopped at revision %d\n", log.MaxRev())
			return nil
		}
	}
}
