package cli

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/thiagokokada/linelog-go/internal/git"
	"github.com/thiagokokada/linelog-go/internal/linediff"
	"github.com/thiagokokada/linelog-go/internal/linelog"
)

func TestResolveBounds(t *testing.T) {
	tests := []struct {
		name              string
		rev, from, maxRev int
		want              bounds
	}{
		{name: "defaults pick the tip", rev: -1, from: -1, maxRev: 5, want: bounds{rev: 5}},
		{name: "explicit revision", rev: 3, from: -1, maxRev: 5, want: bounds{rev: 3}},
		{name: "revision past the end clamps", rev: 9, from: -1, maxRev: 5, want: bounds{rev: 5}},
		{name: "range", rev: 4, from: 1, maxRev: 5, want: bounds{rev: 4, start: 1, ranged: true}},
		{name: "range from zero", rev: -1, from: 0, maxRev: 5, want: bounds{rev: 5, start: 0, ranged: true}},
		{name: "window start past revision collapses", rev: 2, from: 4, maxRev: 5, want: bounds{rev: 2, start: 2, ranged: true}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := resolveBounds(tc.rev, tc.from, tc.maxRev); got != tc.want {
				t.Fatalf("resolveBounds(%d, %d, %d) = %+v, want %+v", tc.rev, tc.from, tc.maxRev, got, tc.want)
			}
		})
	}
}

func fileRevision(text, message string, when time.Time) git.FileRevision {
	return git.FileRevision{
		Commit: &object.Commit{
			Hash:    plumbing.ComputeHash(plumbing.CommitObject, []byte(message)),
			Message: message,
			Author:  object.Signature{Name: "Test", When: when},
		},
		Summary: message,
		Text:    text,
	}
}

func TestIngest_MapsRevisionsToCommits(t *testing.T) {
	epoch := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	revs := []git.FileRevision{
		fileRevision("a\n", "add", epoch),
		fileRevision("a\n", "mode-only change", epoch.Add(time.Minute)),
		fileRevision("a\nb\n", "extend", epoch.Add(2*time.Minute)),
	}

	log := linelog.New(linediff.Blocks)
	commits := ingest(log, revs)

	if log.MaxRev() != 2 {
		t.Fatalf("MaxRev() = %d, want 2 (the no-op commit consumes none)", log.MaxRev())
	}
	if len(commits) != 2 {
		t.Fatalf("got %d commit entries, want 2", len(commits))
	}
	if commits[1].Hash != revs[0].ShortHash() {
		t.Fatalf("revision 1 hash = %q, want %q", commits[1].Hash, revs[0].ShortHash())
	}
	if commits[2].Hash != revs[2].ShortHash() {
		t.Fatalf("revision 2 hash = %q, want %q", commits[2].Hash, revs[2].ShortHash())
	}
	if !commits[2].When.Equal(epoch.Add(2 * time.Minute)) {
		t.Fatalf("revision 2 time = %v", commits[2].When)
	}

	log.Checkout(2)
	if got := log.Text(); got != "a\nb\n" {
		t.Fatalf("Text() = %q, want %q", got, "a\nb\n")
	}
}

func TestIngest_LogsCommitSummaries(t *testing.T) {
	var buf strings.Builder
	orig := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer slog.SetDefault(orig)

	epoch := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	revs := []git.FileRevision{
		fileRevision("a\n", "add the file", epoch),
		fileRevision("a\n", "no line changes", epoch.Add(time.Minute)),
	}
	ingest(linelog.New(linediff.Blocks), revs)

	if got := buf.String(); !strings.Contains(got, "add the file") {
		t.Fatalf("ingest log output %q misses the recorded commit summary", got)
	}
	if got := buf.String(); strings.Contains(got, `commit="no line changes"`) {
		t.Fatalf("ingest log output %q records the no-op commit", got)
	}
}

func TestIngest_EmptyHistory(t *testing.T) {
	log := linelog.New(linediff.Blocks)
	if commits := ingest(log, nil); len(commits) != 0 {
		t.Fatalf("ingest(nil) = %v, want empty", commits)
	}
	if log.MaxRev() != 0 {
		t.Fatalf("MaxRev() = %d, want 0", log.MaxRev())
	}
}
