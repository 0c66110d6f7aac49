package cli

import (
	"log/slog"

	"github.com/thiagokokada/linelog-go/internal/annotate"
	"github.com/thiagokokada/linelog-go/internal/git"
	"github.com/thiagokokada/linelog-go/internal/linelog"
)

// bounds is a resolved checkout request.
type bounds struct {
	rev    int
	start  int
	ranged bool
}

// resolveBounds clamps a requested revision window against the log's highest
// revision. rev < 0 or past the end selects the latest revision; from < 0
// selects exact mode, and a window start past the end revision collapses to
// an empty window at that revision.
func resolveBounds(rev, from, maxRev int) bounds {
	if rev < 0 || rev > maxRev {
		rev = maxRev
	}
	if from < 0 {
		return bounds{rev: rev}
	}
	return bounds{rev: rev, start: min(from, rev), ranged: true}
}

// ingest replays commits into the log, oldest first, and returns the gutter
// metadata keyed by revision. Commits without line changes consume no
// revision and get no entry, so revision numbers stay "number of edits".
func ingest(log *linelog.Log, revs []git.FileRevision) map[int]annotate.Commit {
	commits := make(map[int]annotate.Commit)
	for _, r := range revs {
		before := log.MaxRev()
		rev := log.RecordText(r.Text)
		if rev == before {
			slog.Debug("commit without line changes", slog.String("commit", r.ShortHash()))
			continue
		}
		slog.Debug("recorded commit",
			slog.Int("revision", rev),
			slog.String("commit", r.Summary),
		)
		commits[rev] = annotate.Commit{Hash: r.ShortHash(), When: r.Commit.Author.When}
	}
	return commits
}
