// Package git reads the revision history of a single file out of a git
// repository, in the form the line-history log wants to replay it: oldest
// first, one full text per commit that touched the file.
package git

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/binary"
)

type Service struct {
	repo repoState
}

type repoState struct {
	*gitlib.Repository
	path string
}

// FileRevision is one commit that changed the tracked file, with the file's
// full text as of that commit. Text is empty when the commit deleted the
// file.
type FileRevision struct {
	Commit  *object.Commit
	Summary string
	Text    string
}

// ShortHash returns the abbreviated commit hash used in gutters and logs.
func (r FileRevision) ShortHash() string {
	return r.Commit.Hash.String()[:7]
}

// Open locates the repository containing repoPath, walking up to the nearest
// .git directory the way git itself does.
func Open(repoPath string) (*Service, error) {
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, err
	}
	repo, err := gitlib.PlainOpenWithOptions(abs, &gitlib.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("resolve worktree: %w", err)
	}
	return &Service{repo: repoState{path: wt.Filesystem.Root(), Repository: repo}}, nil
}

func (s *Service) RepoPath() string {
	return s.repo.path
}

// RelPath converts path into the slash-separated repository-relative form
// that commit trees and log filters use.
func (s *Service) RelPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(s.repo.path, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside repository %s", path, s.repo.path)
	}
	return filepath.ToSlash(rel), nil
}

// AbsPath is the inverse of RelPath: the on-disk location of a
// repository-relative file.
func (s *Service) AbsPath(path string) string {
	return filepath.Join(s.repo.path, filepath.FromSlash(path))
}

// FileRevisions returns the commits that changed path, oldest first, each
// carrying the file's text at that commit. limit > 0 keeps only the most
// recent limit commits. A repository without commits yields no revisions and
// no error.
func (s *Service) FileRevisions(path string, limit int) ([]FileRevision, error) {
	slog.Debug("FileRevisions start", slog.String("path", path), slog.Int("limit", limit))
	head, err := s.repo.Head()
	if err != nil {
		if err == plumbing.ErrReferenceNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}
	iter, err := s.repo.Log(&gitlib.LogOptions{
		From:     head.Hash(),
		FileName: &path,
		Order:    gitlib.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, fmt.Errorf("read commits: %w", err)
	}
	defer iter.Close()

	// The iterator hands out newest first; collect at most limit and flip to
	// the replay order.
	var revs []FileRevision
	for {
		commit, err := iter.Next()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("iterate commits: %w", err)
		}
		text, err := fileText(commit, path)
		if err != nil {
			return nil, err
		}
		revs = append(revs, newFileRevision(commit, text))
		if limit > 0 && len(revs) == limit {
			break
		}
	}
	slices.Reverse(revs)
	slog.Debug("FileRevisions done", slog.Int("revisions", len(revs)))
	return revs, nil
}

// WorkingCopy reads the current on-disk text of a repository-relative file.
// ok is false when the file does not exist.
func (s *Service) WorkingCopy(path string) (text string, ok bool, err error) {
	data, err := os.ReadFile(s.AbsPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	bin, err := binary.IsBinary(bytes.NewReader(data))
	if err != nil {
		return "", false, err
	}
	if bin {
		return "", false, fmt.Errorf("%s is a binary file", path)
	}
	return string(data), true, nil
}

func fileText(c *object.Commit, path string) (string, error) {
	f, err := c.File(path)
	if err != nil {
		if err == object.ErrFileNotFound {
			// The commit deleted the file.
			return "", nil
		}
		return "", fmt.Errorf("read %s at %s: %w", path, c.Hash.String()[:7], err)
	}
	bin, err := f.IsBinary()
	if err != nil {
		return "", err
	}
	if bin {
		return "", fmt.Errorf("%s is a binary file at commit %s", path, c.Hash.String()[:7])
	}
	return f.Contents()
}

func newFileRevision(c *object.Commit, text string) FileRevision {
	return FileRevision{Commit: c, Summary: formatSummary(c), Text: text}
}

func formatSummary(c *object.Commit) string {
	firstLine := strings.SplitN(strings.TrimSpace(c.Message), "\n", 2)[0]
	// Truncate by runes so a multi-byte subject is never split mid-character.
	if runes := []rune(firstLine); len(runes) > 80 {
		firstLine = string(runes[:77]) + "..."
	}
	timestamp := c.Author.When.Format("2006-01-02 15:04")
	return fmt.Sprintf("%s  %s  %s", c.Hash.String()[:7], timestamp, firstLine)
}
