package gitsource

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ErrFileNotFound is returned when a path does not exist at a revision.
var ErrFileNotFound = errors.New("file not found at revision")

// CommitInfo describes a resolved revision.
type CommitInfo struct {
	SHA       string
	Author    string
	Email     string
	Timestamp time.Time
	Message   string
}

// ShortSHA returns the first seven characters of the commit hash.
func (c *CommitInfo) ShortSHA() string {
	if len(c.SHA) < 7 {
		return c.SHA
	}
	return c.SHA[:7]
}

// Repository reads files as committed in a local Git repository.
type Repository struct {
	repo *gogit.Repository
	root string
	mu   sync.RWMutex
}

// Open opens the repository containing path, searching parent directories
// for the .git directory.
func Open(path string) (*Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository at %s: %w", path, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}

	root, err := canonical(wt.Filesystem.Root())
	if err != nil {
		return nil, err
	}

	return &Repository{repo: repo, root: root}, nil
}

// Root returns the worktree root.
func (r *Repository) Root() string {
	return r.root
}

// Resolve resolves a revision such as "HEAD~1", a branch, a tag or a hash.
func (r *Repository) Resolve(rev string) (*CommitInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	commit, err := r.commit(rev)
	if err != nil {
		return nil, err
	}
	return commitInfo(commit), nil
}

// ReadFile returns the content of path at rev. Relative paths are taken
// from the working directory, as on the command line.
func (r *Repository) ReadFile(rev, path string) (string, *CommitInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rel, err := r.relative(path)
	if err != nil {
		return "", nil, err
	}

	commit, err := r.commit(rev)
	if err != nil {
		return "", nil, err
	}

	file, err := commit.File(rel)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return "", nil, fmt.Errorf("%s at %s: %w", rel, rev, ErrFileNotFound)
		}
		return "", nil, fmt.Errorf("failed to read %s at %s: %w", rel, rev, err)
	}

	content, err := file.Contents()
	if err != nil {
		return "", nil, fmt.Errorf("failed to read %s at %s: %w", rel, rev, err)
	}
	return content, commitInfo(commit), nil
}

// ChangedFiles returns the paths, relative to the root, that differ between
// two revisions and carry one of exts. Empty exts matches every file.
func (r *Repository) ChangedFiles(fromRev, toRev string, exts []string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	from, err := r.commit(fromRev)
	if err != nil {
		return nil, err
	}
	to, err := r.commit(toRev)
	if err != nil {
		return nil, err
	}

	fromTree, err := from.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to get tree for %s: %w", fromRev, err)
	}
	toTree, err := to.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to get tree for %s: %w", toRev, err)
	}

	changes, err := fromTree.Diff(toTree)
	if err != nil {
		return nil, fmt.Errorf("failed to diff trees: %w", err)
	}

	var files []string
	for _, change := range changes {
		// Deleted files have no destination and nothing to compile.
		name := change.To.Name
		if name == "" {
			continue
		}
		if matchesExt(name, exts) {
			files = append(files, name)
		}
	}
	return files, nil
}

func (r *Repository) commit(rev string) (*object.Commit, error) {
	if rev == "" {
		rev = "HEAD"
	}
	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve revision %q: %w", rev, err)
	}
	commit, err := r.repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("failed to get commit %s: %w", hash, err)
	}
	return commit, nil
}

// relative converts path to a slash-separated path inside the worktree.
func (r *Repository) relative(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	// The file may not exist in the worktree any more, so only its
	// directory is resolved.
	dir, err := canonical(filepath.Dir(abs))
	if err != nil {
		dir = filepath.Dir(abs)
	}
	abs = filepath.Join(dir, filepath.Base(abs))

	rel, err := filepath.Rel(r.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside the repository at %s", path, r.root)
	}
	return filepath.ToSlash(rel), nil
}

func canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	return resolved, nil
}

func commitInfo(c *object.Commit) *CommitInfo {
	return &CommitInfo{
		SHA:       c.Hash.String(),
		Author:    c.Author.Name,
		Email:     c.Author.Email,
		Timestamp: c.Author.When,
		Message:   c.Message,
	}
}

func matchesExt(name string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}
