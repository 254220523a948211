// Package scm fetches dependency sources. Git is the only supported SCM; it
// is driven through go-git and needs no git binary for remote URLs.
package scm

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	gogitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/kisixing/srcdeps-core/internal/build"
	"github.com/kisixing/srcdeps-core/internal/ctxlog"
)

const gitScheme = "git"

const remoteName = "origin"

// ErrUnsupportedSCM is returned for URLs whose scheme is not "git".
var ErrUnsupportedSCM = errors.New("unsupported SCM")

// SCM fetches the sources of a build request. This is the abstraction point
// for testing and for other version control backends.
type SCM interface {
	// Checkout places the sources of r.SrcVersion in r.ProjectRootDirectory.
	Checkout(ctx context.Context, r *build.Request) (Result, error)
}

// Result describes a successful checkout.
type Result struct {
	URL      string
	Dir      string
	Revision string
}

// Git checks out sources with go-git.
type Git struct{}

var _ SCM = (*Git)(nil)

// NewGit creates a go-git based SCM.
func NewGit() *Git {
	return &Git{}
}

// SplitURL splits "git:https://host/repo.git" into "git" and the location.
func SplitURL(u string) (scheme, location string, err error) {
	scheme, location, ok := strings.Cut(u, ":")
	if !ok || location == "" {
		return "", "", fmt.Errorf("invalid SCM URL %q: expected <scm>:<url>", u)
	}
	if scheme != gitScheme {
		return "", "", fmt.Errorf("%w %q in %q", ErrUnsupportedSCM, scheme, u)
	}
	return scheme, location, nil
}

// Checkout fetches the sources of r into r.ProjectRootDirectory and checks
// out r.SrcVersion. URLs are tried in order until one succeeds; if all fail
// the errors of every attempt are returned.
func (g *Git) Checkout(ctx context.Context, r *build.Request) (Result, error) {
	logger := ctxlog.FromContext(ctx)
	if len(r.ScmURLs) == 0 {
		return Result{}, fmt.Errorf("repository %s: no SCM URLs", r.RepositoryID)
	}
	if r.ProjectRootDirectory == "" {
		return Result{}, fmt.Errorf("repository %s: no project root directory", r.RepositoryID)
	}

	var errs []error
	for i, u := range r.ScmURLs {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		_, location, err := SplitURL(u)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		logger.Debug("checking out", "repository", r.RepositoryID, "url", location, "ref", r.SrcVersion.Ref())
		rev, err := g.checkoutFrom(ctx, r.ProjectRootDirectory, location, r.SrcVersion)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", u, err))
			if i < len(r.ScmURLs)-1 {
				logger.Warn("checkout failed, trying next URL", "repository", r.RepositoryID, "url", location, "error", err)
			}
			continue
		}
		logger.Info("checked out", "repository", r.RepositoryID, "dir", r.ProjectRootDirectory, "revision", rev)
		return Result{URL: u, Dir: r.ProjectRootDirectory, Revision: rev}, nil
	}
	return Result{}, fmt.Errorf("repository %s: %w", r.RepositoryID, errors.Join(errs...))
}

func (g *Git) checkoutFrom(ctx context.Context, dir, location string, v build.SrcVersion) (string, error) {
	repo, err := g.openOrClone(ctx, dir, location)
	if err != nil {
		return "", err
	}
	hash, err := Resolve(repo, v)
	if err != nil {
		return "", err
	}
	if err := CheckoutHash(repo, hash); err != nil {
		return "", err
	}
	return hash.String(), nil
}

// openOrClone fetches into an existing clone at dir, or clones location
// into dir. A failed clone removes only what it created: the whole
// directory when it did not exist before, otherwise just its .git.
func (g *Git) openOrClone(ctx context.Context, dir, location string) (*gogit.Repository, error) {
	repo, err := gogit.PlainOpen(dir)
	if err == nil {
		return repo, fetch(ctx, repo, location)
	}
	if !errors.Is(err, gogit.ErrRepositoryNotExists) {
		return nil, fmt.Errorf("opening %s: %w", dir, err)
	}

	dirExisted, err := exists(dir)
	if err != nil {
		return nil, err
	}
	gitDir := filepath.Join(dir, gogit.GitDirName)
	gitDirExisted, err := exists(gitDir)
	if err != nil {
		return nil, err
	}

	repo, err = gogit.PlainCloneContext(ctx, dir, false, &gogit.CloneOptions{
		URL:        location,
		RemoteName: remoteName,
		Tags:       gogit.AllTags,
	})
	if err != nil {
		switch {
		case !dirExisted:
			_ = os.RemoveAll(dir)
		case !gitDirExisted:
			_ = os.RemoveAll(gitDir)
		}
		return nil, fmt.Errorf("cloning: %w", err)
	}
	return repo, nil
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("checking %s: %w", path, err)
	}
}

func fetch(ctx context.Context, repo *gogit.Repository, location string) error {
	if err := setRemoteURL(repo, location); err != nil {
		return err
	}
	err := repo.FetchContext(ctx, &gogit.FetchOptions{
		RemoteName: remoteName,
		RefSpecs:   []gogitconfig.RefSpec{"+refs/heads/*:refs/remotes/origin/*"},
		Tags:       gogit.AllTags,
		Force:      true,
	})
	if err != nil && !errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return fmt.Errorf("fetching: %w", err)
	}
	return nil
}

func setRemoteURL(repo *gogit.Repository, location string) error {
	cfg, err := repo.Config()
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	remote, ok := cfg.Remotes[remoteName]
	if !ok {
		remote = &gogitconfig.RemoteConfig{
			Name:  remoteName,
			Fetch: []gogitconfig.RefSpec{"+refs/heads/*:refs/remotes/origin/*"},
		}
		cfg.Remotes[remoteName] = remote
	}
	remote.URLs = []string{location}
	if err := repo.SetConfig(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	return nil
}

// Resolve finds the commit v points to. Branches are looked up among the
// remote tracking branches first and then among local branches. Annotated
// tags are peeled to their commit.
func Resolve(repo *gogit.Repository, v build.SrcVersion) (plumbing.Hash, error) {
	var candidates []plumbing.Revision
	switch v.Kind() {
	case build.RefRevision:
		candidates = []plumbing.Revision{plumbing.Revision(v.Ref())}
	case build.RefBranch:
		candidates = []plumbing.Revision{
			plumbing.Revision(plumbing.NewRemoteReferenceName(remoteName, v.Ref())),
			plumbing.Revision(plumbing.NewBranchReferenceName(v.Ref())),
		}
	case build.RefTag:
		candidates = []plumbing.Revision{plumbing.Revision(plumbing.NewTagReferenceName(v.Ref()))}
	default:
		return plumbing.ZeroHash, fmt.Errorf("unsupported ref kind %s", v.Kind())
	}

	for _, rev := range candidates {
		h, err := repo.ResolveRevision(rev)
		if err == nil {
			return *h, nil
		}
	}
	return plumbing.ZeroHash, fmt.Errorf("%s %q not found", v.Kind(), v.Ref())
}

// CheckoutHash moves the worktree to a detached HEAD at hash, discarding
// local changes.
func CheckoutHash(repo *gogit.Repository, hash plumbing.Hash) error {
	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}
	if err := wt.Checkout(&gogit.CheckoutOptions{Hash: hash, Force: true}); err != nil {
		return fmt.Errorf("checking out %s: %w", hash, err)
	}
	return nil
}
