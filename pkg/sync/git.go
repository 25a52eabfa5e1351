// Package sync keeps the data directory in a git repository and exchanges
// it with a remote.
package sync

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/stefanpenner/lodestar/pkg/logging"
	"github.com/stefanpenner/lodestar/pkg/tasks"
)

// ignored lists what stays on this machine. The task database is binary and
// would conflict on every pull, so tasks do not travel between devices.
var ignored = []string{
	logging.FileName,
	tasks.DBFileName,
	tasks.DBFileName + "-*",
}

// ErrNotRepo is returned by Sync when the data directory has no repository yet.
var ErrNotRepo = errors.New("not a git repository, run 'lodestar init' first")

// Repo is the git repository rooted at Dir. Progress lines and git output go
// to Out.
type Repo struct {
	Dir    string
	Out    io.Writer
	Logger *logging.Logger
	now    func() time.Time
}

// NewRepo returns a Repo for dir writing progress to out.
func NewRepo(dir string, out io.Writer, log *logging.Logger) *Repo {
	if out == nil {
		out = io.Discard
	}
	if log == nil {
		log = logging.NopLogger()
	}
	return &Repo{Dir: dir, Out: out, Logger: log, now: time.Now}
}

func (r *Repo) git(args ...string) *exec.Cmd {
	return exec.Command("git", append([]string{"-C", r.Dir}, args...)...)
}

// run executes git with its output streamed to Out.
func (r *Repo) run(args ...string) error {
	cmd := r.git(args...)
	cmd.Stdout = r.Out
	cmd.Stderr = r.Out
	return cmd.Run()
}

func (r *Repo) printf(format string, args ...any) {
	fmt.Fprintf(r.Out, format+"\n", args...)
}

// IsRepo reports whether Dir already holds a git repository.
func (r *Repo) IsRepo() bool {
	_, err := os.Stat(filepath.Join(r.Dir, ".git"))
	return err == nil
}

// Init creates the repository if needed and points origin at remote.
// An empty remote leaves the remotes untouched.
func (r *Repo) Init(remote string) error {
	if err := os.MkdirAll(r.Dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", r.Dir, err)
	}
	if !r.IsRepo() {
		if err := r.run("init", "--quiet"); err != nil {
			return fmt.Errorf("git init: %w", err)
		}
		r.Logger.Info("git repository created", "dir", r.Dir)
	}
	ignore := filepath.Join(r.Dir, ".gitignore")
	if _, err := os.Stat(ignore); os.IsNotExist(err) {
		if err := os.WriteFile(ignore, []byte(strings.Join(ignored, "\n")+"\n"), 0644); err != nil {
			return fmt.Errorf("writing .gitignore: %w", err)
		}
	}

	if remote == "" {
		r.printf("No remote specified. Use --remote <url> to set one.")
		return nil
	}

	// ignore the error when origin does not exist yet
	_ = r.git("remote", "remove", "origin").Run()

	if err := r.run("remote", "add", "origin", remote); err != nil {
		return fmt.Errorf("setting remote: %w", err)
	}
	r.Logger.Info("git remote set", "remote", remote)
	r.printf("Remote set to: %s", remote)
	return nil
}

// Commit stages everything and commits it. It returns false when there was
// nothing to commit.
func (r *Repo) Commit(msg string) (bool, error) {
	if err := r.git("add", "-A").Run(); err != nil {
		return false, fmt.Errorf("git add: %w", err)
	}
	if err := r.git("diff", "--cached", "--quiet").Run(); err == nil {
		return false, nil
	}
	if err := r.run("commit", "--quiet", "-m", msg); err != nil {
		return false, fmt.Errorf("git commit: %w", err)
	}
	return true, nil
}

func (r *Repo) hasUpstream() bool {
	return r.git("rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{u}").Run() == nil
}

// Sync commits local changes, pulls (rebase first, merge as a fallback) and
// pushes. A branch without an upstream is pushed to origin and tracked.
func (r *Repo) Sync() error {
	if !r.IsRepo() {
		return ErrNotRepo
	}

	r.printf("Staging changes...")
	committed, err := r.Commit("sync " + r.now().Format("2006-01-02 15:04:05"))
	if err != nil {
		return err
	}
	r.Logger.Debug("sync commit", "committed", committed)

	if !r.hasUpstream() {
		r.printf("Pushing...")
		if err := r.run("push", "--quiet", "-u", "origin", "HEAD"); err != nil {
			return fmt.Errorf("push failed: %w", err)
		}
		r.Logger.Info("sync complete", "upstream", "created")
		r.printf("Sync complete.")
		return nil
	}

	r.printf("Pulling...")
	if err := r.run("pull", "--rebase"); err != nil {
		r.printf("Rebase failed, trying merge...")
		_ = r.git("rebase", "--abort").Run()

		if err := r.run("pull", "--no-rebase"); err != nil {
			_ = r.git("merge", "--abort").Run()
			r.Logger.Error("sync conflict", "error", err)
			return fmt.Errorf("sync failed: could not rebase or merge, resolve conflicts manually")
		}
	}

	r.printf("Pushing...")
	if err := r.run("push"); err != nil {
		return fmt.Errorf("push failed: %w", err)
	}

	r.Logger.Info("sync complete")
	r.printf("Sync complete.")
	return nil
}
