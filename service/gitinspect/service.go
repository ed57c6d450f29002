// Package gitinspect runs the read-only git queries the resolver needs and
// exposes them behind a narrow interface so parsing stays testable without
// a real repository.
package gitinspect

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Service is the interface for repository inspection.
type Service interface {
	// HasRepository reports whether a git metadata directory exists one
	// level up from the working directory.
	HasRepository() bool
	// CommitLog enumerates all commits reachable from HEAD and returns
	// the count and the hash of the oldest one in the stream.
	CommitLog(ctx context.Context) (count int, oldest string, err error)
	// Describe returns the single-line output of a tag describe with
	// long format and full-length hashes.
	Describe(ctx context.Context) (string, error)
	// Status returns the raw working-tree status output.
	Status(ctx context.Context) (string, error)
	// BranchesContaining lists the branches containing HEAD, one raw
	// line per branch.
	BranchesContaining(ctx context.Context) ([]string, error)
	// SubmoduleStatus lists the raw submodule status lines, if any.
	SubmoduleStatus(ctx context.Context) ([]string, error)
}

type service struct {
	workDir string
}

// NewService creates a repository inspector rooted at workDir.
func NewService(workDir string) Service {
	return &service{workDir: workDir}
}

func (s *service) git(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = s.workDir
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return string(out), nil
}

func (s *service) HasRepository() bool {
	return isDir(filepath.Join(s.workDir, "..", ".git"))
}

func (s *service) CommitLog(ctx context.Context) (int, string, error) {
	out, err := s.git(ctx, "rev-list", "HEAD")
	if err != nil {
		return 0, "", err
	}
	lines := splitLines(out)
	if len(lines) == 0 {
		return 0, "", fmt.Errorf("git rev-list HEAD: no commits")
	}
	return len(lines), lines[len(lines)-1], nil
}

func (s *service) Describe(ctx context.Context) (string, error) {
	out, err := s.git(ctx, "describe", "--tags", "--long", "--abbrev=40")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (s *service) Status(ctx context.Context) (string, error) {
	return s.git(ctx, "status")
}

func (s *service) BranchesContaining(ctx context.Context) ([]string, error) {
	out, err := s.git(ctx, "branch", "--contains")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

func (s *service) SubmoduleStatus(ctx context.Context) ([]string, error) {
	out, err := s.git(ctx, "submodule", "status")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func splitLines(out string) []string {
	var lines []string
	for _, l := range strings.Split(out, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
