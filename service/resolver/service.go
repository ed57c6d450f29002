// Package resolver derives a version descriptor from the repository state,
// or from the working directory name when no repository is available.
package resolver

import (
	"context"
	"fmt"
	"regexp"

	"github.com/KijinKims/verstamp/model"
	"github.com/KijinKims/verstamp/service/gitinspect"
)

// Policy controls how failures of the cosmetic git queries are handled.
// The commit enumeration is always required: without it there is no
// revision count and the stamp is meaningless.
type Policy struct {
	// Strict promotes describe/status/branch/submodule query failures
	// from silently-degraded fields to hard errors.
	Strict bool
}

type service struct {
	inspector gitinspect.Service
	policy    Policy
}

// Service is the interface for version resolution.
type Service interface {
	Resolve(ctx context.Context, modName, workDir, major, minor string) (model.VersionDescriptor, error)
}

// NewService creates a resolver backed by the given repository inspector.
func NewService(inspector gitinspect.Service, policy Policy) Service {
	return &service{inspector: inspector, policy: policy}
}

func (s *service) Resolve(ctx context.Context, modName, workDir, major, minor string) (model.VersionDescriptor, error) {
	d := model.NewVersionDescriptor(modName, major, minor)

	if s.inspector.HasRepository() {
		return s.resolveFromRepository(ctx, d)
	}

	// No repository: fall back to recognizing an exported tarball by its
	// directory name.
	if m := snapshotDirRe(modName).FindStringSubmatch(workDir); m != nil {
		d.Label = model.LabelSnapshot
		d.Hash1 = m[1]
		d.Hash2 = m[1]
		return d, nil
	}
	if masterDirRe(modName).MatchString(workDir) {
		d.Label = model.LabelMasterSnapshot
		return d, nil
	}

	return d, nil
}

func (s *service) resolveFromRepository(ctx context.Context, d model.VersionDescriptor) (model.VersionDescriptor, error) {
	d.Label = model.LabelSnapshot

	count, oldest, err := s.inspector.CommitLog(ctx)
	if err != nil {
		return d, fmt.Errorf("failed to enumerate commits: %w", err)
	}
	d.Revision = count
	d.Hash2 = oldest

	if err := s.applyDescribe(ctx, &d); err != nil {
		return d, err
	}
	if err := s.applyStatus(ctx, &d); err != nil {
		return d, err
	}
	if err := s.applyBranch(ctx, &d); err != nil {
		return d, err
	}
	if err := s.applySubmodules(ctx, &d); err != nil {
		return d, err
	}

	return d, nil
}

func (s *service) applyDescribe(ctx context.Context, d *model.VersionDescriptor) error {
	line, err := s.inspector.Describe(ctx)
	if err != nil {
		return s.tolerate("describe", err)
	}
	info := gitinspect.ParseDescribe(line)
	d.Major = info.Major
	d.Minor = info.Minor
	d.Commits = info.Commits
	d.Hash1 = info.Hash
	d.Version = "v" + d.Major + "." + d.Minor
	return nil
}

func (s *service) applyStatus(ctx context.Context, d *model.VersionDescriptor) error {
	out, err := s.inspector.Status(ctx)
	if err != nil {
		return s.tolerate("status", err)
	}
	d.Dirty = gitinspect.ParseStatus(out).DirtyState()
	return nil
}

func (s *service) applyBranch(ctx context.Context, d *model.VersionDescriptor) error {
	lines, err := s.inspector.BranchesContaining(ctx)
	if err != nil {
		return s.tolerate("branch", err)
	}
	branch := gitinspect.PickBranch(lines)
	if branch == "" || branch == "master" {
		return nil
	}
	if major, minor, ok := gitinspect.ParseReleaseBranch(branch); ok {
		d.Major = major
		d.Minor = minor
	}
	d.Label = model.LabelBranch
	d.Version = branch
	return nil
}

func (s *service) applySubmodules(ctx context.Context, d *model.VersionDescriptor) error {
	lines, err := s.inspector.SubmoduleStatus(ctx)
	if err != nil {
		return s.tolerate("submodule", err)
	}
	d.Submodules = gitinspect.ParseSubmodules(lines)
	return nil
}

// tolerate implements the failure policy for the cosmetic queries: under
// the default policy the error is swallowed and the descriptor keeps
// whatever the earlier steps set.
func (s *service) tolerate(query string, err error) error {
	if s.policy.Strict {
		return fmt.Errorf("%s query failed: %w", query, err)
	}
	return nil
}

func snapshotDirRe(modName string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(modName) + `-([0-9a-f]{40})/src`)
}

func masterDirRe(modName string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(modName) + `-master/src`)
}
