// Package model defines the data structures used throughout the application.
package model

import "strconv"

// Version labels, classifying how the version was derived.
const (
	LabelRelease        = "release"
	LabelSnapshot       = "snapshot"
	LabelBranch         = "branch"
	LabelMasterSnapshot = "master-snapshot"
)

// Dirty states, summarizing the working tree relative to its remote.
const (
	DirtySynced       = "sync'd with remote"
	DirtyAhead        = "ahead of remote"
	DirtyChanges      = "w/changes"
	DirtyAheadChanges = "ahead of remote w/changes"
)

// Hardcoded fallback version, used when neither a repository nor a
// recognizable directory name is available.
const (
	DefaultMajor = "1"
	DefaultMinor = "0"
)

// DefaultUtilityModule is the shared module whose version macro every other
// module's header re-points at itself.
const DefaultUtilityModule = "meryl-utility"

// VersionDescriptor describes where the build sits in the repository's
// history. It is constructed once per invocation by the resolver and
// consumed by the header writer; empty string fields mean "not derivable".
type VersionDescriptor struct {
	ModuleName string

	Label   string
	Major   string
	Minor   string
	Version string // "v<major>.<minor>", or the branch name when on a branch

	Commits  string // commits since the last tag, per git describe
	Revision int    // total commits reachable from HEAD
	Hash1    string // hash from the describe query
	Hash2    string // hash of the oldest commit in the log listing

	Dirty      string
	Submodules []string
}

// NewVersionDescriptor returns a descriptor carrying the release defaults
// for modName; resolver steps overwrite fields as evidence accumulates.
func NewVersionDescriptor(modName, major, minor string) VersionDescriptor {
	if major == "" {
		major = DefaultMajor
	}
	if minor == "" {
		minor = DefaultMinor
	}
	return VersionDescriptor{
		ModuleName: modName,
		Label:      LabelRelease,
		Major:      major,
		Minor:      minor,
		Version:    "v" + major + "." + minor,
	}
}

// Summary renders the one-line form used for the build-tool info channel:
// label, version, commit distance, revision, hash and dirty state, with
// the same field-availability fallbacks as the composite VERSION macro.
func (d VersionDescriptor) Summary() string {
	switch {
	case d.Commits != "":
		return d.ModuleName + " " + d.Label + " " + d.Version +
			" +" + d.Commits + " changes (r" + strconv.Itoa(d.Revision) + " " + d.Hash1 + ") (" + d.Dirty + ")"
	case d.Hash1 != "":
		return d.ModuleName + " snapshot (" + d.Hash1 + ")"
	default:
		return d.ModuleName + " " + d.Label + " " + d.Version
	}
}
