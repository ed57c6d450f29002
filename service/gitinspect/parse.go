package gitinspect

import (
	"regexp"
	"strings"

	"github.com/KijinKims/verstamp/model"
)

var (
	describeRe      = regexp.MustCompile(`^v(\d+)\.(\d+)-(\d+)-g([0-9a-f]{40})$`)
	releaseBranchRe = regexp.MustCompile(`^v(\d+)\.(\d+)$`)
	submoduleRe     = regexp.MustCompile(`^\s*(\S+)\s+(\S+)\s+\((\S+)\)\s*$`)
)

// DescribeInfo is the parsed form of a tag-describe line.
type DescribeInfo struct {
	Major   string
	Minor   string
	Commits string
	Hash    string
	Tagged  bool // true when the line matched the v<maj>.<min>-<n>-g<hash> pattern
}

// ParseDescribe interprets one line of describe output. A line matching
// v<major>.<minor>-<commits>-g<40 hex chars> yields the tagged form; any
// other line is treated as an opaque hash with zeroed version numbers.
func ParseDescribe(line string) DescribeInfo {
	line = strings.TrimSpace(line)
	if m := describeRe.FindStringSubmatch(line); m != nil {
		return DescribeInfo{Major: m[1], Minor: m[2], Commits: m[3], Hash: m[4], Tagged: true}
	}
	return DescribeInfo{Major: "0", Minor: "0", Commits: "0", Hash: line}
}

// StatusFlags holds the two independent conditions detected in the
// working-tree status output.
type StatusFlags struct {
	Ahead   bool
	Changes bool
}

// ParseStatus scans status output for the ahead-of-remote and
// local-changes markers.
func ParseStatus(out string) StatusFlags {
	return StatusFlags{
		Ahead: strings.Contains(out, "is ahead of"),
		Changes: strings.Contains(out, "Changes not staged for commit") ||
			strings.Contains(out, "Changes to be committed"),
	}
}

// DirtyState collapses the status flags into the four dirty-state values.
func (f StatusFlags) DirtyState() string {
	switch {
	case f.Ahead && f.Changes:
		return model.DirtyAheadChanges
	case f.Ahead:
		return model.DirtyAhead
	case f.Changes:
		return model.DirtyChanges
	default:
		return model.DirtySynced
	}
}

// PickBranch selects the current branch from branch-containment output:
// detached entries are skipped, the current-branch marker and whitespace
// are stripped, and the first survivor wins. Empty result means no branch.
func PickBranch(lines []string) string {
	for _, l := range lines {
		if strings.Contains(l, "detached") {
			continue
		}
		l = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(l), "*"))
		if l != "" {
			return l
		}
	}
	return ""
}

// ParseReleaseBranch extracts major/minor from a v<major>.<minor> branch
// name; ok is false for any other name.
func ParseReleaseBranch(name string) (major, minor string, ok bool) {
	m := releaseBranchRe.FindStringSubmatch(name)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// ParseSubmodules reorders each "<commit> <path> (<tag>)" status line into
// the "<path> <tag> <commit>" display form. Non-matching lines are dropped.
func ParseSubmodules(lines []string) []string {
	var subs []string
	for _, l := range lines {
		if m := submoduleRe.FindStringSubmatch(l); m != nil {
			subs = append(subs, m[2]+" "+m[3]+" "+m[1])
		}
	}
	return subs
}
