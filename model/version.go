package model

// VersionInfo contains build-time metadata about verstamp itself.
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}
