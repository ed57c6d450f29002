package model

// Flags represents the command line flags.
type Flags struct {
	ModuleName    string
	OutputPath    string
	UtilityModule string
	Major         string
	Minor         string
	Strict        bool
	Show          bool
	Store         bool
	DBPath        string
	ConfigPath    string
	Quiet         bool
	Version       bool
}
