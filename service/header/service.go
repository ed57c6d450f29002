// Package header renders the version descriptor into a C preprocessor
// header and replaces the target file only when its content changed, so
// downstream build rules do not fire spuriously.
package header

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/KijinKims/verstamp/model"
)

type service struct {
	outputPath    string
	utilityModule string
	quiet         bool
	out           io.Writer
}

// Service is the interface for header generation.
type Service interface {
	// Write renders the descriptor, prints the build-tool info lines and
	// replaces the header file when the rendered bytes differ from the
	// existing content. It reports whether the file was replaced.
	Write(d model.VersionDescriptor) (changed bool, err error)
}

// NewService creates a header writer targeting outputPath. utilityModule
// names the shared module whose version macro other modules alias.
func NewService(outputPath, utilityModule string, quiet bool) Service {
	return &service{
		outputPath:    outputPath,
		utilityModule: utilityModule,
		quiet:         quiet,
		out:           os.Stdout,
	}
}

func (s *service) Write(d model.VersionDescriptor) (bool, error) {
	if !s.quiet {
		s.printInfo(d)
	}

	content := render(d, s.utilityModule)

	tmpPath := s.outputPath + ".new"
	if err := os.WriteFile(tmpPath, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}

	existing, err := os.ReadFile(s.outputPath)
	if err == nil && bytes.Equal(existing, []byte(content)) {
		_ = os.Remove(tmpPath)
		return false, nil
	}

	if err := os.Rename(tmpPath, s.outputPath); err != nil {
		return false, fmt.Errorf("failed to replace %s: %w", s.outputPath, err)
	}
	return true, nil
}

// printInfo emits the $(info ...)-wrapped lines a make-driven build logs.
func (s *service) printInfo(d model.VersionDescriptor) {
	fmt.Fprintf(s.out, "$(info Building %s)\n", d.Summary())
	for _, sub := range d.Submodules {
		fmt.Fprintf(s.out, "$(info -  submodule %s)\n", sub)
	}
}

// MacroPrefix normalizes a module name into its macro namespace: upper
// case with hyphens turned into underscores.
func MacroPrefix(modName string) string {
	return strings.ToUpper(strings.ReplaceAll(modName, "-", "_"))
}

func render(d model.VersionDescriptor, utilityModule string) string {
	prefix := MacroPrefix(d.ModuleName)

	var b strings.Builder
	b.WriteString("//  Automagically generated by verstamp!  Do NOT commit!\n")
	fmt.Fprintf(&b, "#define %s_VERSION_LABEL     \"%s\"\n", prefix, d.Label)
	fmt.Fprintf(&b, "#define %s_VERSION_MAJOR     \"%s\"\n", prefix, d.Major)
	fmt.Fprintf(&b, "#define %s_VERSION_MINOR     \"%s\"\n", prefix, d.Minor)
	fmt.Fprintf(&b, "#define %s_VERSION_COMMITS   \"%s\"\n", prefix, d.Commits)
	fmt.Fprintf(&b, "#define %s_VERSION_REVISION  \"%s\"\n", prefix, strconv.Itoa(d.Revision))
	fmt.Fprintf(&b, "#define %s_VERSION_HASH      \"%s\"\n", prefix, d.Hash1)
	fmt.Fprintf(&b, "#define %s_VERSION           \"%s\"\n", prefix, versionString(d))

	if prefix != MacroPrefix(utilityModule) {
		utilPrefix := MacroPrefix(utilityModule)
		fmt.Fprintf(&b, "#undef  %s_VERSION\n", utilPrefix)
		fmt.Fprintf(&b, "#define %s_VERSION %s_VERSION\n", utilPrefix, prefix)
	}

	return b.String()
}

// versionString picks the composite VERSION content by field availability:
// full tag distance first, then bare hash, then the release default, then
// the label with whatever version survived.
func versionString(d model.VersionDescriptor) string {
	switch {
	case d.Commits != "":
		return fmt.Sprintf("%s %s %s +%s changes (r%d %s)", d.ModuleName, d.Label, d.Version, d.Commits, d.Revision, d.Hash1)
	case d.Hash1 != "":
		return fmt.Sprintf("%s snapshot (%s)", d.ModuleName, d.Hash1)
	case strings.Contains(d.Label, "release"):
		return fmt.Sprintf("%s %s.%s", d.ModuleName, d.Major, d.Minor)
	default:
		return fmt.Sprintf("%s %s (%s)", d.ModuleName, d.Label, d.Version)
	}
}
