package header

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KijinKims/verstamp/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testHash = strings.Repeat("ab12", 10)

func snapshotDescriptor() model.VersionDescriptor {
	return model.VersionDescriptor{
		ModuleName: "canu",
		Label:      model.LabelSnapshot,
		Major:      "2",
		Minor:      "3",
		Version:    "v2.3",
		Commits:    "7",
		Revision:   1234,
		Hash1:      testHash,
		Hash2:      testHash,
		Dirty:      model.DirtySynced,
	}
}

func TestMacroPrefix(t *testing.T) {
	assert.Equal(t, "MY_MODULE", MacroPrefix("my-module"))
	assert.Equal(t, "MERYL_UTILITY", MacroPrefix("meryl-utility"))
	assert.Equal(t, "CANU", MacroPrefix("canu"))
}

func TestRenderSnapshot(t *testing.T) {
	content := render(snapshotDescriptor(), model.DefaultUtilityModule)

	assert.True(t, strings.HasPrefix(content, "//  Automagically generated"))
	assert.Contains(t, content, "#define CANU_VERSION_LABEL     \"snapshot\"\n")
	assert.Contains(t, content, "#define CANU_VERSION_MAJOR     \"2\"\n")
	assert.Contains(t, content, "#define CANU_VERSION_MINOR     \"3\"\n")
	assert.Contains(t, content, "#define CANU_VERSION_COMMITS   \"7\"\n")
	assert.Contains(t, content, "#define CANU_VERSION_REVISION  \"1234\"\n")
	assert.Contains(t, content, "#define CANU_VERSION_HASH      \""+testHash+"\"\n")
	assert.Contains(t, content, "#define CANU_VERSION           \"canu snapshot v2.3 +7 changes (r1234 "+testHash+")\"\n")
}

func TestVersionStringPrecedence(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.VersionDescriptor)
		want   string
	}{
		{
			name:   "commits present wins",
			mutate: func(*model.VersionDescriptor) {},
			want:   "canu snapshot v2.3 +7 changes (r1234 " + testHash + ")",
		},
		{
			name: "hash only",
			mutate: func(d *model.VersionDescriptor) {
				d.Commits = ""
			},
			want: "canu snapshot (" + testHash + ")",
		},
		{
			name: "release defaults",
			mutate: func(d *model.VersionDescriptor) {
				d.Commits = ""
				d.Hash1 = ""
				d.Label = model.LabelRelease
			},
			want: "canu 2.3",
		},
		{
			name: "label with version",
			mutate: func(d *model.VersionDescriptor) {
				d.Commits = ""
				d.Hash1 = ""
				d.Label = model.LabelMasterSnapshot
			},
			want: "canu master-snapshot (v2.3)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := snapshotDescriptor()
			tt.mutate(&d)
			assert.Equal(t, tt.want, versionString(d))
		})
	}
}

func TestRenderAliasLines(t *testing.T) {
	d := snapshotDescriptor()
	content := render(d, model.DefaultUtilityModule)
	assert.Contains(t, content, "#undef  MERYL_UTILITY_VERSION\n")
	assert.Contains(t, content, "#define MERYL_UTILITY_VERSION CANU_VERSION\n")

	d.ModuleName = "meryl-utility"
	content = render(d, model.DefaultUtilityModule)
	assert.NotContains(t, content, "#undef")
	assert.Equal(t, 1, strings.Count(content, "MERYL_UTILITY_VERSION "))
}

func TestWriteCreatesAndReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "canu_version.H")

	svc := &service{outputPath: path, utilityModule: model.DefaultUtilityModule, quiet: true, out: os.Stdout}

	changed, err := svc.Write(snapshotDescriptor())
	require.NoError(t, err)
	assert.True(t, changed)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "CANU_VERSION_LABEL")

	_, err = os.Stat(path + ".new")
	assert.True(t, os.IsNotExist(err), "temp file must not survive")
}

func TestWriteIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "canu_version.H")

	svc := &service{outputPath: path, utilityModule: model.DefaultUtilityModule, quiet: true, out: os.Stdout}

	changed, err := svc.Write(snapshotDescriptor())
	require.NoError(t, err)
	require.True(t, changed)

	before, err := os.Stat(path)
	require.NoError(t, err)

	changed, err = svc.Write(snapshotDescriptor())
	require.NoError(t, err)
	assert.False(t, changed, "unchanged content must not replace the file")

	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime(), "file must be left untouched")

	_, err = os.Stat(path + ".new")
	assert.True(t, os.IsNotExist(err))
}

func TestWriteReplacesWhenDescriptorChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "canu_version.H")

	svc := &service{outputPath: path, utilityModule: model.DefaultUtilityModule, quiet: true, out: os.Stdout}

	_, err := svc.Write(snapshotDescriptor())
	require.NoError(t, err)

	d := snapshotDescriptor()
	d.Commits = "8"
	d.Revision = 1235
	changed, err := svc.Write(d)
	require.NoError(t, err)
	assert.True(t, changed)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "+8 changes (r1235")
}

func TestPrintInfo(t *testing.T) {
	var buf bytes.Buffer
	d := snapshotDescriptor()
	d.Submodules = []string{"src/meryl-utility v1.4.1 " + testHash}

	svc := &service{outputPath: "unused", utilityModule: model.DefaultUtilityModule, out: &buf}
	svc.printInfo(d)

	out := buf.String()
	assert.Contains(t, out, "$(info Building canu snapshot v2.3 +7 changes (r1234 "+testHash+") (sync'd with remote))\n")
	assert.Contains(t, out, "$(info -  submodule src/meryl-utility v1.4.1 "+testHash+")\n")
}
