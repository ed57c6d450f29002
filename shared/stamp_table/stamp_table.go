// Package stamptable renders version descriptors and stamp history in a
// table format.
package stamptable

import (
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/KijinKims/verstamp/model"
	"github.com/KijinKims/verstamp/service/storage"
)

// DrawDescriptorTable renders the resolved descriptor on stderr. Tables go
// to stderr so stdout stays parseable by the build tool.
func DrawDescriptorTable(d model.VersionDescriptor) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stderr)
	t.SetStyle(table.StyleLight)
	t.SetTitle(text.FgYellow.Sprintf("%s version", d.ModuleName))

	t.AppendRows([]table.Row{
		{"Label", d.Label},
		{"Version", d.Version},
		{"Major", d.Major},
		{"Minor", d.Minor},
		{"Commits", d.Commits},
		{"Revision", strconv.Itoa(d.Revision)},
		{"Hash", d.Hash1},
		{"Oldest commit", d.Hash2},
		{"Dirty state", d.Dirty},
	})
	t.Render()

	if len(d.Submodules) == 0 {
		return
	}

	st := table.NewWriter()
	st.SetOutputMirror(os.Stderr)
	st.SetStyle(table.StyleLight)
	st.AppendHeader(table.Row{"Submodule", "Tag", "Commit"})
	for _, sub := range d.Submodules {
		st.AppendRow(splitSubmoduleRow(sub))
	}
	st.Render()
}

// DrawHistoryTable renders stored stamp runs, newest first.
func DrawHistoryTable(records []storage.StampRecord) {
	if len(records) == 0 {
		os.Stderr.WriteString("No stamp history found.\n")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stderr)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Stamped At", "Module", "Label", "Version", "Revision", "Dirty", "Changed"})
	for _, r := range records {
		changed := text.FgGreen.Sprint("yes")
		if !r.HeaderChanged {
			changed = "no"
		}
		t.AppendRow(table.Row{
			r.StampID,
			r.StampedAt.Format("2006-01-02 15:04:05"),
			r.ModuleName,
			r.Label,
			r.Version,
			r.Revision,
			r.DirtyState,
			changed,
		})
	}
	t.Render()
}

// splitSubmoduleRow breaks the "<path> <tag> <commit>" display string back
// into columns; malformed strings land in the first column untouched.
func splitSubmoduleRow(sub string) table.Row {
	fields := strings.Fields(sub)
	if len(fields) != 3 {
		return table.Row{sub, "", ""}
	}
	return table.Row{fields[0], fields[1], fields[2]}
}
