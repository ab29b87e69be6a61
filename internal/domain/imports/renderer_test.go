// Where: internal/domain/imports/renderer_test.go
// What: Tests for import command rendering.
// Why: Rendered addresses must match the Terraform modules.
package imports

import (
	"reflect"
	"testing"
)

func TestRenderSections(t *testing.T) {
	sections := []Section{
		{Title: "Project", Commands: []Command{{Address: "dbtcloud_project.marketing", ID: 1}}},
		{Title: "Environment", Commands: []Command{
			{Address: "dbtcloud_environment.prod", ID: 10},
			{Address: "dbtcloud_environment.dev", ID: 11},
		}},
		{Title: "Group"},
	}
	got, err := RenderSections("", sections)
	if err != nil {
		t.Fatalf("RenderSections() error = %v", err)
	}
	want := "# ===== PROJECT IMPORTS =====\n" +
		"terraform import dbtcloud_project.marketing 1\n" +
		"\n" +
		"# ===== ENVIRONMENT IMPORTS =====\n" +
		"terraform import dbtcloud_environment.prod 10\n" +
		"terraform import dbtcloud_environment.dev 11\n" +
		"\n" +
		"# ===== GROUP IMPORTS =====\n"
	if got != want {
		t.Fatalf("RenderSections() =\n%q\nwant\n%q", got, want)
	}
	if n := CountCommands(sections); n != 3 {
		t.Fatalf("CountCommands() = %d, want 3", n)
	}
}

func TestRenderSectionsCustomBinary(t *testing.T) {
	got, err := RenderSections("tofu", []Section{{Title: "User", Commands: []Command{{Address: "dbtcloud_user.a_b", ID: 5}}}})
	if err != nil {
		t.Fatalf("RenderSections() error = %v", err)
	}
	if got != "# ===== USER IMPORTS =====\ntofu import dbtcloud_user.a_b 5\n" {
		t.Fatalf("RenderSections() = %q", got)
	}
}

func TestCommandRendering(t *testing.T) {
	cmd := Command{Address: "module.team_jobs.dbtcloud_job.daily", ID: 77}
	if cmd.String() != "terraform import module.team_jobs.dbtcloud_job.daily 77" {
		t.Fatalf("String() = %q", cmd.String())
	}
	lines := RenderLines([]Command{cmd, {Address: "x.y", ID: 1}})
	if lines != "terraform import module.team_jobs.dbtcloud_job.daily 77\nterraform import x.y 1" {
		t.Fatalf("RenderLines() = %q", lines)
	}
}

func TestParseLines(t *testing.T) {
	text := "# ===== PROJECT IMPORTS =====\nterraform import a 1\n\n  terraform import b 2  \n"
	got := ParseLines(text)
	want := []string{"terraform import a 1", "terraform import b 2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseLines() = %v, want %v", got, want)
	}
}
