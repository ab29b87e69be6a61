// Where: internal/domain/category/profile.go
// What: File layout for the analytics and marketing discovery flows.
// Why: Discovery, import generation, execution and conversion must agree on file names.
package category

import "fmt"

// Profile names.
const (
	ProfileAnalytics = "analytics"
	ProfileMarketing = "marketing"
)

// Profile describes where one team flow keeps its discovery cache and outputs.
type Profile struct {
	Name           string
	DiscoveryDir   string
	AllJobsFile    string
	ProductionFile string
	CommandsFile   string
	CategoryPrefix bool
}

var (
	Analytics = Profile{
		Name:           ProfileAnalytics,
		DiscoveryDir:   "job_discovery",
		AllJobsFile:    "all_jobs.json",
		ProductionFile: "production_jobs.json",
		CommandsFile:   "job_import_commands.txt",
	}
	Marketing = Profile{
		Name:           ProfileMarketing,
		DiscoveryDir:   "marketing_job_discovery",
		AllJobsFile:    "all_marketing_jobs.json",
		ProductionFile: "production_marketing_jobs.json",
		CommandsFile:   "marketing_import_commands.txt",
		CategoryPrefix: true,
	}
)

// Profiles lists profiles in detection order: marketing output wins when both exist.
func Profiles() []Profile {
	return []Profile{Marketing, Analytics}
}

// ProfileByName resolves a profile flag value.
func ProfileByName(name string) (Profile, error) {
	for _, p := range Profiles() {
		if p.Name == name {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("unknown profile %q (want %s or %s)", name, ProfileAnalytics, ProfileMarketing)
}

// CategoryFile is the discovery file holding one marketing category.
func CategoryFile(category string) string {
	return category + "_jobs.json"
}
