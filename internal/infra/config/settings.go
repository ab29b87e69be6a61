// Where: internal/infra/config/settings.go
// What: Optional dbtops.yaml settings file load/save.
// Why: Keep per-repository defaults out of CI variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dbt-marketing-analytics/dbtops/internal/infra/fileops"
	"github.com/dbt-marketing-analytics/dbtops/internal/meta"
	"gopkg.in/yaml.v3"
)

// Settings is the dbtops.yaml file.
type Settings struct {
	TeamName     string `yaml:"team_name,omitempty"`
	HostURL      string `yaml:"host_url,omitempty"`
	Cache        string `yaml:"cache,omitempty"`
	PlanVarFile  string `yaml:"plan_var_file,omitempty"`
	TerraformBin string `yaml:"terraform_bin,omitempty"`
	JobModule    string `yaml:"job_module,omitempty"`
}

// LoadSettings reads settings from path. An empty path searches upward from
// startDir for meta.SettingsFile and returns zero Settings when none exists.
func LoadSettings(path, startDir string) (Settings, string, error) {
	if strings.TrimSpace(path) == "" {
		found, ok := FindSettings(startDir)
		if !ok {
			return Settings{}, "", nil
		}
		path = found
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, path, fmt.Errorf("read settings: %w", err)
	}
	var cfg Settings
	if err := yaml.Unmarshal(payload, &cfg); err != nil {
		return Settings{}, path, fmt.Errorf("decode settings %s: %w", path, err)
	}
	return cfg, path, nil
}

// SaveSettings writes cfg to path.
func SaveSettings(path string, cfg Settings) error {
	if strings.TrimSpace(path) == "" {
		return errSettingsPathRequired
	}
	payload, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := fileops.WriteFile(path, payload); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// FindSettings searches upward from start for the settings file.
func FindSettings(start string) (string, bool) {
	if strings.TrimSpace(start) == "" {
		start = "."
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, meta.SettingsFile)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", false
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false
}
