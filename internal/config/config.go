package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"codeplan/internal/domain"
)

// EnvPrefix namespaces every environment variable the tools read
const EnvPrefix = "CODEPLAN"

// ErrNoProject is returned when no backlog folder can be found
var ErrNoProject = errors.New("no " + domain.FolderName + " folder found; run codeplan-cli init first")

// Settings holds tool settings. The project's own config.yaml lives in the
// backlog folder and is read by the repository, not here.
type Settings struct {
	Dir      string `mapstructure:"dir"`       // Project root; discovered from the working directory when empty
	LogLevel string `mapstructure:"log_level"` // debug, info, warn or error
	WebAddr  string `mapstructure:"web_addr"`
	Editor   string `mapstructure:"editor"` // Overrides $EDITOR and $VISUAL
}

// DefaultSettings returns the settings used when nothing is configured
func DefaultSettings() *Settings {
	return &Settings{
		LogLevel: "info",
		WebAddr:  ":3000",
	}
}

// Load reads settings from the user settings file, then CODEPLAN_* environment
// variables. A missing settings file is not an error.
func Load() (*Settings, error) {
	return LoadFile(SettingsPath())
}

// LoadFile is Load with an explicit settings file
func LoadFile(path string) (*Settings, error) {
	defaults := DefaultSettings()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetDefault("dir", defaults.Dir)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("web_addr", defaults.WebAddr)
	v.SetDefault("editor", defaults.Editor)
	for _, key := range []string{"dir", "log_level", "web_addr", "editor"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
			}
		}
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	return settings, nil
}

// SettingsPath returns $XDG_CONFIG_HOME/codeplan/settings.yaml
func SettingsPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "codeplan", "settings.yaml")
}

// FindProjectDir walks up from start to the first directory holding a backlog
// folder. It returns "" when none exists.
func FindProjectDir(start string) string {
	dir, err := filepath.Abs(start)
	if err != nil {
		return ""
	}
	for {
		if info, err := os.Stat(filepath.Join(dir, domain.FolderName)); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// BacklogDir returns the backlog folder inside a project root
func BacklogDir(root string) string {
	return filepath.Join(root, domain.FolderName)
}

// ProjectRoot resolves the project root: the configured dir when set,
// otherwise the nearest ancestor of the working directory with a backlog folder.
func (s *Settings) ProjectRoot() (string, error) {
	if s.Dir != "" {
		root, err := filepath.Abs(s.Dir)
		if err != nil {
			return "", err
		}
		if filepath.Base(root) == domain.FolderName {
			root = filepath.Dir(root)
		}
		if info, err := os.Stat(BacklogDir(root)); err != nil || !info.IsDir() {
			return "", fmt.Errorf("%s: %w", root, ErrNoProject)
		}
		return root, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	root := FindProjectDir(cwd)
	if root == "" {
		return "", ErrNoProject
	}
	return root, nil
}

// BacklogDir resolves the backlog folder of the configured project
func (s *Settings) BacklogDir() (string, error) {
	root, err := s.ProjectRoot()
	if err != nil {
		return "", err
	}
	return BacklogDir(root), nil
}
