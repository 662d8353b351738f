package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dreamytimer/internal/core/model"
	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

// yamlSettings mirrors the document on disk. Pointer fields distinguish a
// missing key from a zero value so documents from older versions get defaults.
type yamlSettings struct {
	WorkDurationSeconds  *int     `yaml:"work_duration_seconds,omitempty"`
	BreakDurationSeconds *int     `yaml:"break_duration_seconds,omitempty"`
	SavedGoals           []string `yaml:"saved_goals"`
	Theme                string   `yaml:"theme,omitempty"`
	SoundEnabled         *bool    `yaml:"sound_enabled,omitempty"`
	TotalSessionsToday   *int     `yaml:"total_sessions_today,omitempty"`
	LastSessionDate      string   `yaml:"last_session_date,omitempty"`
	MiniWindowPosition   []int    `yaml:"mini_window_position,flow,omitempty"`

	// Keys written by the first release, read for migration only.
	LegacyWorkMinutes  *int   `yaml:"work_minutes,omitempty"`
	LegacyBreakMinutes *int   `yaml:"break_minutes,omitempty"`
	LegacyTheme        string `yaml:"current_theme,omitempty"`
}

// LoadSettings reads the configuration document at path.
// A missing file yields defaults and no error. A broken file yields defaults
// and the error so the caller can report it. The daily counter is rolled over
// when the stored date is not the date of now.
func LoadSettings(path string, now time.Time) (model.Configuration, error) {
	config := model.DefaultConfiguration()

	rawData, err := os.ReadFile(path)
	if err != nil {
		config.RollOver(now)
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return config, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		config.RollOver(now)
		return config, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&config, fileData)
	config.RollOver(now)
	return config, nil
}

// SaveSettings writes the whole configuration to path. The document is
// written to a temporary file first and renamed into place, so readers see
// either the old or the new document.
func SaveSettings(path string, config model.Configuration) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := yaml.Marshal(toYamlSettings(config))
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+settingsFileName+".*")
	if err != nil {
		return fmt.Errorf("create temp settings file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(serialized); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync settings file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close settings file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("chmod settings file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}

	return nil
}

// ErrNoConfigDir is returned by ResolvePath when no directory is given.
var ErrNoConfigDir = errors.New("no config directory")

// ResolvePath returns the settings location for appName under configDir.
func ResolvePath(configDir, appName string) (string, error) {
	configDir = strings.TrimSpace(configDir)
	if configDir == "" {
		return "", fmt.Errorf("resolve settings path: %w", ErrNoConfigDir)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func toYamlSettings(config model.Configuration) yamlSettings {
	work := config.WorkDurationSeconds
	brk := config.BreakDurationSeconds
	sound := config.SoundEnabled
	sessions := config.TotalSessionsToday

	fileData := yamlSettings{
		WorkDurationSeconds:  &work,
		BreakDurationSeconds: &brk,
		SavedGoals:           append([]string{}, config.SavedGoals...),
		Theme:                string(config.Theme),
		SoundEnabled:         &sound,
		TotalSessionsToday:   &sessions,
		LastSessionDate:      config.LastSessionDate,
	}
	if config.MiniWindowPosition != nil {
		fileData.MiniWindowPosition = []int{config.MiniWindowPosition.X, config.MiniWindowPosition.Y}
	}
	return fileData
}

func applyYamlSettings(config *model.Configuration, fileData yamlSettings) {
	switch {
	case fileData.WorkDurationSeconds != nil:
		if model.ValidDurationSeconds(*fileData.WorkDurationSeconds) {
			config.WorkDurationSeconds = *fileData.WorkDurationSeconds
		}
	case fileData.LegacyWorkMinutes != nil:
		if model.ValidDurationSeconds(*fileData.LegacyWorkMinutes * 60) {
			config.WorkDurationSeconds = *fileData.LegacyWorkMinutes * 60
		}
	}

	switch {
	case fileData.BreakDurationSeconds != nil:
		if model.ValidDurationSeconds(*fileData.BreakDurationSeconds) {
			config.BreakDurationSeconds = *fileData.BreakDurationSeconds
		}
	case fileData.LegacyBreakMinutes != nil:
		if model.ValidDurationSeconds(*fileData.LegacyBreakMinutes * 60) {
			config.BreakDurationSeconds = *fileData.LegacyBreakMinutes * 60
		}
	}

	config.SavedGoals = normalizeGoals(fileData.SavedGoals)

	theme := fileData.Theme
	if theme == "" {
		theme = fileData.LegacyTheme
	}
	config.Theme = model.ParseTheme(theme)

	if fileData.SoundEnabled != nil {
		config.SoundEnabled = *fileData.SoundEnabled
	}
	if fileData.TotalSessionsToday != nil && *fileData.TotalSessionsToday > 0 {
		config.TotalSessionsToday = *fileData.TotalSessionsToday
	}
	if _, err := time.Parse(model.DateLayout, fileData.LastSessionDate); err == nil {
		config.LastSessionDate = fileData.LastSessionDate
	}
	if len(fileData.MiniWindowPosition) == 2 {
		config.MiniWindowPosition = &model.Position{
			X: fileData.MiniWindowPosition[0],
			Y: fileData.MiniWindowPosition[1],
		}
	}
}

func normalizeGoals(goals []string) []string {
	normalized := make([]string, 0, len(goals))
	seen := make(map[string]struct{}, len(goals))
	for _, goal := range goals {
		goal = strings.TrimSpace(goal)
		if goal == "" {
			continue
		}
		if _, ok := seen[goal]; ok {
			continue
		}
		seen[goal] = struct{}{}
		normalized = append(normalized, goal)
		if len(normalized) == model.MaxSavedGoals {
			break
		}
	}
	return normalized
}
