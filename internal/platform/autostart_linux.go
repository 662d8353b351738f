//go:build linux

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (service *platformService) EnableAutostart(item LoginItem) error {
	if err := item.validate(); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}

	entryPath, err := service.desktopEntryPath(item.Name)
	if err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(entryPath), 0o755); err != nil {
		return fmt.Errorf("enable autostart: create autostart dir: %w", err)
	}
	if err := os.WriteFile(entryPath, []byte(buildDesktopEntry(item)), 0o644); err != nil {
		return fmt.Errorf("enable autostart: write desktop entry: %w", err)
	}

	return nil
}

func (service *platformService) DisableAutostart(name string) error {
	entryPath, err := service.desktopEntryPath(name)
	if err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	if err := os.Remove(entryPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("disable autostart: remove desktop entry: %w", err)
	}
	return nil
}

func (service *platformService) AutostartEnabled(name string) (bool, error) {
	entryPath, err := service.desktopEntryPath(name)
	if err != nil {
		return false, fmt.Errorf("autostart status: %w", err)
	}
	enabled, err := fileExists(entryPath)
	if err != nil {
		return false, fmt.Errorf("autostart status: %w", err)
	}
	return enabled, nil
}

func (service *platformService) desktopEntryPath(name string) (string, error) {
	configDir, err := service.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "autostart", slug(name)+".desktop"), nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}

func buildDesktopEntry(item LoginItem) string {
	parts := make([]string, 0, len(item.Args)+1)
	parts = append(parts, desktopQuote(item.ExecPath))
	for _, arg := range item.Args {
		parts = append(parts, desktopQuote(arg))
	}

	return fmt.Sprintf(
		`[Desktop Entry]
Type=Application
Name=%s
Comment=Gentle work and break timer
Exec=%s
Categories=Utility;
X-GNOME-Autostart-enabled=true
Terminal=false
`,
		item.Name,
		strings.Join(parts, " "),
	)
}

// desktopQuote quotes an Exec argument when it contains spaces.
func desktopQuote(value string) string {
	if !strings.ContainsAny(value, " \t") || strings.HasPrefix(value, `"`) {
		return value
	}
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", "$", `\$`).Replace(value)
	return `"` + escaped + `"`
}
