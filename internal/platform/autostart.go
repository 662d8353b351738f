package platform

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrInvalidLoginItem reports a login item without a name or executable.
var ErrInvalidLoginItem = errors.New("invalid login item")

// LoginItem describes the command started when the user logs in.
type LoginItem struct {
	Name     string
	ExecPath string
	Args     []string
}

// Service defines OS-specific helpers needed by the timer.
type Service interface {
	GetConfigDir() (string, error)
	EnableAutostart(item LoginItem) error
	DisableAutostart(name string) error
	AutostartEnabled(name string) (bool, error)
}

type platformService struct{}

// NewService returns a platform-specific implementation.
func NewService() Service {
	return &platformService{}
}

// GetConfigDir returns the OS-standard configuration directory.
func (service *platformService) GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}

func (item LoginItem) validate() error {
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidLoginItem)
	}
	if strings.TrimSpace(item.ExecPath) == "" {
		return fmt.Errorf("%w: exec path is empty", ErrInvalidLoginItem)
	}
	return nil
}

// slug turns an application name into a file-system friendly identifier.
func slug(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "dreamytimer"
	}
	name = strings.ToLower(name)
	return strings.ReplaceAll(name, " ", "-")
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
