package kaggle

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const credentialsHint = "set KAGGLE_USERNAME and KAGGLE_KEY (in the environment or a .env file) or place an API token at ~/.kaggle/kaggle.json"

// Credentials authenticate against the Kaggle API
type Credentials struct {
	Username string `json:"username"`
	Key      string `json:"key"`
}

// Empty reports whether no credentials are set
func (c Credentials) Empty() bool {
	return c.Username == "" || c.Key == ""
}

// DependencyError is returned when something the download needs is unavailable.
// Hint tells the user how to provide it.
type DependencyError struct {
	Name string
	Hint string
	Err  error
}

func (e *DependencyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("missing %s: %v", e.Name, e.Err)
	}
	return "missing " + e.Name
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}

// LoadCredentials reads KAGGLE_USERNAME/KAGGLE_KEY, falling back to ~/.kaggle/kaggle.json.
// No credentials at all is not an error, since public datasets may not need them.
func LoadCredentials() (Credentials, error) {
	creds := Credentials{
		Username: os.Getenv("KAGGLE_USERNAME"),
		Key:      os.Getenv("KAGGLE_KEY"),
	}
	if !creds.Empty() {
		return creds, nil
	}

	configDir := os.Getenv("KAGGLE_CONFIG_DIR")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return Credentials{}, nil
		}
		configDir = filepath.Join(homeDir, ".kaggle")
	}

	return loadCredentialsFile(filepath.Join(configDir, "kaggle.json"))
}

func loadCredentialsFile(path string) (Credentials, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Credentials{}, nil
	}
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, &DependencyError{
			Name: "Kaggle credentials",
			Hint: credentialsHint,
			Err:  fmt.Errorf("failed to parse %s: %w", path, err),
		}
	}

	return creds, nil
}
