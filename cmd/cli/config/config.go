package config

import (
	"os"
	"path/filepath"
)

const defaultAPIURL = "http://localhost:8080"

const tokenFileName = ".sitecheck_token"

// APIURL returns the base URL for the SiteCheck API.
// It can be overridden with the SITECHECK_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("SITECHECK_API_URL"); v != "" {
		return v
	}
	return defaultAPIURL
}

// SaveToken stores the JWT token in the user's home directory.
func SaveToken(token string) error {
	return os.WriteFile(tokenPath(), []byte(token), 0600)
}

// ReadToken returns the stored JWT token. The SITECHECK_TOKEN environment
// variable takes precedence over the token file.
func ReadToken() (string, error) {
	if v := os.Getenv("SITECHECK_TOKEN"); v != "" {
		return v, nil
	}
	data, err := os.ReadFile(tokenPath())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// RemoveToken deletes the stored token. Missing file is not an error.
func RemoveToken() error {
	err := os.Remove(tokenPath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func tokenPath() string {
	dir, _ := os.UserHomeDir()
	return filepath.Join(dir, tokenFileName)
}
