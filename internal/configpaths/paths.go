// Package configpaths resolves where configuration files are looked up:
// an explicit user-provided path first, then the user config directory,
// then the working directory.
package configpaths

import (
	"os"
	"path/filepath"
	"strings"
)

const appDir = "inputbridge"

// DefaultConfigDir returns the per-user configuration directory.
func DefaultConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appDir), nil
}

// ConfigCandidatePaths returns the JSON, YAML and TOML config file
// candidates in priority order. userPath, when non-empty, is slotted into
// the list matching its extension (or into all lists when the extension is
// unknown).
func ConfigCandidatePaths(userPath string) (jsonPaths, yamlPaths, tomlPaths []string) {
	var dirs []string
	if d, err := DefaultConfigDir(); err == nil {
		dirs = append(dirs, d)
	}
	dirs = append(dirs, ".")

	for _, d := range dirs {
		jsonPaths = append(jsonPaths, filepath.Join(d, "config.json"))
		yamlPaths = append(yamlPaths, filepath.Join(d, "config.yaml"), filepath.Join(d, "config.yml"))
		tomlPaths = append(tomlPaths, filepath.Join(d, "config.toml"))
	}

	if userPath == "" {
		return jsonPaths, yamlPaths, tomlPaths
	}
	switch strings.ToLower(filepath.Ext(userPath)) {
	case ".json":
		jsonPaths = append([]string{userPath}, jsonPaths...)
	case ".yaml", ".yml":
		yamlPaths = append([]string{userPath}, yamlPaths...)
	case ".toml":
		tomlPaths = append([]string{userPath}, tomlPaths...)
	default:
		jsonPaths = append([]string{userPath}, jsonPaths...)
		yamlPaths = append([]string{userPath}, yamlPaths...)
		tomlPaths = append([]string{userPath}, tomlPaths...)
	}
	return jsonPaths, yamlPaths, tomlPaths
}
