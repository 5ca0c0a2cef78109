package common

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Build metadata, overridable at link time via -ldflags. A .version file
// beside the binary fills in whatever the linker left at defaults.
var (
	Version   = "0.1.0-dev"
	Build     = "unknown"
	GitCommit = "unknown"
)

// GetVersion returns the semantic version string
func GetVersion() string {
	return Version
}

// GetBuild returns the build timestamp
func GetBuild() string {
	return Build
}

// GetGitCommit returns the short git commit hash
func GetGitCommit() string {
	return GitCommit
}

// LoadVersionFromFile reads a .version file next to the binary, if one
// exists. File values never override values set through ldflags.
func LoadVersionFromFile() {
	exe, err := os.Executable()
	if err != nil {
		return
	}

	f, err := os.Open(filepath.Join(filepath.Dir(exe), ".version"))
	if err != nil {
		return
	}
	defer f.Close()

	applyVersionInfo(parseVersionFile(f))
}

// parseVersionFile reads "key: value" lines, skipping blanks and
// #-comments. Unknown keys are ignored so the file format can grow.
func parseVersionFile(r io.Reader) map[string]string {
	info := make(map[string]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		info[strings.TrimSpace(key)] = strings.TrimSpace(val)
	}
	return info
}

func applyVersionInfo(info map[string]string) {
	if v, ok := info["version"]; ok && Version == "0.1.0-dev" {
		Version = v
	}
	if b, ok := info["build"]; ok && Build == "unknown" {
		Build = b
	}
	if c, ok := info["commit"]; ok && GitCommit == "unknown" {
		GitCommit = c
	}
}
