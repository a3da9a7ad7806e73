package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// PathResolver provides robust path resolution for the histserve binary
type PathResolver struct {
	executablePath string
	executableDir  string
	homeDir        string
	configDir      string
}

// NewPathResolver creates a new path resolver that determines the executable location
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}

	// Resolve any symlinks to get the actual binary location
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	execDir := filepath.Dir(execPath)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = "/tmp" // fallback
	}

	configDir := getConfigDir(homeDir)

	pr := &PathResolver{
		executablePath: execPath,
		executableDir:  execDir,
		homeDir:        homeDir,
		configDir:      configDir,
	}

	log.Debugf("PathResolver initialized: exec=%s, execDir=%s, configDir=%s",
		execPath, execDir, configDir)

	return pr, nil
}

// getConfigDir returns the appropriate config directory for the platform
func getConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, ".config", "histserve")
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, "histserve")
		}
		return filepath.Join(homeDir, ".config", "histserve")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "histserve")
		}
		return filepath.Join(homeDir, "AppData", "Roaming", "histserve")
	default:
		return filepath.Join(homeDir, ".histserve")
	}
}

// GetHistoryFile resolves the history log to replay at startup.
// It tries multiple locations in order of preference:
// 1. User-specified path (absolute or relative to cwd)
// 2. $HISTFILE
// 3. Conventional shell history files in the home directory
func (pr *PathResolver) GetHistoryFile(userSpecifiedPath string) (string, error) {
	var candidatePaths []string

	if userSpecifiedPath != "" {
		if filepath.IsAbs(userSpecifiedPath) {
			candidatePaths = append(candidatePaths, userSpecifiedPath)
		} else if cwd, err := os.Getwd(); err == nil {
			candidatePaths = append(candidatePaths, filepath.Join(cwd, userSpecifiedPath))
		}
	}

	if histFile := os.Getenv("HISTFILE"); histFile != "" {
		candidatePaths = append(candidatePaths, histFile)
	}

	conventional := []string{
		filepath.Join(pr.homeDir, ".bash_history"),
		filepath.Join(pr.homeDir, ".zsh_history"),
		filepath.Join(pr.homeDir, ".histfile"),
	}
	candidatePaths = append(candidatePaths, conventional...)

	for _, path := range candidatePaths {
		if stat, err := os.Stat(path); err == nil && !stat.IsDir() {
			log.Debugf("Found history file: %s", path)
			return path, nil
		}
		log.Debugf("History file candidate not valid: %s", path)
	}

	return "", os.ErrNotExist
}

// GetConfigPath returns the full path for a config file.
// It ensures the config directory exists and handles read-only filesystem issues.
func (pr *PathResolver) GetConfigPath(filename string) (string, error) {
	configPath := filepath.Join(pr.configDir, filename)
	if pr.ensureConfigDir(pr.configDir) {
		return configPath, nil
	}

	// Fallback locations if config dir is not writable
	fallbackDirs := []string{
		filepath.Join(pr.homeDir, ".histserve"),
		filepath.Join(os.TempDir(), "histserve"),
		pr.executableDir,
	}

	for _, dir := range fallbackDirs {
		if pr.ensureConfigDir(dir) {
			path := filepath.Join(dir, filename)
			log.Warnf("Using fallback config location: %s", path)
			return path, nil
		}
	}

	// Last resort: return temp file path
	tempPath := filepath.Join(os.TempDir(), filename)
	log.Warnf("Using temporary config file: %s", tempPath)
	return tempPath, nil
}

// ensureConfigDir creates the directory if it doesn't exist and tests writability
func (pr *PathResolver) ensureConfigDir(dir string) bool {
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Debugf("Cannot create config directory %s: %v", dir, err)
		return false
	}

	testFile := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(testFile, []byte("test"), 0644); err != nil {
		log.Debugf("Config directory %s is not writable: %v", dir, err)
		return false
	}
	os.Remove(testFile)
	return true
}
