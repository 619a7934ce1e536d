package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

const appDirName = "anagramserve"

// PathResolver finds the config dir and the word list regardless of where the
// binary is started from
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

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executablePath: execPath,
		executableDir:  filepath.Dir(execPath),
		homeDir:        homeDir,
		configDir:      getConfigDir(homeDir),
	}

	log.Debugf("PathResolver initialized: exec=%s, configDir=%s", execPath, pr.configDir)
	return pr, nil
}

// getConfigDir returns the appropriate config directory for the platform
func getConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, ".config", appDirName)
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, appDirName)
		}
		return filepath.Join(homeDir, ".config", appDirName)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appDirName)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", appDirName)
	default:
		return filepath.Join(homeDir, "."+appDirName)
	}
}

// dictCandidates lists the places a word list is looked for, in order:
// 1. the path itself (absolute or relative to the working dir)
// 2. relative to the executable
// 3. inside the config dir
func (pr *PathResolver) dictCandidates(userSpecifiedPath string) []string {
	if filepath.IsAbs(userSpecifiedPath) {
		return []string{userSpecifiedPath}
	}

	candidates := []string{userSpecifiedPath}
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, userSpecifiedPath))
	}
	return append(candidates,
		filepath.Join(pr.executableDir, userSpecifiedPath),
		filepath.Join(pr.configDir, userSpecifiedPath),
	)
}

// GetDictPath resolves the word list location. When nothing matches the
// given path is returned so that loading fails with a useful message.
func (pr *PathResolver) GetDictPath(userSpecifiedPath string) string {
	for _, path := range pr.dictCandidates(userSpecifiedPath) {
		if stat, err := os.Stat(path); err == nil && !stat.IsDir() {
			log.Debugf("Found word list: %s", path)
			return path
		}
		log.Debugf("Word list candidate not found: %s", path)
	}
	return userSpecifiedPath
}

// GetConfigPath returns the full path for a config file
// It ensures the config directory exists and handles read-only filesystem issues
func (pr *PathResolver) GetConfigPath(filename string) (string, error) {
	configPath := filepath.Join(pr.configDir, filename)
	if pr.ensureConfigDir(pr.configDir) {
		return configPath, nil
	}

	fallbackDirs := []string{
		filepath.Join(pr.homeDir, "."+appDirName),
		filepath.Join(os.TempDir(), appDirName),
		pr.executableDir,
	}

	for _, dir := range fallbackDirs {
		if pr.ensureConfigDir(dir) {
			path := filepath.Join(dir, filename)
			log.Warnf("Using fallback config location: %s", path)
			return path, nil
		}
	}

	tempPath := filepath.Join(os.TempDir(), filename)
	log.Warnf("Using temporary config file: %s", tempPath)
	return tempPath, nil
}

// ensureConfigDir creates the directory if it doesn't exist and tests writability
func (pr *PathResolver) ensureConfigDir(dir string) bool {
	result := CheckDirStatus(dir)
	if result.Error != nil || !result.Writable {
		log.Debugf("Config directory %s is not usable", dir)
		return false
	}
	return true
}
