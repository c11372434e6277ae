// Package app resolves the on-disk locations the manipulator daemon
// reads and writes: its configuration file, state, cache and log
// directories. It follows the XDG base directory spec via
// github.com/adrg/xdg, with a portable mode that roots everything under
// a single directory for test/sandboxed runs.
package app

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
)

const appName = "karabiner-manipulator"

// portableRootEnv, when set, roots every managed directory under its
// value instead of the user's XDG base directories — mirrors the
// teacher's MUSICFOX_ROOT override, renamed to this module's domain.
const portableRootEnv = "MANIPULATOR_ROOT"

type pathManager struct {
	isPortable bool
	rootDir    string

	configDir string
	dataDir   string
	stateDir  string
	cacheDir  string
	logDir    string
}

var (
	paths         pathManager
	initPathsOnce sync.Once
)

func initPaths() {
	if root := os.Getenv(portableRootEnv); root != "" {
		paths.isPortable = true
		paths.rootDir = root
		paths.configDir = filepath.Join(root, "config")
		paths.dataDir = filepath.Join(root, "data")
		paths.stateDir = filepath.Join(root, "state")
		paths.cacheDir = filepath.Join(root, "cache")
		paths.logDir = filepath.Join(root, "log")
		return
	}

	configFile, err := xdg.ConfigFile(filepath.Join(appName, "karabiner.json"))
	if err != nil {
		configFile = filepath.Join(appName, "karabiner.json")
	}
	paths.configDir = filepath.Dir(configFile)
	paths.dataDir = filepath.Join(xdg.DataHome, appName)
	paths.stateDir = filepath.Join(xdg.StateHome, appName)
	paths.cacheDir = filepath.Join(xdg.CacheHome, appName)
	paths.logDir = paths.stateDir
}

func ensureDir(dir string) string {
	_ = os.MkdirAll(dir, 0700)
	return dir
}

// ConfigDir returns the directory containing the configuration file,
// creating it if necessary.
func ConfigDir() string {
	initPathsOnce.Do(initPaths)
	return ensureDir(paths.configDir)
}

// ConfigFilePath returns the path to karabiner.json inside ConfigDir.
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "karabiner.json")
}

// DataDir returns the directory for persistent application data,
// creating it if necessary.
func DataDir() string {
	initPathsOnce.Do(initPaths)
	return ensureDir(paths.dataDir)
}

// StateDir returns the directory for runtime state (e.g. a control
// socket or pid file), creating it if necessary.
func StateDir() string {
	initPathsOnce.Do(initPaths)
	return ensureDir(paths.stateDir)
}

// CacheDir returns the directory for disposable cached data, creating
// it if necessary.
func CacheDir() string {
	initPathsOnce.Do(initPaths)
	return ensureDir(paths.cacheDir)
}

// LogDir returns the directory the daemon writes its log file into,
// creating it if necessary.
func LogDir() string {
	initPathsOnce.Do(initPaths)
	return ensureDir(paths.logDir)
}

// IsPortable reports whether MANIPULATOR_ROOT is overriding XDG paths.
func IsPortable() bool {
	initPathsOnce.Do(initPaths)
	return paths.isPortable
}
