package config

import (
	"os"
	"path/filepath"
	"strings"
)

// EnvHome overrides the base directory for relative logs/data paths.
const EnvHome = "LINKPAGE_HOME"

// HomeDir is the base that relative runtime paths hang off: $LINKPAGE_HOME
// when set, else the directory holding the binary, else the working dir.
func HomeDir() string {
	if home := strings.TrimSpace(os.Getenv(EnvHome)); home != "" {
		if abs, err := filepath.Abs(home); err == nil {
			return abs
		}
		return filepath.Clean(home)
	}
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Dir(exe)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// runtimeDir resolves a configured directory. Absolute values are kept,
// relative ones and the empty default (subdir) land under HomeDir.
func runtimeDir(raw, subdir string) string {
	target := strings.TrimSpace(raw)
	if target == "" {
		target = subdir
	}
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Join(HomeDir(), target)
}
