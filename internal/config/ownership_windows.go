//go:build windows

package config

import "os"

// fileOwnerUID has no POSIX-owner equivalent on Windows; the ownership
// check is a no-op there, matching the configuration schema's
// macOS/Linux-originated security model, which has nothing to verify on
// a single-user Windows session.
func fileOwnerUID(path string) (uint32, error) {
	if _, err := os.Stat(path); err != nil {
		return 0, err
	}
	return 0, nil
}

func currentUID() uint32 { return 0 }
