//go:build !windows

package config

import (
	"os"
	"syscall"
)

// fileOwnerUID returns the UID that owns the file at path.
func fileOwnerUID(path string) (uint32, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, nil
	}
	return stat.Uid, nil
}

func currentUID() uint32 {
	return uint32(os.Getuid())
}
