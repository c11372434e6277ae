package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const maxBackups = 20

// Save atomically writes root to path: marshal to JSON, write to a
// CreateTemp sibling file in the same directory (mirrors
// internal/track/cache.go's temp-file-then-os.Rename pattern), chmod
// 0600, then os.Rename onto the final path. The containing directory is
// created with mode 0700. Before renaming, the previous file (if any) is
// copied into a dated backup under backups/ and the oldest backups
// beyond maxBackups are pruned.
func Save(path string, root *Root) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return errors.Wrapf(err, "config: creating %s", dir)
	}

	if _, err := os.Stat(path); err == nil {
		if err := rotateBackups(path, dir); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return errors.Wrap(err, "config: marshaling")
	}

	tmp, err := os.CreateTemp(dir, ".karabiner-*.json.tmp")
	if err != nil {
		return errors.Wrap(err, "config: creating temp file")
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "config: writing temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "config: closing temp file")
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		return errors.Wrap(err, "config: chmod temp file")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errors.Wrap(err, "config: renaming into place")
	}
	return nil
}

// SelectProfile flips "selected" to true on the named profile and false
// on every other profile, editing the raw JSON at path in place via
// sjson rather than decoding and re-marshaling the whole document: a
// full round trip through Root would silently drop any comments a user
// hand-edited into a JSONC config, which a profile switch has no reason
// to touch. Returns an error if no profile with that name exists in the
// file.
func SelectProfile(path, name string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "config: reading %s", path)
	}

	profiles := gjson.GetBytes(data, "profiles")
	found := false
	for i, p := range profiles.Array() {
		selected := p.Get("name").String() == name
		found = found || selected

		data, err = sjson.SetBytes(data, fmt.Sprintf("profiles.%d.selected", i), selected)
		if err != nil {
			return errors.Wrapf(err, "config: setting profiles.%d.selected", i)
		}
	}
	if !found {
		return errors.Errorf("config: no profile named %q", name)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".karabiner-*.json.tmp")
	if err != nil {
		return errors.Wrap(err, "config: creating temp file")
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "config: writing temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "config: closing temp file")
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		return errors.Wrap(err, "config: chmod temp file")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errors.Wrap(err, "config: renaming into place")
	}
	return nil
}

// rotateBackups copies the existing file at path into
// backups/karabiner_YYYYMMDD.json (skipped if today's backup already
// exists), then deletes the oldest backups beyond maxBackups, sorted
// lexicographically by filename — the dated name already encodes
// chronological order, unlike internal/track/cache.go's prune, which
// sorts by modtime because its filenames don't.
func rotateBackups(path, dir string) error {
	backupDir := filepath.Join(dir, "backups")
	if err := os.MkdirAll(backupDir, 0700); err != nil {
		return errors.Wrapf(err, "config: creating %s", backupDir)
	}

	name := fmt.Sprintf("karabiner_%s.json", time.Now().Format("20060102"))
	backupPath := filepath.Join(backupDir, name)
	if _, err := os.Stat(backupPath); err == nil {
		return pruneBackups(backupDir)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "config: reading %s for backup", path)
	}
	if err := os.WriteFile(backupPath, data, 0600); err != nil {
		return errors.Wrapf(err, "config: writing backup %s", backupPath)
	}
	return pruneBackups(backupDir)
}

func pruneBackups(backupDir string) error {
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		return errors.Wrapf(err, "config: reading %s", backupDir)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	if len(names) <= maxBackups {
		return nil
	}
	for _, name := range names[:len(names)-maxBackups] {
		if err := os.Remove(filepath.Join(backupDir, name)); err != nil {
			return errors.Wrapf(err, "config: pruning %s", name)
		}
	}
	return nil
}
