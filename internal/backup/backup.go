// Package backup keeps timestamped copies of rendered output files so a save
// can always be rolled back to the previous state of a client's config.
package backup

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"
)

// ErrNoBackups is returned by Restore when no backup exists for the label.
var ErrNoBackups = errors.New("no backups found")

// Backup filenames are <label>-YYYYMMDD-HHMMSS<ext>.
const timestampFormat = "20060102-150405"

var timestampRe = regexp.MustCompile(`^\d{8}-\d{6}(\.[^.]*)?$`)

// File copies path into dir under a timestamped name prefixed with label.
// A missing source file is not an error; there is simply nothing to back up
// and the returned path is empty.
func File(dir, label, path string) (string, error) {
	srcInfo, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to stat source file '%s': %w", path, err)
	}
	if srcInfo.IsDir() {
		return "", fmt.Errorf("source path '%s' is a directory, not a file", path)
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create backup directory '%s': %w", dir, err)
	}

	timestamp := time.Now().Format(timestampFormat)
	backupPath := filepath.Join(dir, fmt.Sprintf("%s-%s%s", label, timestamp, filepath.Ext(path)))
	if err := copyFile(path, backupPath); err != nil {
		return "", fmt.Errorf("failed to copy '%s' to backup '%s': %w", path, backupPath, err)
	}
	return backupPath, nil
}

// Latest returns the filename of the newest backup for label, or "" when
// none exist.
func Latest(dir, label string) (string, error) {
	backups, err := list(dir, label)
	if err != nil || len(backups) == 0 {
		return "", err
	}
	return backups[0], nil
}

// Restore copies the newest backup for label over dest and returns the
// backup filename it used. ErrNoBackups when there is nothing to restore.
func Restore(dir, label, dest string) (string, error) {
	latest, err := Latest(dir, label)
	if err != nil {
		return "", err
	}
	if latest == "" {
		return "", fmt.Errorf("%w for '%s' in '%s'", ErrNoBackups, label, dir)
	}
	if err := copyFile(filepath.Join(dir, latest), dest); err != nil {
		return "", fmt.Errorf("failed to restore '%s' from '%s': %w", dest, latest, err)
	}
	return latest, nil
}

// Prune removes all but the newest keep backups for label. keep <= 0 leaves
// everything in place.
func Prune(dir, label string, keep int) error {
	if keep <= 0 {
		return nil
	}
	backups, err := list(dir, label)
	if err != nil {
		return err
	}
	for _, name := range backups[min(keep, len(backups)):] {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("failed to remove old backup '%s': %w", name, err)
		}
	}
	return nil
}

// list returns label's backup filenames sorted newest first. The timestamp in
// the name sorts lexicographically, so a plain string sort is enough.
func list(dir, label string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read backup directory '%s': %w", dir, err)
	}

	prefix := label + "-"
	var backups []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		// The timestamp check keeps labels that prefix other labels from
		// claiming each other's backups.
		if len(name) > len(prefix) && name[:len(prefix)] == prefix && timestampRe.MatchString(name[len(prefix):]) {
			backups = append(backups, name)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(backups)))
	return backups, nil
}

func copyFile(src, dst string) (err error) {
	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := source.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := os.MkdirAll(filepath.Dir(dst), 0750); err != nil {
		return fmt.Errorf("failed to create destination directory for '%s': %w", dst, err)
	}

	destination, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := destination.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	_, err = io.Copy(destination, source)
	return err
}
