package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mcpalette/mcpalette/internal/backup"
	"github.com/mcpalette/mcpalette/internal/config"
	"github.com/mcpalette/mcpalette/internal/expand"
	"github.com/mcpalette/mcpalette/internal/util"
)

// EnvResult reports the outcome of rendering and writing one environment.
// Warnings may be present on success and on failure.
type EnvResult struct {
	Env      string
	Path     string
	Backup   string // backup file created before the write, if any
	Warnings []Warning
	Err      error
}

// WriteEnvironment renders one environment and writes the document to its
// configPath. The existing output file is backed up first and the write goes
// through a temp file and rename, so the client never sees a half-written
// config.
func WriteEnvironment(cfg *config.Config, settings *config.Settings, envID string, lookup expand.Lookup) EnvResult {
	res := EnvResult{Env: envID}

	env, ok := cfg.Environments[envID]
	if !ok {
		res.Err = fmt.Errorf("%w: '%s'", config.ErrUnknownEnvironment, envID)
		return res
	}
	if env.ConfigPath == "" {
		res.Err = errors.New("environment has no configPath")
		return res
	}

	servers, warnings, err := Environment(cfg, envID, lookup)
	res.Warnings = warnings
	if err != nil {
		res.Err = err
		return res
	}

	doc, err := Document(env.Mode, servers)
	if err != nil {
		res.Err = err
		return res
	}

	path, err := util.ExpandPath(env.ConfigPath)
	if err != nil {
		res.Err = fmt.Errorf("failed to expand configPath '%s': %w", env.ConfigPath, err)
		return res
	}
	res.Path = path

	data, err := Encode(doc, path)
	if err != nil {
		res.Err = err
		return res
	}

	backupDir, err := util.ExpandPath(settings.Backups.Path)
	if err != nil {
		res.Err = fmt.Errorf("failed to expand backup path '%s': %w", settings.Backups.Path, err)
		return res
	}
	backupPath, err := backup.File(backupDir, envID, path)
	if err != nil {
		res.Err = fmt.Errorf("failed to back up '%s': %w", path, err)
		return res
	}
	res.Backup = backupPath

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		res.Err = fmt.Errorf("failed to create output directory for '%s': %w", path, err)
		return res
	}
	if err := util.WriteFileAtomic(path, data, 0644); err != nil {
		res.Err = err
		return res
	}

	// Retention is housekeeping; a failed prune never fails the save.
	_ = backup.Prune(backupDir, envID, settings.Backups.Retention)

	return res
}

// WriteAll renders and writes every environment in sorted order. A failure in
// one environment never blocks the others; the caller gets one result per
// environment.
func WriteAll(cfg *config.Config, settings *config.Settings, lookup expand.Lookup) []EnvResult {
	envIDs := cfg.EnvironmentIDs()
	results := make([]EnvResult, 0, len(envIDs))
	for _, envID := range envIDs {
		results = append(results, WriteEnvironment(cfg, settings, envID, lookup))
	}
	return results
}
