package site

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/issuebuilder/internal/config"
	ferrors "git.home.luguber.info/inful/issuebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/issuebuilder/internal/logfields"
)

func stagingDir(output string) string { return filepath.Clean(output) + config.StagingSuffix }

func backupDir(output string) string { return filepath.Clean(output) + config.BackupSuffix }

// stagePublishOutput swaps the finished staging directory in as the output
// root. Until this stage runs the previous site stays untouched.
func stagePublishOutput(_ context.Context, bs *buildState) error {
	if err := promote(bs.output, bs.final); err != nil {
		return ferrors.FileSystemError("publish output directory").
			WithCause(err).WithContext("path", bs.final).Build()
	}
	bs.output = bs.final
	return nil
}

// promote renames stage to output. An existing output is moved to its backup
// sibling first and restored if the rename fails.
func promote(stage, output string) error {
	prev := backupDir(output)
	if err := os.RemoveAll(prev); err != nil {
		return err
	}
	hadOutput := false
	if _, err := os.Stat(output); err == nil {
		if err := os.Rename(output, prev); err != nil {
			return err
		}
		hadOutput = true
	}
	if err := os.Rename(stage, output); err != nil {
		if hadOutput {
			_ = os.Rename(prev, output)
		}
		return err
	}
	if hadOutput {
		if err := os.RemoveAll(prev); err != nil {
			slog.Warn("Failed to remove previous output", logfields.Path(prev), logfields.Error(err))
		}
	}
	slog.Debug("Promoted staging directory", logfields.Path(output))
	return nil
}

// abortStaging removes the staging directory of a build that did not publish.
func abortStaging(bs *buildState) {
	if bs.output == "" || bs.output == bs.final {
		return
	}
	if err := os.RemoveAll(bs.output); err != nil {
		slog.Warn("Failed to remove staging directory", logfields.Path(bs.output), logfields.Error(err))
	}
}
