package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/unprecompose/pkg/errors"
	"github.com/matzehuels/unprecompose/pkg/history"
	"github.com/matzehuels/unprecompose/pkg/io"
)

// undoCommand creates the undo command.
func (c *CLI) undoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "undo <project>",
		Short: "Restore a project to its state before the last flatten",
		Long: `Undo restores what the file held before the last flatten that wrote it. A file
that flatten created is removed.

Undo is one step deep: the snapshot is removed once it has been restored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runUndo(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) runUndo(ctx context.Context, path string) error {
	logger := loggerFromContext(ctx)

	if err := errors.ValidateProjectPath(path); err != nil {
		return err
	}

	hist, err := c.newHistory(ctx, false)
	if err != nil {
		return err
	}
	defer hist.Close()

	snap, err := hist.Restore(ctx, path)
	if err != nil {
		return err
	}

	if err := restoreSnapshot(path, snap); err != nil {
		return err
	}

	logger.Debug("snapshot written", "path", path, "created", snap.CreatedAt, "backend", hist.Backend())
	printSuccess("Reverted %s", StyleHighlight.Render(snap.Label))
	printFile(path)
	return nil
}

// restoreSnapshot puts back what path held before the flatten. A path that did
// not exist then is removed.
func restoreSnapshot(path string, snap *history.Snapshot) error {
	if snap.Absent {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "remove %s", path)
		}
		return nil
	}

	format, err := io.FormatFromPath(path)
	if err != nil {
		return err
	}
	// Snapshots from older runs may hold another format than the path's.
	p, err := io.Unmarshal(snap.Project, io.Format(snap.Format))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidProject, err, "snapshot of %s is not a valid project", path)
	}
	if io.Format(snap.Format) != format {
		return io.Export(p, path)
	}
	if err := os.WriteFile(path, snap.Project, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
