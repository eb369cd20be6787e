package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"

	"github.com/shieldai/inventory/output"
)

type AuditCmd struct {
	File  string `help:"Batch report filename." arg:"" type:"existingfile"`
	Watch bool   `help:"Re-run the audit whenever the file changes."`
}

func (cmd *AuditCmd) Run(ctx *kong.Context, globals *Globals) error {
	if cmd.Watch {
		return cmd.watch(ctx, globals)
	}

	ok, err := cmd.audit(ctx, globals)
	if err != nil {
		return err
	}
	if !ok {
		os.Exit(1)
	}
	return nil
}

// audit parses the file once and renders the outcome. It returns false when
// the result carries errors.
func (cmd *AuditCmd) audit(ctx *kong.Context, globals *Globals) (bool, error) {
	result, reportTelemetry, err := parseReport(ctx, globals, cmd.File)
	if err != nil {
		return false, err
	}
	defer reportTelemetry()

	renderer := NewIssueRenderer(output.NewStyles(ctx.Stderr))
	if formatted := renderer.RenderAll(result.Issues); formatted != "" {
		_, _ = fmt.Fprintln(ctx.Stderr, formatted)
		_, _ = fmt.Fprintln(ctx.Stderr)
	}

	stats := result.Stats
	printInfof(ctx.Stdout, "%s: %d groups, %d products, %d batches",
		pathStyle.Render(cmd.File), stats.Groups, stats.Products, stats.Batches)

	if result.HasErrors() {
		printError(ctx.Stdout, fmt.Sprintf("%d error(s), %d warning(s)",
			len(result.Issues.Errors()), len(result.Issues.Warnings())))
		return false, nil
	}
	if warnings := result.Issues.Warnings(); len(warnings) > 0 {
		printSuccess(ctx.Stdout, fmt.Sprintf("Audit passed with %d warning(s)", len(warnings)))
	} else {
		printSuccess(ctx.Stdout, "Audit passed")
	}
	return true, nil
}

// watch re-audits on every change to the report file. Editors and 1C both
// save through rename-and-replace, which drops the watch on the old inode,
// so the file is re-added before each debounced re-audit.
func (cmd *AuditCmd) watch(ctx *kong.Context, globals *Globals) error {
	if _, err := cmd.audit(ctx, globals); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(cmd.File); err != nil {
		return fmt.Errorf("failed to watch %s: %w", cmd.File, err)
	}
	printInfof(ctx.Stdout, "watching %s", pathStyle.Render(cmd.File))

	// Debounce timer - editors often write files in multiple steps
	const debounceDelay = 100 * time.Millisecond
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDelay, func() {
				// Atomic saves briefly remove the file; re-arm the watch.
				_ = watcher.Add(cmd.File)
				if _, err := cmd.audit(ctx, globals); err != nil {
					printError(ctx.Stderr, err.Error())
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			printError(ctx.Stderr, fmt.Sprintf("file watcher error: %v", err))
		}
	}
}
