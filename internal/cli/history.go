package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/micro-ha/smarthome-dashboard/internal/appstate"
	"github.com/micro-ha/smarthome-dashboard/internal/history"
)

func (a *App) history(ctx context.Context, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "clear":
			return a.clearHistory(args[1:])
		case "export":
			return a.exportHistory(args[1:])
		}
	}
	return a.show(ctx, append([]string{string(appstate.ViewHistory)}, args...))
}

func (a *App) clearHistory(args []string) error {
	fs := a.flags("history clear")
	yes := fs.Bool("yes", false, "confirm clearing the history")
	if _, err := parse(fs, args); err != nil {
		return err
	}
	if !*yes {
		return fmt.Errorf("%w: pass -yes to clear the history", ErrUsage)
	}
	a.state.ClearHistory()
	fmt.Fprintln(a.out, "History cleared")
	return nil
}

func (a *App) exportHistory(args []string) (err error) {
	fs := a.flags("history export")
	formatName := fs.String("format", string(history.FormatJSON), "json or yaml")
	path := fs.String("out", "", "output file, - for stdout")
	if _, err := parse(fs, args); err != nil {
		return err
	}
	format, err := history.ParseFormat(*formatName)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	entries := a.state.History()
	if *path == "-" {
		return history.Export(a.out, entries, format)
	}
	if *path == "" {
		*path = history.ExportFileName(a.state.Now(), format)
	}

	f, err := os.Create(*path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close export file: %w", cerr)
		}
	}()
	if err := history.Export(f, entries, format); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Exported %d entries to %s\n", len(entries), *path)
	return nil
}
