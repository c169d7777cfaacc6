// Command lazylist-demo renders a large synthetic dataset through a
// LazyListBox so the recycling, scrolling and focus behavior can be exercised
// interactively. Press q or Ctrl-C to quit.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/spinalcord/lazylist"
)

var (
	itemCount    int
	manualHeight int
	showIndex    bool
	logFile      string
)

func main() {
	cmd := &cobra.Command{
		Use:   "lazylist-demo",
		Short: "Interactive demo of the lazylist virtualized list box",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}
	cmd.Flags().IntVarP(&itemCount, "items", "n", 5000, "number of synthetic items")
	cmd.Flags().IntVar(&manualHeight, "row-height", 0, "manual row height in cells (0 = measure)")
	cmd.Flags().BoolVar(&showIndex, "show-index", true, "prefix rows with their data index")
	cmd.Flags().StringVar(&logFile, "log-file", "", "write debug logs to this file")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	logger := zerolog.Nop()
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        f,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		}).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	}

	items := make([]any, itemCount)
	for i := range items {
		items[i] = fmt.Sprintf("item %d of %d", i+1, itemCount)
	}

	app := lazylist.NewApp()

	list := lazylist.NewLazyListBox().
		SetScheduler(app).
		SetFocusOwner(app).
		SetLogger(logger)
	list.SetBorders(lazylist.BordersAll)

	factory := func() lazylist.Row {
		return lazylist.NewTextRow().SetShowIndex(showIndex)
	}
	if err := list.SetItemTemplate(factory); err != nil {
		return err
	}
	if manualHeight > 0 {
		list.SetManualItemHeight(manualHeight)
	}
	list.SetData(items)

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyCtrlC || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			app.Stop()
			return nil
		}
		return event
	})

	app.SetRoot(list)
	return app.Run()
}
