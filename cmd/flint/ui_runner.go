package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"flint/internal/driver"
	"flint/internal/ui"
)

type checkOutcome struct {
	results []driver.Result
	err     error
}

// runFilesWithUI runs the parallel analysis behind a live progress view.
func runFilesWithUI(ctx context.Context, title string, files []string, opts *driver.Options) ([]driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		results, err := driver.AnalyzeFiles(ctx, files, opts, events)
		outcomeCh <- checkOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	if _, err := program.Run(); err != nil {
		// progress view failure should not sink the lint run
		for range events {
		}
	}
	outcome := <-outcomeCh
	return outcome.results, outcome.err
}
