package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"squish/internal/driver"
	"squish/internal/pipeline"
	"squish/internal/ui"
)

type batchOutcome struct {
	results []driver.FileResult
	err     error
}

// runBatchWithUI runs the batch behind a progress view. The driver pushes
// pipeline events into a channel the model drains; closing the channel
// after Run returns tells the model to quit.
func runBatchWithUI(ctx context.Context, title string, files []string, cfg driver.Config) ([]driver.FileResult, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		cfgCopy := cfg
		cfgCopy.Progress = pipeline.ChannelSink{Ch: events}
		res, err := driver.Run(ctx, files, cfgCopy)
		outcomeCh <- batchOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
