package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ajaybhargavb/Razor/internal/baseline"
	"github.com/ajaybhargavb/Razor/internal/pipeline"
	"github.com/ajaybhargavb/Razor/internal/ui"
)

type suiteOutcome struct {
	results []baseline.FileResult
	err     error
}

// runSuiteWithUI runs the suite behind a bubbletea progress view. The suite
// executes on its own goroutine and streams events into the model; the
// event channel closes when the run finishes, which tells the model to quit.
func runSuiteWithUI(ctx context.Context, title string, files []string, suite baseline.Suite) ([]baseline.FileResult, error) {
	if suite.Parser == nil {
		return nil, fmt.Errorf("missing suite parser")
	}
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan suiteOutcome, 1)

	go func() {
		suiteCopy := suite
		suiteCopy.Progress = pipeline.ChannelSink{Ch: events}
		res, err := suiteCopy.Run(ctx)
		outcomeCh <- suiteOutcome{results: res, err: err}
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
