package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// RunBrowser runs the browser full-screen and blocks until it exits. When
// watchFn is non-nil it runs in a goroutine with a send callback so reloaded
// reports reach the program; its context is cancelled when the browser quits
// and RunBrowser waits for it to return.
func RunBrowser(ctx context.Context, out io.Writer, model BrowserModel, watchFn func(ctx context.Context, send func(tea.Msg))) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(model, tea.WithOutput(out), tea.WithAltScreen(), tea.WithContext(ctx))

	watchDone := make(chan struct{})
	if watchFn != nil {
		go func() {
			defer close(watchDone)
			watchFn(ctx, p.Send)
		}()
	} else {
		close(watchDone)
	}

	finalModel, err := p.Run()
	cancel()
	<-watchDone
	if err != nil {
		return err
	}
	if m, ok := finalModel.(BrowserModel); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
