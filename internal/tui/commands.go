package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/newsguard/internal/checker"
	"github.com/csheth/newsguard/internal/history"
)

// checkJob performs the classification call for ticket. It only reads the
// controller's client, so it is safe to run off the Update loop.
func checkJob(controller *checker.Controller, ticket checker.Ticket) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		resp, err := controller.Dispatch(ctx, ticket)
		return checkResultMsg{token: ticket.Token, resp: resp, err: err}, err
	}
}

func recordJob(path string, entry history.Entry) jobRunner {
	return func(context.Context) (tea.Msg, error) {
		err := history.Append(path, entry)
		return recordResultMsg{entryID: entry.ID, err: err}, err
	}
}

func expireToastCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}
