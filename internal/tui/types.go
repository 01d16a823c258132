package tui

import (
	"errors"
	"time"

	"github.com/csheth/newsguard/internal/checker"
	"github.com/csheth/newsguard/internal/classify"
	"github.com/csheth/newsguard/internal/notify"
)

const (
	heroTitle        = "NewsGuard"
	heroTagline      = "Check a headline before you share it."
	inputPlaceholder = "Paste a news headline…"
	inputCharLimit   = 500
	inputHeight      = 3

	defaultToastDuration = 4 * time.Second
	maxVisibleToasts     = 4

	minContentWidth     = 40
	maxContentWidth     = 96
	horizontalPadding   = 4
	historyFailureToast = "Could not save this check to history."
)

type toast struct {
	id   int
	note notify.Notification
}

type checkResultMsg struct {
	token uint64
	resp  classify.Response
	err   error
}

type recordResultMsg struct {
	entryID string
	err     error
}

type toastExpiredMsg struct {
	id int
}

func isRequestError(err error) bool {
	var reqErr *checker.RequestError
	return errors.As(err, &reqErr)
}
