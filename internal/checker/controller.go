package checker

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"github.com/csheth/newsguard/internal/classify"
	"github.com/csheth/newsguard/internal/logging"
	"github.com/csheth/newsguard/internal/notify"
)

// Classifier is the subset of classify.Client the controller needs.
type Classifier interface {
	Classify(ctx context.Context, req classify.Request) (classify.Response, error)
}

// Options tune a Controller.
type Options struct {
	Policy Policy
	Logger *log.Logger
}

// Controller holds the submission state for one presentation context. It is
// not safe for concurrent use: every method must be called from the owning
// event loop. Only Dispatch may run elsewhere.
type Controller struct {
	client  Classifier
	policy  Policy
	logger  *log.Logger
	state   State
	queue   notify.Queue
	retired bool
}

// New builds a Controller in the idle phase.
func New(client Classifier, opts Options) *Controller {
	policy := opts.Policy
	if policy == "" {
		policy = LastResolvedWins
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Controller{
		client: client,
		policy: policy,
		logger: logger.WithPrefix("checker"),
	}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	return c.state
}

// Policy reports the stale-response policy in effect.
func (c *Controller) Policy() Policy {
	return c.policy
}

// Notifications drains pending notifications in emission order.
func (c *Controller) Notifications() []notify.Notification {
	return c.queue.Drain()
}

// Begin validates text and, when valid, moves to the loading phase and returns
// the ticket for the call the caller must now issue.
func (c *Controller) Begin(text string) (Ticket, error) {
	out := Step(c.state, Submit{Text: text}, c.policy)
	c.apply(out)
	if out.Err != nil {
		c.logger.Debug("submission rejected", "err", out.Err)
		return Ticket{}, out.Err
	}
	c.logger.Info("submission issued", "token", out.Ticket.Token, "chars", len(text))
	return *out.Ticket, nil
}

// Dispatch performs the network call for a ticket. It touches no controller
// state and may run off the event loop.
func (c *Controller) Dispatch(ctx context.Context, ticket Ticket) (classify.Response, error) {
	return c.client.Classify(ctx, ticket.Request)
}

// Finish folds the outcome of the call identified by token into the state.
// callErr takes precedence over resp. It returns ErrDiscarded when the result
// may not be applied, a *RequestError on failure, an *AnalysisDegradedError
// when only the narrative is missing, or nil.
func (c *Controller) Finish(token uint64, resp classify.Response, callErr error) error {
	if c.retired {
		c.logger.Debug("result dropped after retire", "token", token)
		return ErrDiscarded
	}
	var action Action = Resolve{Token: token, Response: resp}
	if callErr != nil {
		action = Fail{Token: token, Err: callErr}
	}
	out := Step(c.state, action, c.policy)
	if !out.Applied() {
		c.logger.Debug("stale result dropped", "token", token, "latest", c.state.Token, "policy", c.policy)
		return out.Err
	}
	c.apply(out)

	var reqErr *RequestError
	switch {
	case errors.As(out.Err, &reqErr):
		c.logger.Warn("classification failed", "token", token, "err", reqErr.Err)
	case out.Err != nil:
		c.logger.Warn("classification degraded", "token", token, "err", out.Err)
	default:
		c.logger.Info("classification applied", "token", token, "label", out.State.Label)
	}
	return out.Err
}

// Submit runs a full submission synchronously. The loading phase is always
// closed before Submit returns, including when the call panics.
func (c *Controller) Submit(ctx context.Context, text string) (err error) {
	ticket, err := c.Begin(text)
	if err != nil {
		return err
	}
	var (
		resp    classify.Response
		callErr = errInterrupted
	)
	defer func() {
		err = c.Finish(ticket.Token, resp, callErr)
	}()
	resp, callErr = c.Dispatch(ctx, ticket)
	return nil
}

// Retire marks the presentation context as gone. Results arriving afterwards
// are discarded without touching state or emitting notifications.
func (c *Controller) Retire() {
	c.retired = true
}

// Active reports whether results are still applied.
func (c *Controller) Active() bool {
	return !c.retired
}

func (c *Controller) apply(out Outcome) {
	c.state = out.State
	c.queue.Push(out.Notifications...)
}
