// Package notify models the transient notification channel consumed by the
// presentation layer.
package notify

// Kind classifies a notification for rendering.
type Kind string

const (
	KindSuccess Kind = "success"
	KindFailure Kind = "failure"
	KindWarning Kind = "warning"
)

// Icon tags understood by the renderers. An empty icon means the renderer
// picks the default glyph for the kind.
const (
	IconCheck   = "check"
	IconX       = "x"
	IconWarning = "warning"
)

// Notification is a short, human-readable message with an optional icon tag.
type Notification struct {
	Kind    Kind
	Message string
	Icon    string
}

// Success builds a success notification.
func Success(message string) Notification {
	return Notification{Kind: KindSuccess, Message: message}
}

// Failure builds a failure notification.
func Failure(message string) Notification {
	return Notification{Kind: KindFailure, Message: message}
}

// Warning builds a warning notification.
func Warning(message string) Notification {
	return Notification{Kind: KindWarning, Message: message}
}

// WithIcon returns a copy of n carrying the given icon tag.
func (n Notification) WithIcon(icon string) Notification {
	n.Icon = icon
	return n
}

// Queue is an ordered buffer of notifications waiting to be presented.
// Notifications are not retained once drained.
type Queue struct {
	items []Notification
}

// Push appends notifications in order.
func (q *Queue) Push(items ...Notification) {
	q.items = append(q.items, items...)
}

// Len reports how many notifications are pending.
func (q *Queue) Len() int {
	return len(q.items)
}

// Drain returns all pending notifications in arrival order and empties the queue.
func (q *Queue) Drain() []Notification {
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
