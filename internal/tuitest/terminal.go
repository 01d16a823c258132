package tuitest

import (
	"bytes"
	"io"
)

// query is a terminal capability request and the reply a dark xterm would give.
type query struct {
	seq   []byte
	reply []byte
}

// Bubble Tea and lipgloss ask for the cursor position and the default
// colours on startup and block briefly when nobody answers.
var queries = []query{
	{[]byte("\x1b[6n"), []byte("\x1b[1;1R")},
	{[]byte("\x1b]10;?\x07"), []byte("\x1b]10;rgb:cccc/cccc/cccc\x07")},
	{[]byte("\x1b]10;?\x1b\\"), []byte("\x1b]10;rgb:cccc/cccc/cccc\x1b\\")},
	{[]byte("\x1b]11;?\x07"), []byte("\x1b]11;rgb:0000/0000/0000\x07")},
	{[]byte("\x1b]11;?\x1b\\"), []byte("\x1b]11;rgb:0000/0000/0000\x1b\\")},
}

const (
	responderKeep = 64
	responderMax  = 256
)

// responder watches program output and writes query replies back to the
// terminal in the order the queries appeared.
type responder struct {
	w       io.Writer
	pending []byte
}

func newTerminalResponder(w io.Writer) *responder {
	return &responder{w: w, pending: make([]byte, 0, responderMax)}
}

func (r *responder) Process(chunk []byte) {
	r.pending = append(r.pending, chunk...)
	for {
		q, end, ok := r.earliest()
		if !ok {
			break
		}
		r.pending = r.pending[end:]
		_, _ = r.w.Write(q.reply)
	}
	// A query can straddle two reads, so only the tail survives.
	if len(r.pending) > responderMax {
		r.pending = r.pending[len(r.pending)-responderKeep:]
	}
}

func (r *responder) earliest() (query, int, bool) {
	best, bestAt := query{}, -1
	for _, q := range queries {
		at := bytes.Index(r.pending, q.seq)
		if at >= 0 && (bestAt < 0 || at < bestAt) {
			best, bestAt = q, at
		}
	}
	if bestAt < 0 {
		return query{}, 0, false
	}
	return best, bestAt + len(best.seq), true
}
