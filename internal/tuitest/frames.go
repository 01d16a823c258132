package tuitest

import (
	"regexp"
	"strings"
	"time"
)

// Recording is everything the program wrote to the terminal, split into
// frames at each screen clear.
type Recording struct {
	Raw      []byte
	Frames   []Frame
	Duration time.Duration
}

// Frame is the output between two screen clears.
type Frame struct {
	Index int
	ANSI  string
	Plain string
}

var (
	// Erase-in-display, which Bubble Tea emits before repainting.
	screenClear = regexp.MustCompile(`\x1b\[[0-9;]*J`)
	// OSC strings, CSI sequences and the shift-in/shift-out controls.
	escapeSeq = regexp.MustCompile(`\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)|\x1b\[[0-9;?]*[A-Za-z]|[\x0e\x0f]`)
)

func parseFrames(raw []byte) []Frame {
	stream := strings.ReplaceAll(string(raw), "\r", "")
	var frames []Frame
	for _, chunk := range screenClear.Split(stream, -1) {
		chunk = strings.Trim(chunk, "\x00")
		plain := plainText(chunk)
		if plain == "" {
			continue
		}
		frames = append(frames, Frame{Index: len(frames), ANSI: chunk, Plain: plain})
	}
	if frames == nil && stream != "" {
		frames = []Frame{{ANSI: stream, Plain: plainText(stream)}}
	}
	return frames
}

func stripANSI(s string) string {
	return escapeSeq.ReplaceAllString(s, "")
}

// plainText strips escapes, trailing spaces on each line and trailing blank
// lines.
func plainText(s string) string {
	lines := strings.Split(stripANSI(s), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// FinalFrame returns the last frame, or false when nothing was drawn.
func (r *Recording) FinalFrame() (Frame, bool) {
	if r == nil || len(r.Frames) == 0 {
		return Frame{}, false
	}
	return r.Frames[len(r.Frames)-1], true
}

// Plain returns the whole stream with escape sequences removed.
func (r *Recording) Plain() string {
	if r == nil {
		return ""
	}
	return plainText(strings.ReplaceAll(string(r.Raw), "\r", ""))
}

// Contains reports whether s was rendered anywhere. Repaints can split text
// across frames, so the whole stream is the fallback.
func (r *Recording) Contains(s string) bool {
	if _, ok := r.FrameContaining(s); ok {
		return true
	}
	return strings.Contains(r.Plain(), s)
}

// FrameContaining returns the first frame whose plain text contains s.
func (r *Recording) FrameContaining(s string) (Frame, bool) {
	if r == nil {
		return Frame{}, false
	}
	for _, f := range r.Frames {
		if strings.Contains(f.Plain, s) {
			return f, true
		}
	}
	return Frame{}, false
}
