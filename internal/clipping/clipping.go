// Package clipping pulls a headline out of a saved PDF news clipping.
package clipping

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// MaxRunes caps the extracted headline.
const MaxRunes = 280

// ErrNoText is returned when a document has no extractable text.
var ErrNoText = errors.New("clipping contains no extractable text")

var extraneousWhitespace = regexp.MustCompile(`\s+`)

// Headline returns the first non-empty line of text in the PDF at path.
func Headline(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer file.Close()

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", i, err)
		}
		lines := make([]string, 0, len(rows))
		for _, row := range rows {
			var b strings.Builder
			for _, word := range row.Content {
				b.WriteString(word.S)
			}
			lines = append(lines, b.String())
		}
		if headline, ok := firstHeadline(lines); ok {
			return headline, nil
		}
	}

	// Some producers emit text GetTextByRow cannot group; fall back to the
	// flat text stream.
	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}
	return fromReader(content)
}

func fromReader(r io.Reader) (string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	if headline, ok := firstHeadline(lines); ok {
		return headline, nil
	}
	return "", ErrNoText
}

// firstHeadline normalizes whitespace and returns the first non-empty line,
// truncated to MaxRunes.
func firstHeadline(lines []string) (string, bool) {
	for _, line := range lines {
		line = strings.TrimSpace(extraneousWhitespace.ReplaceAllString(line, " "))
		if line == "" {
			continue
		}
		runes := []rune(line)
		if len(runes) > MaxRunes {
			line = strings.TrimSpace(string(runes[:MaxRunes]))
		}
		return line, true
	}
	return "", false
}
