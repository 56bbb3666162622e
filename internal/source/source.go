// Package source reads raw sentences, one per line, from files or stdin.
package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// MaxLineBytes bounds a single input line.
const MaxLineBytes = 1 << 20

// ErrSourceUnavailable reports a source that could not be opened or read.
var ErrSourceUnavailable = errors.New("sentence source unavailable")

// Reader reads sentences line by line. The zero value skips blank lines.
type Reader struct {
	// StopAtBlank ends input at the first blank line instead of skipping it.
	StopAtBlank bool
}

// ReadFile reads sentences from path with the default Reader.
func ReadFile(path string) ([]string, error) {
	return Reader{}.ReadFile(path)
}

// Read returns the trimmed, non-blank lines of r in input order.
func Read(r io.Reader) ([]string, error) {
	return Reader{}.Read(r)
}

// ReadFile reads sentences from path, or from os.Stdin when path is "-".
func (rd Reader) ReadFile(path string) ([]string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrSourceUnavailable)
	}
	if path == Stdin {
		return rd.Read(os.Stdin)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer file.Close()
	return rd.Read(file)
}

// Read returns the trimmed lines of r in input order.
func (rd Reader) Read(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineBytes)

	var lines []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			if rd.StopAtBlank {
				break
			}
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	return lines, nil
}

// Label returns a display name for path.
func Label(path string) string {
	if strings.TrimSpace(path) == Stdin {
		return "stdin"
	}
	return path
}
