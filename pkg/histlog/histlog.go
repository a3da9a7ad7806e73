// Package histlog loads and appends the on-disk history log that feeds the
// completion engine. The engine itself never touches the filesystem; this
// package replays persisted lines into it at startup and persists new ones
// as they are executed.
package histlog

import (
	"bufio"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Recorder receives replayed command lines. Both the token trie and the
// line index satisfy it.
type Recorder interface {
	Add(line string)
}

// Load reads a history log and returns its command lines in chronological
// order. Blank lines are dropped. When maxLines is positive, only the most
// recent maxLines lines are returned (still oldest first). Lines in zsh
// extended format (": <ts>:<dur>;cmd") are unwrapped to the bare command.
func Load(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	// Command lines can get long; the default 64KB token limit stays.
	for scanner.Scan() {
		line := unwrapExtended(scanner.Text())
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}

	log.Debugf("Loaded %d history lines from %s", len(lines), path)
	return lines, nil
}

// unwrapExtended strips the zsh EXTENDED_HISTORY envelope. Anything that
// does not look like one passes through untouched.
func unwrapExtended(line string) string {
	if !strings.HasPrefix(line, ": ") {
		return line
	}
	idx := strings.IndexByte(line, ';')
	if idx < 0 {
		return line
	}
	return line[idx+1:]
}

// Replay feeds lines into rec in order and returns how many were recorded.
func Replay(rec Recorder, lines []string) int {
	for _, line := range lines {
		rec.Add(line)
	}
	return len(lines)
}

// Appender persists executed command lines to the history log. Writes go
// straight to the file so a line is durable before the engine sees it.
type Appender struct {
	file *os.File
	path string
}

// NewAppender opens (or creates) the log at path in append mode.
func NewAppender(path string) (*Appender, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}
	return &Appender{file: file, path: path}, nil
}

// Append writes one command line to the log. Blank lines are ignored.
func (a *Appender) Append(line string) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}
	_, err := a.file.WriteString(line + "\n")
	if err != nil {
		log.Errorf("Failed to append to history log %s: %v", a.path, err)
	}
	return err
}

// Path returns the log file location.
func (a *Appender) Path() string {
	return a.path
}

// Close releases the underlying file.
func (a *Appender) Close() error {
	return a.file.Close()
}
