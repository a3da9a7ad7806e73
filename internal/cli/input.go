// Package cli handles cmd line input and suggestions for DBG and testing various features
package cli

import (
	"bufio"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/histserve/histserve/internal/logger"
	"github.com/histserve/histserve/pkg/history"
	"github.com/histserve/histserve/pkg/search"
)

var (
	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#569fba"})
	spaceStyle = lipgloss.NewStyle().Faint(true)
)

// InputHandler processes user input from stdin, treating each line as an
// in-progress command line and printing its continuations. Lines starting
// with ':' are handler commands instead:
//
//	:add <line>   record an executed command line
//	:find <pfx>   whole-line history search
//	:stats        engine and index statistics
//	:q            quit
type InputHandler struct {
	engine       history.Suggester
	index        *search.LineIndex
	suggestLimit int
	searchLimit  int
	maxInput     int
	log          *log.Logger
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(engine history.Suggester, index *search.LineIndex, suggestLimit, searchLimit, maxInput int) *InputHandler {
	return &InputHandler{
		engine:       engine,
		index:        index,
		suggestLimit: suggestLimit,
		searchLimit:  searchLimit,
		maxInput:     maxInput,
		log:          logger.New("cli"),
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin,
// and passes it to handleInput() for processing.
// Loop terminates on :q or when stdin is closed.
func (h *InputHandler) Start() error {
	h.log.Print("HistServe CLI")
	reader := bufio.NewReader(os.Stdin)
	h.log.Print("type a partial command and press Enter to see continuations (:q to exit):")

	for {
		h.log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if !h.handleCommand(line) {
				return nil
			}
			continue
		}
		h.handleInput(line)
	}
}

// handleCommand runs a ':' command; returns false when the loop should end.
func (h *InputHandler) handleCommand(line string) bool {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case ":q", ":quit":
		return false
	case ":add":
		if rest == "" {
			h.log.Error("usage: :add <command line>")
			return true
		}
		h.engine.Add(rest)
		h.index.Record(rest)
		h.log.Printf("recorded: %s", rest)
	case ":find":
		if rest == "" {
			h.log.Error("usage: :find <prefix>")
			return true
		}
		matches := h.index.Search(rest, h.searchLimit)
		if len(matches) == 0 {
			h.log.Warnf("No history lines start with '%s'", rest)
			return true
		}
		for i, m := range matches {
			h.log.Printf("%2d. %-60s (x%d)", i+1, m.Line, m.Frequency)
		}
	case ":stats":
		stats := h.engine.Stats()
		for k, v := range h.index.Stats() {
			stats[k] = v
		}
		for k, v := range stats {
			h.log.Printf("%-16s %d", k, v)
		}
	default:
		h.log.Errorf("Unknown command: %s", cmd)
	}
	return true
}

// handleInput prints the continuations for one in-progress line. The space
// flag is rendered as a visible trailing marker so the splice behavior a
// client would apply is obvious.
func (h *InputHandler) handleInput(input string) {
	if len(input) > h.maxInput {
		h.log.Errorf("Input too long: %d > %d", len(input), h.maxInput)
		return
	}

	suggestions := h.engine.ContinuationsFor(input)
	if len(suggestions) == 0 {
		h.log.Warnf("No continuations for '%s'", input)
		return
	}
	if len(suggestions) > h.suggestLimit {
		suggestions = suggestions[:h.suggestLimit]
	}

	h.log.Printf("Found %d continuations for '%s':", len(suggestions), input)
	for i, s := range suggestions {
		rendered := valueStyle.Render(s.Value)
		if s.Space {
			rendered += spaceStyle.Render("␣")
		}
		h.log.Printf("%2d. %s", i+1, rendered)
	}
}
