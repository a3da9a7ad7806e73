package server

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/histserve/histserve/internal/logger"
	"github.com/histserve/histserve/internal/utils"
	"github.com/histserve/histserve/pkg/config"
	"github.com/histserve/histserve/pkg/histlog"
	"github.com/histserve/histserve/pkg/history"
	"github.com/histserve/histserve/pkg/search"
)

// configReloadInterval is the request count between config re-reads.
const configReloadInterval = 256

// Server handles the IPC for command continuations. The appender is
// optional; without one, recorded lines are indexed but not persisted.
type Server struct {
	engine     *history.Trie
	index      *search.LineIndex
	appender   *histlog.Appender
	config     *config.Config
	configPath string

	dec *msgpack.Decoder
	enc *msgpack.Encoder
	log *log.Logger

	requestCount int
}

// NewServer creates a new completion server using stdin/stdout for IPC
func NewServer(engine *history.Trie, index *search.LineIndex, appender *histlog.Appender, cfg *config.Config, configPath string) *Server {
	return newServerWithIO(engine, index, appender, cfg, configPath, os.Stdin, os.Stdout)
}

func newServerWithIO(engine *history.Trie, index *search.LineIndex, appender *histlog.Appender, cfg *config.Config, configPath string, r io.Reader, w io.Writer) *Server {
	return &Server{
		engine:     engine,
		index:      index,
		appender:   appender,
		config:     cfg,
		configPath: configPath,
		dec:        msgpack.NewDecoder(r),
		enc:        msgpack.NewEncoder(w),
		log:        logger.New("ipc"),
	}
}

// Start begins listening for IPC requests
func (s *Server) Start() error {
	s.log.Debug("Starting server.")

	// Signal that the server is ready
	s.sendResponse(StatusResponse{Status: "ready"})

	for {
		var request Request
		if err := s.dec.Decode(&request); err != nil {
			if err == io.EOF {
				return nil
			}
			// A corrupt msgpack stream cannot be resynced; bail out.
			s.log.Errorf("Decoding request: %v", err)
			s.sendError("", "Invalid msgpack request", 400)
			return err
		}
		s.handleRequest(request)
	}
}

// handleRequest dispatches an incoming request on its op field
func (s *Server) handleRequest(request Request) {
	s.requestCount++
	if s.requestCount%configReloadInterval == 0 {
		s.reloadConfig()
	}

	switch request.Op {
	case "record":
		s.handleRecord(request)
	case "suggest":
		s.handleSuggest(request)
	case "search":
		s.handleSearch(request)
	case "stats":
		s.handleStats(request)
	case "health":
		s.sendResponse(StatusResponse{Status: "ok"})
	default:
		s.sendError(request.ID, fmt.Sprintf("Unknown op: %s", request.Op), 400)
	}
}

// handleRecord persists the executed line (when a log is configured), then
// feeds it to the token trie and the line index. Persist-first ordering
// keeps the durable log ahead of the in-memory engine.
func (s *Server) handleRecord(request Request) {
	line := request.Line
	if line == "" {
		s.sendError(request.ID, "Missing 'line' parameter", 400)
		return
	}
	if len(line) > s.config.Server.MaxInput {
		s.sendError(request.ID, fmt.Sprintf("Line exceeds maximum length of %d characters", s.config.Server.MaxInput), 400)
		return
	}
	if s.config.Server.EnableFilter && !utils.IsValidInput(line) {
		s.sendError(request.ID, "Line contains control characters", 400)
		return
	}

	if s.appender != nil && s.config.History.PersistRecords {
		if err := s.appender.Append(line); err != nil {
			s.sendError(request.ID, "Failed to persist line", 500)
			return
		}
	}

	s.engine.Add(line)
	s.index.Record(line)
	s.sendResponse(RecordResponse{ID: request.ID, Status: "ok"})
}

// handleSuggest processes a continuation request. It validates the request,
// retrieves continuations from the engine and sends the response with
// position-based ranks and timing info.
func (s *Server) handleSuggest(request Request) {
	input := request.Input
	if len(input) > s.config.Server.MaxInput {
		s.sendError(request.ID, fmt.Sprintf("Input exceeds maximum length of %d characters", s.config.Server.MaxInput), 400)
		return
	}
	if s.config.Server.EnableFilter && !utils.IsValidInput(input) {
		s.sendError(request.ID, "Input contains control characters", 400)
		return
	}

	limit := s.clampLimit(request.Limit)

	start := time.Now()
	suggestions := s.engine.ContinuationsFor(input)
	elapsed := time.Since(start)

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}

	payload := make([]SuggestionPayload, len(suggestions))
	for i, sug := range suggestions {
		payload[i] = SuggestionPayload{
			Value: sug.Value,
			Space: sug.Space,
			Rank:  uint16(i + 1),
		}
	}

	s.sendResponse(SuggestResponse{
		ID:          request.ID,
		Suggestions: payload,
		Count:       len(payload),
		TimeTaken:   elapsed.Microseconds(),
	})
}

// handleSearch answers whole-line prefix search over recorded history.
func (s *Server) handleSearch(request Request) {
	input := request.Input
	if input == "" {
		s.sendError(request.ID, "Missing 'in' parameter", 400)
		return
	}
	if len(input) > s.config.Server.MaxInput {
		s.sendError(request.ID, fmt.Sprintf("Input exceeds maximum length of %d characters", s.config.Server.MaxInput), 400)
		return
	}

	limit := s.clampLimit(request.Limit)

	start := time.Now()
	matches := s.index.Search(input, limit)
	elapsed := time.Since(start)

	payload := make([]SearchMatch, len(matches))
	for i, m := range matches {
		payload[i] = SearchMatch{Line: m.Line, Freq: m.Frequency}
	}

	s.sendResponse(SearchResponse{
		ID:        request.ID,
		Matches:   payload,
		Count:     len(payload),
		TimeTaken: elapsed.Microseconds(),
	})
}

// handleStats merges engine and index statistics into one response.
func (s *Server) handleStats(request Request) {
	stats := s.engine.Stats()
	for k, v := range s.index.Stats() {
		stats[k] = v
	}
	s.sendResponse(StatsResponse{ID: request.ID, Stats: stats})
}

func (s *Server) clampLimit(limit int) int {
	if limit < 1 {
		limit = s.config.CLI.DefaultLimit
	}
	if limit > s.config.Server.MaxLimit {
		limit = s.config.Server.MaxLimit
	}
	return limit
}

// reloadConfig re-reads the config file so long-running sessions pick up
// edits without a restart.
func (s *Server) reloadConfig() {
	if s.configPath == "" {
		return
	}
	cfg, err := config.LoadConfig(s.configPath)
	if err != nil {
		s.log.Warnf("Config reload failed, keeping current config: %v", err)
		return
	}
	s.config = cfg
	s.log.Debugf("Reloaded config from %s after %d requests", s.configPath, s.requestCount)
}

// sendResponse encodes the given response and writes it to the client.
func (s *Server) sendResponse(response interface{}) {
	if err := s.enc.Encode(response); err != nil {
		s.log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id string, message string, code int) {
	s.sendResponse(ErrorResponse{
		ID:    id,
		Error: message,
		Code:  code,
	})
}
