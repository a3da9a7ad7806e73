/*
Package server implements msgpack IPC for command continuation services.

The server package provides a minimal interface for shell-history
completion using msgpack serialization over stdin/stdout.

The protocol uses binary msgpack encoding and supports recording executed
command lines, continuation requests, whole-line history search, stats and
health checks. Messages are processed synchronously with timing info
included in responses.

# IPC

The server operates on a request response model where clients send
structured messages via stdin and receive responses through stdout. Each
message contains an ID field, an op field and other fields based on the
operation type.

Continuation requests use mainly this structure:

	{"id": "req_001", "op": "suggest", "in": "git ch", "l": 10}

The server responds with suggestions ranked by edge frequency:

	{"id": "req_001", "s": [{"v": "checkout", "sp": true, "r": 1}], "c": 1, "t": 85}

The sp flag tells the client whether to splice a trailing space after the
accepted value (more typing expected) or not (the value completes a
recorded command line).

Recording an executed command:

	{"id": "rec_001", "op": "record", "line": "git checkout master"}

The line is persisted to the history log (when one is configured) before it
is indexed, so a crash never leaves the engine ahead of durable storage.

Whole-line history search:

	{"id": "srch_001", "op": "search", "in": "git p", "l": 5}

Response structures include status information and error details when an
op fails. The server maintains request counts for periodic config
reloading.
*/
package server

// Request is the single incoming message shape; op selects the operation:
// "record", "suggest", "search", "stats" or "health".
type Request struct {
	ID    string `msgpack:"id"`
	Op    string `msgpack:"op"`
	Line  string `msgpack:"line,omitempty"`
	Input string `msgpack:"in,omitempty"`
	Limit int    `msgpack:"l,omitempty"`
}

// SuggestionPayload - minimal continuation response entry
type SuggestionPayload struct {
	Value string `msgpack:"v"`
	Space bool   `msgpack:"sp"`
	Rank  uint16 `msgpack:"r"`
}

// SuggestResponse - continuation response
type SuggestResponse struct {
	ID          string              `msgpack:"id"`
	Suggestions []SuggestionPayload `msgpack:"s"`
	Count       int                 `msgpack:"c"`
	TimeTaken   int64               `msgpack:"t"`
}

// RecordResponse - record acknowledgement
type RecordResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
}

// SearchMatch - one whole-line search hit
type SearchMatch struct {
	Line string `msgpack:"ln"`
	Freq int    `msgpack:"f"`
}

// SearchResponse - whole-line history search response
type SearchResponse struct {
	ID        string        `msgpack:"id"`
	Matches   []SearchMatch `msgpack:"m"`
	Count     int           `msgpack:"c"`
	TimeTaken int64         `msgpack:"t"`
}

// StatsResponse - engine and index statistics
type StatsResponse struct {
	ID    string         `msgpack:"id"`
	Stats map[string]int `msgpack:"st"`
}

// StatusResponse - generic status acknowledgement
type StatusResponse struct {
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
