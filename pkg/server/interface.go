/*
Package server implements msgpack IPC for similarity scoring services.

The server reads binary msgpack requests from stdin and writes responses
to stdout, one msgpack object per message. This is process-local IPC for
editor and tool integrations, not a network service.

A pairwise match request:

	{"id": "m1", "cmd": "match", "s1": "kitten", "s2": "sitting", "scorer": "ratio"}

A batch extraction request:

	{"id": "x1", "cmd": "extract", "q": "apple", "c": ["apply", "apples", "orange"], "l": 2}

The server responds with scores and per-request timing in microseconds:

	{"id": "x1", "m": [{"w": "apples", "s": 90.9, "i": 1}, {"w": "apply", "s": 80.0, "i": 0}], "c": 2, "t": 210}

Unknown commands, unknown scorers and oversized batches produce an error
response carrying the request ID, a message and a code. Candidates that
fail to score are skipped server-side and surface only in the skip
counter, never as a failed batch.
*/
package server

// Request is the envelope for every incoming message.
type Request struct {
	ID      string   `msgpack:"id"`
	Cmd     string   `msgpack:"cmd"` // "match", "extract" or "health"
	S1      string   `msgpack:"s1,omitempty"`
	S2      string   `msgpack:"s2,omitempty"`
	Query   string   `msgpack:"q,omitempty"`
	Choices []string `msgpack:"c,omitempty"`
	Scorer  string   `msgpack:"scorer,omitempty"`
	Cutoff  float64  `msgpack:"sc,omitempty"`
	Limit   int      `msgpack:"l,omitempty"`
}

// MatchResponse answers a pairwise match request.
type MatchResponse struct {
	ID        string  `msgpack:"id"`
	Score     float64 `msgpack:"score"`
	TimeTaken int64   `msgpack:"t"`
}

// ExtractMatch is one ranked result in an extract response.
type ExtractMatch struct {
	Choice string  `msgpack:"w"`
	Score  float64 `msgpack:"s"`
	Index  int     `msgpack:"i"`
}

// ExtractResponse answers a batch extraction request.
type ExtractResponse struct {
	ID        string         `msgpack:"id"`
	Matches   []ExtractMatch `msgpack:"m"`
	Count     int            `msgpack:"c"`
	Skipped   int            `msgpack:"sk,omitempty"`
	TimeTaken int64          `msgpack:"t"`
}

// StatusResponse reports readiness and health.
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for failed requests.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
