package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/ljnsn/crustyfuzz/internal/logger"
	"github.com/ljnsn/crustyfuzz/pkg/config"
	"github.com/ljnsn/crustyfuzz/pkg/extract"
	"github.com/ljnsn/crustyfuzz/pkg/sequence"
)

var log = logger.New("server")

// Server handles the IPC for similarity requests.
type Server struct {
	cfg *config.Config
	dec *msgpack.Decoder
	enc *msgpack.Encoder
}

// NewServer creates a similarity server using stdin/stdout for IPC.
func NewServer(cfg *config.Config) *Server {
	return &Server{
		cfg: cfg,
		dec: msgpack.NewDecoder(os.Stdin),
		enc: msgpack.NewEncoder(os.Stdout),
	}
}

// NewServerWith wires explicit streams, mainly for tests.
func NewServerWith(cfg *config.Config, r io.Reader, w io.Writer) *Server {
	return &Server{
		cfg: cfg,
		dec: msgpack.NewDecoder(r),
		enc: msgpack.NewEncoder(w),
	}
}

// Start begins listening for IPC requests. Returns nil on EOF.
func (s *Server) Start() error {
	log.Debug("Starting server.")
	s.send(StatusResponse{Status: "ready"})

	for {
		var request Request
		if err := s.dec.Decode(&request); err != nil {
			if err == io.EOF {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			return err
		}
		s.handleRequest(request)
	}
}

func (s *Server) handleRequest(request Request) {
	switch request.Cmd {
	case "match":
		s.handleMatch(request)
	case "extract":
		s.handleExtract(request)
	case "health":
		s.send(StatusResponse{ID: request.ID, Status: "ok"})
	default:
		s.sendError(request.ID, fmt.Sprintf("Unknown command: %s", request.Cmd), 400)
	}
}

func (s *Server) handleMatch(request Request) {
	scorer, ok := s.resolveScorer(request)
	if !ok {
		return
	}

	start := time.Now()
	a, err := sequence.NewWith(request.S1, sequence.Default, sequence.Options{})
	if err != nil {
		s.sendError(request.ID, "Invalid s1 encoding", 400)
		return
	}
	b, err := sequence.NewWith(request.S2, sequence.Default, sequence.Options{})
	if err != nil {
		s.sendError(request.ID, "Invalid s2 encoding", 400)
		return
	}
	score, err := scorer(a.String(), b.String(), request.Cutoff)
	if err != nil {
		s.sendError(request.ID, err.Error(), 400)
		log.Errorf("Match request %s: %v", request.ID, err)
		return
	}
	elapsed := time.Since(start)

	s.send(MatchResponse{
		ID:        request.ID,
		Score:     score,
		TimeTaken: elapsed.Microseconds(),
	})
}

func (s *Server) handleExtract(request Request) {
	if len(request.Choices) == 0 {
		s.sendError(request.ID, "Missing 'c' choices", 400)
		return
	}
	if len(request.Choices) > s.cfg.Server.MaxChoices {
		s.sendError(request.ID, fmt.Sprintf("Too many choices (max %d)", s.cfg.Server.MaxChoices), 400)
		return
	}
	scorer, ok := s.resolveScorer(request)
	if !ok {
		return
	}
	limit := request.Limit
	if limit <= 0 || limit > s.cfg.Server.MaxLimit {
		limit = s.cfg.Server.MaxLimit
	}

	opts := []extract.Option{
		extract.WithScorer(scorer),
		extract.WithProcessor(sequence.Default),
		extract.WithLimit(limit),
	}
	if request.Cutoff > 0 {
		opts = append(opts, extract.WithScoreCutoff(request.Cutoff))
	}
	if s.cfg.Match.Workers > 0 {
		opts = append(opts, extract.WithWorkers(s.cfg.Match.Workers))
	}

	start := time.Now()
	results, stats, err := extract.ExtractWithStats(context.Background(), request.Query, request.Choices, opts...)
	if err != nil {
		s.sendError(request.ID, err.Error(), 400)
		log.Errorf("Extract request %s: %v", request.ID, err)
		return
	}
	elapsed := time.Since(start)

	matches := make([]ExtractMatch, len(results))
	for i, r := range results {
		matches[i] = ExtractMatch{Choice: r.Choice, Score: r.Score, Index: r.Index}
	}
	s.send(ExtractResponse{
		ID:        request.ID,
		Matches:   matches,
		Count:     len(matches),
		Skipped:   stats.Skipped,
		TimeTaken: elapsed.Microseconds(),
	})
}

// resolveScorer maps the request's scorer name, falling back to the
// configured default. Sends the error response itself on failure.
func (s *Server) resolveScorer(request Request) (extract.Scorer, bool) {
	name := request.Scorer
	if name == "" {
		name = s.cfg.Match.DefaultScorer
	}
	scorer, ok := extract.Scorers[name]
	if !ok {
		s.sendError(request.ID, fmt.Sprintf("Unknown scorer: %s", name), 400)
		return nil, false
	}
	return scorer, true
}

func (s *Server) send(response any) {
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
