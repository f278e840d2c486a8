package server

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spellserve/spellserve/internal/utils"
	"github.com/spellserve/spellserve/pkg/checker"
	"github.com/spellserve/spellserve/pkg/config"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles the IPC for spell checking
type Server struct {
	checker *checker.Checker
	cfg     *config.Config
	dec     *msgpack.Decoder
	enc     *msgpack.Encoder
}

// NewServer creates a check server using stdin/stdout for IPC
func NewServer(chk *checker.Checker, cfg *config.Config) *Server {
	return NewServerWithIO(chk, cfg, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a check server over explicit streams
func NewServerWithIO(chk *checker.Checker, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	return &Server{
		checker: chk,
		cfg:     cfg,
		dec:     msgpack.NewDecoder(r),
		enc:     msgpack.NewEncoder(w),
	}
}

// Start begins listening for IPC requests. Returns nil on clean EOF.
func (s *Server) Start() error {
	log.Debug("Starting IPC server")

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

// handleRequest dispatches on the optional action field
func (s *Server) handleRequest(request Request) {
	switch request.Action {
	case "":
		s.handleCheck(request)
	case "get_info":
		s.handleInfo(request)
	default:
		s.sendError(request.ID, "unknown action: "+request.Action, 400)
	}
}

// handleCheck validates a token request, queries the checker and replies
// with the verdict, suggestions and timing.
func (s *Server) handleCheck(request Request) {
	token := utils.NormalizeToken(request.Token)

	if token == "" {
		s.sendError(request.ID, "missing 't' parameter", 400)
		log.Debug("Token empty after normalization")
		return
	}
	if len(token) > s.cfg.Server.MaxTokenLen {
		s.sendError(request.ID, "token exceeds maximum length", 400)
		log.Debugf("Token too long: %d chars", len(token))
		return
	}
	if s.cfg.Server.EnableFilter && !utils.IsCheckable(token) {
		s.sendError(request.ID, "token is not checkable", 400)
		log.Debugf("Token filtered: %q", token)
		return
	}

	limit := request.Limit
	if limit < 1 {
		limit = s.cfg.Checker.MaxSuggestions
	}
	if limit > s.cfg.Server.MaxLimit {
		limit = s.cfg.Server.MaxLimit
	}
	maxDistance := request.MaxDistance
	if maxDistance < 1 {
		maxDistance = s.cfg.Checker.MaxDistance
	}
	if maxDistance > s.cfg.Server.MaxDistanceLimit {
		maxDistance = s.cfg.Server.MaxDistanceLimit
		log.Debugf("Distance override clamped to %d", maxDistance)
	}

	start := time.Now()

	known := s.checker.Known(token)
	var suggestions []Suggestion
	if !known {
		results, err := s.checker.SuggestResults(token, maxDistance, limit)
		if err != nil {
			log.Debugf("Suggestion search for %q: %v", token, err)
		}
		suggestions = make([]Suggestion, len(results))
		for i, r := range results {
			suggestions[i] = Suggestion{Word: r.Word, Distance: r.Distance}
		}
	}

	elapsed := time.Since(start)

	s.sendResponse(CheckResponse{
		ID:          request.ID,
		Known:       known,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	})
}

// handleInfo reports the loaded dictionary and active policy
func (s *Server) handleInfo(request Request) {
	s.sendResponse(InfoResponse{
		ID:             request.ID,
		Status:         "ok",
		Words:          s.checker.Tree().Size(),
		MaxDistance:    s.cfg.Checker.MaxDistance,
		MaxSuggestions: s.cfg.Checker.MaxSuggestions,
	})
}

// sendResponse encodes a response onto the output stream
func (s *Server) sendResponse(response interface{}) {
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(ErrorResponse{
		ID:    id,
		Error: message,
		Code:  code,
	})
}
