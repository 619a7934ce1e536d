package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/bastiangx/anagramserve/internal/logger"
	"github.com/bastiangx/anagramserve/pkg/anagram"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// IPCServer handles msgpack requests over a reader/writer pair, stdin/stdout by default
type IPCServer struct {
	service *Service
	reader  *bufio.Reader
	writer  *bufio.Writer
	encoder *msgpack.Encoder
	logger  *log.Logger
}

// NewIPCServer creates a server using stdin/stdout
func NewIPCServer(service *Service) *IPCServer {
	return NewIPCServerWithIO(service, os.Stdin, os.Stdout)
}

// NewIPCServerWithIO creates a server on arbitrary streams
func NewIPCServerWithIO(service *Service, r io.Reader, w io.Writer) *IPCServer {
	bw := bufio.NewWriter(w)
	return &IPCServer{
		service: service,
		reader:  bufio.NewReader(r),
		writer:  bw,
		encoder: msgpack.NewEncoder(bw),
		logger:  logger.New("ipc"),
	}
}

// Start sends a ready message and serves requests until EOF or ctx is done.
// A stream that is not valid msgpack ends the loop with an error.
func (s *IPCServer) Start(ctx context.Context) error {
	s.logger.Debug("Starting IPC server")
	if err := s.send(map[string]string{"status": "ready"}); err != nil {
		return err
	}

	decoder := msgpack.NewDecoder(s.reader)
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		var raw msgpack.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debug("Input closed, stopping IPC server")
				return nil
			}
			s.logger.Errorf("Reading request: %v", err)
			s.sendError("", "malformed msgpack stream", 400)
			return fmt.Errorf("failed to decode request: %w", err)
		}

		if err := s.handleRequest(ctx, raw); err != nil {
			return err
		}
	}
}

// handleRequest decodes one request and writes its response
func (s *IPCServer) handleRequest(ctx context.Context, raw msgpack.RawMessage) error {
	var req Request
	if err := msgpack.Unmarshal(raw, &req); err != nil {
		s.logger.Warnf("Invalid request: %v", err)
		s.service.Metrics().ObserveRequest("ipc", "invalid", "400")
		return s.sendError("", "invalid request", 400)
	}

	switch req.Action {
	case "", ActionAnagram:
		return s.handleAnagram(ctx, req)
	case ActionInfo:
		s.service.Metrics().ObserveRequest("ipc", ActionInfo, "200")
		return s.send(InfoResponse{ID: req.ID, Status: "ok", Info: s.service.Info()})
	case ActionLookup:
		if req.Word == "" {
			s.service.Metrics().ObserveRequest("ipc", ActionLookup, "400")
			return s.sendError(req.ID, "missing 'w' parameter", 400)
		}
		s.service.Metrics().ObserveRequest("ipc", ActionLookup, "200")
		return s.send(LookupResponse{
			ID:    req.ID,
			Word:  anagram.Normalize(req.Word),
			Known: s.service.Known(req.Word),
		})
	default:
		s.service.Metrics().ObserveRequest("ipc", "unknown", "404")
		return s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), 404)
	}
}

func (s *IPCServer) handleAnagram(ctx context.Context, req Request) error {
	result, err := s.service.Anagrams(ctx, req.Query, req.Limit)
	if err != nil {
		s.service.Metrics().ObserveRequest("ipc", ActionAnagram, "400")
		switch {
		case errors.Is(err, ErrMissingQuery):
			return s.sendError(req.ID, "missing 'q' parameter", 400)
		case errors.Is(err, ErrQueryTooLong):
			return s.sendError(req.ID, "query exceeds maximum length of "+
				strconv.Itoa(s.service.opts.MaxQueryLength)+" characters", 400)
		default:
			return s.sendError(req.ID, err.Error(), 500)
		}
	}

	s.service.Metrics().ObserveRequest("ipc", ActionAnagram, "200")
	return s.send(AnagramResponse{
		ID:        req.ID,
		Phrases:   result.Phrases,
		Count:     len(result.Phrases),
		TimeTaken: result.Elapsed.Microseconds(),
		Cached:    result.Cached,
	})
}

// send encodes a response and flushes it
func (s *IPCServer) send(response any) error {
	if err := s.encoder.Encode(response); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
		return err
	}
	return s.writer.Flush()
}

// sendError sends an error response
func (s *IPCServer) sendError(id, message string, code int) error {
	return s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
