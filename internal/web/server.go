// Package web serves a read-only JSON view of a deck, for browsing cards
// from other front ends.
package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/mathema-dev/mathema/internal/cards"
	"github.com/mathema-dev/mathema/internal/storage"
)

// Server holds the dependencies for the HTTP server. The repository
// assumes exclusive ownership, so every request takes the lock.
type Server struct {
	mu     sync.Mutex
	repo   *storage.Repository
	router *http.ServeMux
	logger *slog.Logger
}

// NewServer creates and configures a new server over an opened
// repository with cards already loaded.
func NewServer(repo *storage.Repository, logger *slog.Logger) *Server {
	s := &Server{
		repo:   repo,
		router: http.NewServeMux(),
		logger: logger,
	}
	s.routes()
	return s
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.HandleFunc("/api/cards", s.handleListCards())
	s.router.HandleFunc("/api/cards/", s.handleGetCard())
}

type cardLineJSON struct {
	Kind     string `json:"kind"`
	Language string `json:"language,omitempty"`
	Text     string `json:"text"`
}

type cardJSON struct {
	UUID  string         `json:"uuid"`
	Lines []cardLineJSON `json:"lines"`
}

func lineKindName(kind cards.LineKind) (string, string) {
	switch kind.Tag {
	case cards.CommentLine:
		return "comment", ""
	case cards.MeaningLine:
		return "meaning", kind.Language.Abbreviation()
	case cards.PartOfSpeechLine:
		return "part_of_speech", ""
	case cards.AoristosLine:
		return "aoristos", ""
	default:
		return "unknown", ""
	}
}

func cardToJSON(card *cards.Card) cardJSON {
	out := cardJSON{UUID: card.UUID.String()}
	for _, line := range card.Lines {
		kind, lang := lineKindName(line.Kind)
		out.Lines = append(out.Lines, cardLineJSON{Kind: kind, Language: lang, Text: line.Text})
	}
	return out
}

// handleListCards returns the uuids of every loaded card.
func (s *Server) handleListCards() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.mu.Lock()
		ids := s.repo.CardUUIDs()
		out := make([]string, len(ids))
		for i, id := range ids {
			out[i] = id.String()
		}
		s.mu.Unlock()

		s.writeJSON(w, out)
	}
}

// handleGetCard returns one card by uuid.
func (s *Server) handleGetCard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		idText := strings.TrimPrefix(r.URL.Path, "/api/cards/")
		id, err := uuid.Parse(idText)
		if err != nil {
			http.Error(w, "Invalid card uuid", http.StatusBadRequest)
			return
		}

		s.mu.Lock()
		card := s.repo.Card(id)
		s.mu.Unlock()
		if card == nil {
			http.NotFound(w, r)
			return
		}

		s.writeJSON(w, cardToJSON(card))
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}
