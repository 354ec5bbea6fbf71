package booth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phayes/benaloh-challenge/challenge"
)

// Handler exposes a voting machine over HTTP. It implements the
// server's RouteRegistrar interface.
type Handler struct {
	machine *Machine
	log     *slog.Logger
}

// NewHandler creates a handler around a machine.
func NewHandler(machine *Machine, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{machine: machine, log: log}
}

// RegisterRoutes registers the booth API on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/api/ballot", h.handleMark)
	r.Get("/api/commitment", h.handleCommitment)
	r.Post("/api/challenge", h.handleChallenge)
	r.Post("/api/cast", h.handleCast)
}

type markRequest struct {
	Ballot []byte `json:"ballot"`
}

type commitmentResponse struct {
	Commitment string `json:"commitment"`
}

type castResponse struct {
	Ciphertext []byte `json:"ciphertext"`
}

func (h *Handler) handleMark(w http.ResponseWriter, r *http.Request) {
	var req markRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Ballot) == 0 {
		http.Error(w, "empty ballot", http.StatusBadRequest)
		return
	}

	com, err := h.machine.Mark(req.Ballot)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, commitmentResponse{Commitment: com.String()})
}

func (h *Handler) handleCommitment(w http.ResponseWriter, r *http.Request) {
	com, err := h.machine.Commitment()
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, commitmentResponse{Commitment: com.String()})
}

func (h *Handler) handleChallenge(w http.ResponseWriter, r *http.Request) {
	resp, err := h.machine.Challenge()
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, resp)
}

func (h *Handler) handleCast(w http.ResponseWriter, r *http.Request) {
	ciphertext, err := h.machine.Cast()
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, castResponse{Ciphertext: ciphertext})
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("write response", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNoBallot), errors.Is(err, challenge.ErrNotCommitted):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		h.log.Error("booth operation failed", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
