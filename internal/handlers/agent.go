package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Prompter answers a chat query. agent.Service satisfies it.
type Prompter interface {
	Prompt(ctx context.Context, query string) (string, error)
}

type agentRequest struct {
	Query string `json:"query" validate:"required"`
}

// Agent serves the chat endpoint of the agent service.
type Agent struct {
	svc      Prompter
	validate *validator.Validate
	lg       *slog.Logger
}

func NewAgent(svc Prompter, lg *slog.Logger) *Agent {
	if lg == nil {
		lg = slog.Default()
	}
	return &Agent{svc: svc, validate: validator.New(validator.WithRequiredStructEnabled()), lg: lg}
}

// PostAgent serves POST /agent.
func (a *Agent) PostAgent(w http.ResponseWriter, r *http.Request) {
	var req agentRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Query is required and must be a string")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Query is required and must be a string")
		return
	}

	reply, err := a.svc.Prompt(r.Context(), req.Query)
	if err != nil {
		a.lg.ErrorContext(r.Context(), "error processing agent request", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to process AI response")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}
