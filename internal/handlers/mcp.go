package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"yt-mcp/internal/mcp"
)

// GetMCP serves GET /api/mcp/{namespace}. The namespace arrives
// percent-encoded because it contains "://".
func (h *Handlers) GetMCP(w http.ResponseWriter, r *http.Request) {
	ns, err := url.PathUnescape(mux.Vars(r)["namespace"])
	if err != nil {
		h.observe(ns, "unknown")
		writeError(w, http.StatusNotFound, "Unknown MCP namespace")
		return
	}

	q := make(mcp.Query)
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			q[k] = v[0]
		}
	}

	data, err := h.registry.Invoke(r.Context(), ns, q)
	switch {
	case errors.Is(err, mcp.ErrUnknownNamespace):
		h.observe(ns, "unknown")
		writeError(w, http.StatusNotFound, "Unknown MCP namespace")
		return
	case err != nil:
		h.observe(ns, "error")
		h.lg.ErrorContext(r.Context(), "MCP handler failed", "namespace", ns, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.observe(ns, "ok")
	writeJSON(w, http.StatusOK, map[string]any{"namespace": ns, "data": data})
}

// ListMCP serves GET /api/mcp.
func (h *Handlers) ListMCP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"namespaces": h.registry.Namespaces()})
}

func (h *Handlers) observe(ns, outcome string) {
	if h.metrics == nil {
		return
	}
	// Unknown namespaces are client input; keep them out of the label set.
	if outcome == "unknown" {
		ns = "unknown"
	}
	h.metrics.ObserveMCP(ns, outcome)
}
