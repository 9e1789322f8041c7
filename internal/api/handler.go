// Package api exposes the tool registry over HTTP/JSON.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"compliance-mcp/internal/middleware"
	"compliance-mcp/internal/tools"
)

// Version is reported by the health endpoint.
const Version = "2.0.0"

// ToolCallRequest is the envelope for POST /mcp/tools/call.
type ToolCallRequest struct {
	Tool      string         `json:"tool"`
	Arguments map[string]any `json:"arguments"`
}

// Handler serves the MCP tool endpoints.
type Handler struct {
	registry *tools.Registry
	logger   *slog.Logger
}

// NewHandler creates the HTTP handler around a tool registry.
func NewHandler(registry *tools.Registry, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{registry: registry, logger: logger}
}

// Routes mounts the handler's endpoints on a chi router. The caller decides
// which middleware wraps them.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/health", h.Health)
	r.Get("/mcp/tools", h.ListTools)
	r.Post("/mcp/tools/call", h.CallTool)
}

// Health reports service liveness. It is mounted outside the auth middleware.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": "compliance-mcp",
		"version": Version,
	})
}

// ListTools returns the tool descriptors with their input schemas.
func (h *Handler) ListTools(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tools": h.registry.List()})
}

// CallTool invokes a tool and returns its result verbatim. Tool-level
// failures are structured payloads inside a 200 response — the HTTP status
// only reflects transport-level problems.
func (h *Handler) CallTool(w http.ResponseWriter, r *http.Request) {
	var req ToolCallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "invalid request body",
		})
		return
	}

	h.logger.Info("tool call",
		"tool", req.Tool,
		"request_id", middleware.RequestIDFromContext(r.Context()))

	result := h.registry.Invoke(r.Context(), req.Tool, req.Arguments)
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
