package sessions

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/campward/campward/internal/engine"
	"github.com/campward/campward/pkg/handlers"
	"github.com/campward/campward/pkg/routes"
)

// Handler provides HTTP endpoints for grouping session operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "grouping"),
	}
}

// Routes returns the route group definition for grouping endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/grouping",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{campId}", Handler: h.State},
			{Method: "POST", Pattern: "/{campId}/auto", Handler: h.AutoGroup},
			{Method: "POST", Pattern: "/{campId}/validate", Handler: h.ValidateMove},
			{Method: "POST", Pattern: "/{campId}/update", Handler: h.CommitMoves},
			{Method: "POST", Pattern: "/{campId}/violations/{id}/resolve", Handler: h.Resolve},
			{Method: "POST", Pattern: "/{campId}/finalize", Handler: h.Finalize},
			{Method: "POST", Pattern: "/{campId}/group", Handler: h.CreateGroup},
			{Method: "PUT", Pattern: "/{campId}/group/{id}", Handler: h.UpdateGroup},
			{Method: "DELETE", Pattern: "/{campId}/group/{id}", Handler: h.DeleteGroup},
		},
	}
}

func (h *Handler) campID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("campId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrCampNotFound)
		return uuid.Nil, false
	}
	return id, true
}

// State returns the full grouping picture for a camp.
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	campID, ok := h.campID(w, r)
	if !ok {
		return
	}

	state, err := h.sys.State(r.Context(), campID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, state)
}

// AutoGroup runs the solver for a camp. A rerun overwrites manual moves.
func (h *Handler) AutoGroup(w http.ResponseWriter, r *http.Request) {
	campID, ok := h.campID(w, r)
	if !ok {
		return
	}

	var cmd AutoGroupCommand
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, engine.ErrInvalidConfig)
			return
		}
	}

	result, err := h.sys.AutoGroup(r.Context(), campID, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// ValidateMove checks a proposed move without committing it.
func (h *Handler) ValidateMove(w http.ResponseWriter, r *http.Request) {
	campID, ok := h.campID(w, r)
	if !ok {
		return
	}

	var move engine.Move
	if err := json.NewDecoder(r.Body).Decode(&move); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, engine.ErrCamperNotFound)
		return
	}

	validation, err := h.sys.ValidateMove(r.Context(), campID, move)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, validation)
}

// CommitMoves applies a batch of manual moves and returns the new state.
func (h *Handler) CommitMoves(w http.ResponseWriter, r *http.Request) {
	campID, ok := h.campID(w, r)
	if !ok {
		return
	}

	var cmd MoveCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, engine.ErrCamperNotFound)
		return
	}

	state, err := h.sys.CommitMoves(r.Context(), campID, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, state)
}

// Resolve marks a violation resolved with a mandatory note.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	campID, ok := h.campID(w, r)
	if !ok {
		return
	}

	violationID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrViolationNotFound)
		return
	}

	var cmd ResolveCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, engine.ErrNoteRequired)
		return
	}

	violation, err := h.sys.Resolve(r.Context(), campID, violationID, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, violation)
}

// Finalize locks or unlocks a session depending on the action in the body.
func (h *Handler) Finalize(w http.ResponseWriter, r *http.Request) {
	campID, ok := h.campID(w, r)
	if !ok {
		return
	}

	var cmd FinalizeCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidAction)
		return
	}

	session, err := h.sys.Finalize(r.Context(), campID, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, session)
}

// CreateGroup adds an empty group to the session.
func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	campID, ok := h.campID(w, r)
	if !ok {
		return
	}

	var cmd GroupCommand
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidGroup)
			return
		}
	}

	group, err := h.sys.CreateGroup(r.Context(), campID, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, group)
}

// UpdateGroup renames or recolors a group.
func (h *Handler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	campID, ok := h.campID(w, r)
	if !ok {
		return
	}

	groupID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidGroup)
		return
	}

	var cmd GroupCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidGroup)
		return
	}

	group, err := h.sys.UpdateGroup(r.Context(), campID, groupID, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, group)
}

// DeleteGroup removes a group; its members fall back to ungrouped.
func (h *Handler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	campID, ok := h.campID(w, r)
	if !ok {
		return
	}

	groupID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidGroup)
		return
	}

	if err := h.sys.DeleteGroup(r.Context(), campID, groupID); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
