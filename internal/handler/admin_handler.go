package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"course-market/internal/admin"
	"course-market/internal/model"

	"github.com/rs/zerolog"
)

// ConfirmHeader carries the user's answer to the delete prompt.
const ConfirmHeader = "X-Confirm"

// AdminController is the admin state machine driven by AdminHandler.
type AdminController interface {
	Snapshot() admin.Snapshot
	SetForm(name, price string)
	Load(ctx context.Context) error
	Submit(ctx context.Context) error
	Edit(id model.ProductID) error
	Cancel()
	Delete(ctx context.Context, id model.ProductID, confirmer admin.Confirmer) (bool, error)
}

// FormRequest is the body of PUT /api/admin/form.
type FormRequest struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

// AdminHandler exposes the admin controller over HTTP. Every response body is the
// resulting snapshot; the status code tells how the action went.
type AdminHandler struct {
	controller AdminController
	logger     zerolog.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(controller AdminController, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		controller: controller,
		logger:     logger.With().Str("handler", "admin").Logger(),
	}
}

// State handles GET /api/admin/state.
func (h *AdminHandler) State(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.controller.Snapshot())
}

// Load handles POST /api/admin/load.
func (h *AdminHandler) Load(w http.ResponseWriter, r *http.Request) {
	err := h.controller.Load(r.Context())
	h.respond(w, err)
}

// SetForm handles PUT /api/admin/form.
func (h *AdminHandler) SetForm(w http.ResponseWriter, r *http.Request) {
	var req FormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	h.controller.SetForm(req.Name, req.Price)
	writeJSON(w, http.StatusOK, h.controller.Snapshot())
}

// Submit handles POST /api/admin/submit.
func (h *AdminHandler) Submit(w http.ResponseWriter, r *http.Request) {
	err := h.controller.Submit(r.Context())
	h.respond(w, err)
}

// Edit handles POST /api/admin/edit/{id}.
func (h *AdminHandler) Edit(w http.ResponseWriter, r *http.Request) {
	err := h.controller.Edit(productIDParam(r))
	h.respond(w, err)
}

// Cancel handles POST /api/admin/cancel.
func (h *AdminHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.controller.Cancel()
	writeJSON(w, http.StatusOK, h.controller.Snapshot())
}

// Delete handles DELETE /api/admin/products/{id}. Without "X-Confirm: true" the
// request is treated as a declined prompt and nothing changes.
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	confirmed := strings.EqualFold(r.Header.Get(ConfirmHeader), "true")

	_, err := h.controller.Delete(r.Context(), productIDParam(r), admin.Always(confirmed))
	h.respond(w, err)
}

// respond writes the snapshot with a status derived from err.
func (h *AdminHandler) respond(w http.ResponseWriter, err error) {
	status := http.StatusOK

	var terr *model.TransportError
	switch {
	case err == nil:
	case admin.IsValidation(err):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, model.ErrProductNotFound):
		status = http.StatusNotFound
	case errors.As(err, &terr):
		status = http.StatusBadGateway
	default:
		status = http.StatusInternalServerError
	}

	if err != nil {
		h.logger.Debug().Err(err).Int("status", status).Msg("admin action failed")
	}

	writeJSON(w, status, h.controller.Snapshot())
}
