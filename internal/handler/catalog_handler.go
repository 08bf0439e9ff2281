package handler

import (
	"context"
	"net/http"

	"course-market/internal/catalog"
	"course-market/internal/model"

	"github.com/rs/zerolog"
)

// CatalogService projects products into catalogue cards.
type CatalogService interface {
	Cards(ctx context.Context) ([]catalog.Card, error)
}

// CatalogHandler serves the public catalogue.
type CatalogHandler struct {
	service CatalogService
	logger  zerolog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(service CatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger.With().Str("handler", "catalog").Logger(),
	}
}

// Cards handles GET /api/catalog.
func (h *CatalogHandler) Cards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.service.Cards(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, model.ErrCodeTransport, "failed to load catalogue", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cards)
}
