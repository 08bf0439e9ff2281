// Package catalog projects products into the cards shown on the public catalogue page.
package catalog

import (
	"context"
	"fmt"
	"math"

	"course-market/internal/model"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Defaults for fields a product may leave empty.
const (
	DefaultDesc       = "Mulai transformasi dengan instruktur profesional, harga yang terjangkau, dan..."
	DefaultInstructor = "Jenna Ortega"
	DefaultRole       = "Senior Accountant di Gojek"
	DefaultRating     = "4.5 (100)"
	DefaultAvatar     = "/assets/avatar-1.png"
)

// Lister lists products.
type Lister interface {
	List(ctx context.Context) ([]model.Product, error)
}

// Card is one catalogue entry with every display field filled in.
type Card struct {
	ID         model.ProductID `json:"id"`
	Title      string          `json:"title"`
	Image      string          `json:"image"`
	Desc       string          `json:"desc"`
	Instructor string          `json:"instructor"`
	Role       string          `json:"role"`
	Rating     string          `json:"rating"`
	Avatar     string          `json:"avatar"`
	Price      float64         `json:"price"`
	PriceLabel string          `json:"priceLabel"`
}

// Service builds catalogue cards.
type Service struct {
	products         Lister
	placeholderImage string
	printer          *message.Printer
	logger           zerolog.Logger
}

// NewService creates a catalogue service. Products without an image get placeholderImage.
func NewService(products Lister, placeholderImage string, logger zerolog.Logger) *Service {
	return &Service{
		products:         products,
		placeholderImage: placeholderImage,
		printer:          message.NewPrinter(language.Indonesian),
		logger:           logger.With().Str("service", "catalog").Logger(),
	}
}

// Cards lists the products and projects them in backend order.
func (s *Service) Cards(ctx context.Context) ([]Card, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load catalogue")
		return nil, fmt.Errorf("failed to load catalogue: %w", err)
	}

	cards := make([]Card, 0, len(products))
	for _, p := range products {
		cards = append(cards, s.card(p))
	}

	s.logger.Debug().Int("count", len(cards)).Msg("catalogue built")

	return cards, nil
}

func (s *Service) card(p model.Product) Card {
	return Card{
		ID:         p.ID,
		Title:      p.Name,
		Image:      orDefault(p.Image, s.placeholderImage),
		Desc:       orDefault(p.Desc.String(), DefaultDesc),
		Instructor: orDefault(p.Instructor.String(), DefaultInstructor),
		Role:       orDefault(p.Role.String(), DefaultRole),
		Rating:     orDefault(p.Rating.String(), DefaultRating),
		Avatar:     orDefault(p.Avatar.String(), DefaultAvatar),
		Price:      p.Price,
		PriceLabel: s.PriceLabel(p.Price),
	}
}

// PriceLabel formats a price with id-ID digit grouping, e.g. "Rp 200.000".
func (s *Service) PriceLabel(price float64) string {
	if price == math.Trunc(price) {
		return s.printer.Sprintf("Rp %d", int64(price))
	}
	return s.printer.Sprintf("Rp %v", price)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
