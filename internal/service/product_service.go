package service

import (
	"context"
	"fmt"
	"strings"

	"course-market/internal/model"
	"course-market/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	newID       func() string
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		newID:       uuid.NewString,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves every product in creation order.
func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	s.logger.Debug().Int("count", len(products)).Msg("retrieved products")

	return products, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id model.ProductID) (*model.Product, error) {
	if strings.TrimSpace(id.String()) == "" {
		s.logger.Warn().Msg("product ID is empty")
		return nil, model.ErrInvalidProductID
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Str("product_id", id.String()).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// Create validates a draft, assigns an id and stores it.
func (s *productService) Create(ctx context.Context, draft model.Draft) (*model.Product, error) {
	if err := draft.Validate(); err != nil {
		s.logger.Warn().Err(err).Msg("invalid product draft")
		return nil, err
	}

	product := &model.Product{
		ID:         model.ProductID(s.newID()),
		Name:       strings.TrimSpace(draft.Name),
		Price:      draft.Price,
		Image:      draft.Image,
		Desc:       draft.Desc,
		Instructor: draft.Instructor,
		Role:       draft.Role,
		Rating:     draft.Rating,
		Avatar:     draft.Avatar,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("product_id", product.ID.String()).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Str("product_id", product.ID.String()).
		Str("name", product.Name).
		Float64("price", product.Price).
		Msg("product created")

	return product, nil
}

// Update replaces the name and price of an existing product.
func (s *productService) Update(ctx context.Context, id model.ProductID, patch model.Patch) (*model.Product, error) {
	if strings.TrimSpace(id.String()) == "" {
		return nil, model.ErrInvalidProductID
	}

	if err := patch.Validate(); err != nil {
		s.logger.Warn().Err(err).Str("product_id", id.String()).Msg("invalid product patch")
		return nil, err
	}
	patch.Name = strings.TrimSpace(patch.Name)

	product, err := s.productRepo.Update(ctx, id, patch)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Str("product_id", id.String()).Msg("product to update not found")
		return nil, model.ErrProductNotFound
	}

	s.logger.Info().Str("product_id", id.String()).Msg("product updated")

	return product, nil
}

// Delete removes a product and returns what was removed.
func (s *productService) Delete(ctx context.Context, id model.ProductID) (*model.Product, error) {
	if strings.TrimSpace(id.String()) == "" {
		return nil, model.ErrInvalidProductID
	}

	product, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to delete product")
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Str("product_id", id.String()).Msg("product to delete not found")
		return nil, model.ErrProductNotFound
	}

	s.logger.Info().Str("product_id", id.String()).Msg("product deleted")

	return product, nil
}
