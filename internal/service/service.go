package service

import (
	"context"

	"course-market/internal/model"
)

// ProductService defines operations for product management.
type ProductService interface {
	// List retrieves every product in creation order.
	List(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id model.ProductID) (*model.Product, error)

	// Create validates a draft, assigns an id and stores it.
	Create(ctx context.Context, draft model.Draft) (*model.Product, error)

	// Update replaces the name and price of an existing product.
	Update(ctx context.Context, id model.ProductID, patch model.Patch) (*model.Product, error)

	// Delete removes a product and returns what was removed.
	Delete(ctx context.Context, id model.ProductID) (*model.Product, error)
}
