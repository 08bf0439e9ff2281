package repository

import (
	"context"

	"course-market/internal/model"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// List retrieves all products in creation order.
	List(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product by its ID.
	// Returns nil, nil if the product does not exist.
	GetByID(ctx context.Context, id model.ProductID) (*model.Product, error)

	// Create inserts a product. ID must already be assigned; timestamps are set by the database.
	Create(ctx context.Context, product *model.Product) error

	// Update replaces the name and price of a product.
	// Returns nil, nil if the product does not exist.
	Update(ctx context.Context, id model.ProductID, patch model.Patch) (*model.Product, error)

	// Delete removes a product and returns it as it was.
	// Returns nil, nil if the product does not exist.
	Delete(ctx context.Context, id model.ProductID) (*model.Product, error)

	// Count returns the number of stored products.
	Count(ctx context.Context) (int, error)
}
