package admin

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"course-market/internal/model"

	"github.com/google/uuid"
)

// placeholderImageFormat yields a distinct picsum image per seed.
const placeholderImageFormat = "https://picsum.photos/seed/%s/600/400"

// SeedFunc returns a value unique to one create request.
type SeedFunc func() string

// NewSeed is the default SeedFunc.
func NewSeed() string {
	return uuid.NewString()
}

// PlaceholderImage builds the image URL stored with a newly created product.
func PlaceholderImage(seed string) string {
	return fmt.Sprintf(placeholderImageFormat, url.PathEscape(seed))
}

// ValidateForm checks raw form input and returns the parsed price.
// The name must contain a non-blank character; the price must be a finite number above zero.
func ValidateForm(name, price string) (float64, error) {
	if strings.TrimSpace(name) == "" {
		return 0, model.ErrNameRequired
	}

	value, err := parsePrice(price)
	if err != nil {
		return 0, err
	}

	return value, nil
}

func parsePrice(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, model.ErrInvalidPrice
	}

	value, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return 0, model.ErrInvalidPrice
	}

	return value, nil
}

// formatPrice renders a stored price back into form text.
func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}

// messageFor maps a validation error to its user-facing message.
func messageFor(err error) string {
	if err == model.ErrNameRequired {
		return MsgNameRequired
	}
	return MsgInvalidPrice
}

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// Always is a Confirmer with a fixed answer.
type Always bool

// Confirm returns the fixed answer.
func (a Always) Confirm(context.Context, string) bool {
	return bool(a)
}
