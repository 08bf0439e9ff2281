package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ProductID is a backend-assigned product identifier.
// Backends emit it either as a JSON string or a JSON number; both decode to the same value.
type ProductID string

// UnmarshalJSON accepts both `"3"` and `3`.
func (id *ProductID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid product id: %w", err)
		}
		*id = ProductID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid product id: %w", err)
	}
	*id = ProductID(n.String())
	return nil
}

// String returns the id as text.
func (id ProductID) String() string {
	return string(id)
}

// ProductIDFromInt converts a numeric id into a ProductID.
func ProductIDFromInt(n int64) ProductID {
	return ProductID(strconv.FormatInt(n, 10))
}

// Text is a free-form display value. Backends are loose about these fields, so
// a JSON string, number or boolean all decode to their text form and null to "".
type Text string

// UnmarshalJSON accepts `"4.5 (100)"`, `4.5`, `true` and `null`.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*t = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		*t = Text(data)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid display value %s: %w", data, err)
	}
	*t = Text(n.String())
	return nil
}

// String returns the value as text.
func (t Text) String() string {
	return string(t)
}

// Product represents one purchasable course in the catalogue.
type Product struct {
	ID    ProductID `json:"id" db:"id"`
	Name  string    `json:"name" db:"name"`
	Price float64   `json:"price" db:"price"`
	Image string    `json:"image,omitempty" db:"image"`

	// Display-only fields used by the catalogue page.
	Desc       Text `json:"desc,omitempty" db:"description"`
	Instructor Text `json:"instructor,omitempty" db:"instructor"`
	Role       Text `json:"role,omitempty" db:"role"`
	Rating     Text `json:"rating,omitempty" db:"rating"`
	Avatar     Text `json:"avatar,omitempty" db:"avatar"`

	CreatedAt *time.Time `json:"createdAt,omitempty" db:"created_at"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" db:"updated_at"`
}

// Draft is the payload submitted to create a product, before the backend assigns an id.
type Draft struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`

	Desc       Text `json:"desc,omitempty"`
	Instructor Text `json:"instructor,omitempty"`
	Role       Text `json:"role,omitempty"`
	Rating     Text `json:"rating,omitempty"`
	Avatar     Text `json:"avatar,omitempty"`
}

// Patch replaces the editable fields of an existing product. The image is never resent.
type Patch struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Validate checks the name and price invariants.
func (d Draft) Validate() error {
	return validateFields(d.Name, d.Price)
}

// Validate checks the name and price invariants.
func (p Patch) Validate() error {
	return validateFields(p.Name, p.Price)
}

func validateFields(name string, price float64) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	if !(price > 0) {
		return ErrInvalidPrice
	}
	return nil
}
