// Package admin holds the product management controller behind the admin page.
//
// The controller owns the product list, the form fields, the form mode and the
// page status. Every network call goes through a ProductClient; the lock is
// never held across a call, so actions may overlap. Loading is derived from a
// count of in-flight operations, and list results are correlated with the
// mutations that settled while they were outstanding.
package admin

import (
	"context"
	"errors"
	"sync"

	"course-market/internal/metrics"
	"course-market/internal/model"

	"github.com/rs/zerolog"
)

// ProductClient is the subset of the products API the controller needs.
type ProductClient interface {
	List(ctx context.Context) ([]model.Product, error)
	Create(ctx context.Context, draft model.Draft) (*model.Product, error)
	Update(ctx context.Context, id model.ProductID, patch model.Patch) (*model.Product, error)
	Delete(ctx context.Context, id model.ProductID) ([]byte, error)
}

// Action names used for logging and metrics.
const (
	ActionLoad   = "load"
	ActionSubmit = "submit"
	ActionDelete = "delete"
)

type mutationKind int

const (
	mutationUpsert mutationKind = iota
	mutationReplace
	mutationRemove
)

// mutation is a settled change to the list, kept while a load is outstanding
// so the load's result can be brought up to date before it is applied.
type mutation struct {
	at      uint64
	kind    mutationKind
	product model.Product
	id      model.ProductID
}

// Controller is the admin page state machine. The zero value is not usable; use NewController.
type Controller struct {
	client  ProductClient
	seed    SeedFunc
	logger  zerolog.Logger
	metrics *metrics.Metrics

	mu       sync.Mutex
	products []model.Product
	name     string
	price    string
	mode     Mode
	result   Status
	inFlight int

	clock        uint64 // bumped on every settled mutation
	latestLoad   uint64 // token of the most recently issued load
	loadSeq      uint64
	loadsPending int
	journal      []mutation
}

// Option configures a Controller.
type Option func(*Controller)

// WithSeedFunc overrides how placeholder image seeds are generated.
func WithSeedFunc(seed SeedFunc) Option {
	return func(c *Controller) {
		c.seed = seed
	}
}

// WithMetrics records action outcomes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// NewController creates a controller in create mode with an empty list.
func NewController(client ProductClient, logger zerolog.Logger, opts ...Option) *Controller {
	c := &Controller{
		client: client,
		seed:   NewSeed,
		logger: logger.With().Str("component", "admin-controller").Logger(),
		mode:   CreateMode(),
		result: idle(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	products := make([]model.Product, len(c.products))
	copy(products, c.products)

	status := c.result
	if c.inFlight > 0 {
		status = loading()
	}

	return Snapshot{
		Products: products,
		Name:     c.name,
		Price:    c.price,
		Mode:     c.mode,
		Status:   status,
		Result:   c.result,
		InFlight: c.inFlight,
	}
}

// SetForm replaces the raw form fields.
func (c *Controller) SetForm(name, price string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.name = name
	c.price = price
}

// Load fetches the product list. It runs on page mount and may be re-run at any time.
// A failure leaves the list untouched and is reported through the status.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	c.inFlight++
	c.loadsPending++
	c.loadSeq++
	token := c.loadSeq
	c.latestLoad = token
	issuedAt := c.clock
	c.mu.Unlock()

	products, err := c.client.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.settleLoad()

	if err != nil {
		c.logger.Error().Err(err).Uint64("token", token).Msg("failed to load products")
		if token == c.latestLoad {
			c.result = failed(MsgLoadFailed)
		}
		c.metrics.ObserveAdminAction(ActionLoad, metrics.OutcomeFailure)
		return err
	}

	if token != c.latestLoad {
		c.logger.Debug().
			Uint64("token", token).
			Uint64("latest", c.latestLoad).
			Msg("discarding superseded product list")
		c.metrics.ObserveAdminAction(ActionLoad, metrics.OutcomeStale)
		return nil
	}

	list := make([]model.Product, len(products))
	copy(list, products)
	for _, m := range c.journal {
		if m.at > issuedAt {
			list = m.apply(list)
		}
	}
	c.products = list

	if c.result == failed(MsgLoadFailed) {
		c.result = idle()
	}

	c.logger.Debug().Int("count", len(list)).Msg("products loaded")
	c.metrics.ObserveAdminAction(ActionLoad, metrics.OutcomeSuccess)

	return nil
}

// settleLoad must be called with the lock held.
func (c *Controller) settleLoad() {
	c.inFlight--
	c.loadsPending--
	if c.loadsPending == 0 {
		c.journal = nil
	}
}

// Submit validates the form and creates or updates a product depending on the mode.
// Validation failures return a *model.DomainError without any network call.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	c.result = idle()

	price, err := ValidateForm(c.name, c.price)
	if err != nil {
		c.result = failed(messageFor(err))
		c.mu.Unlock()
		c.logger.Debug().Err(err).Msg("form rejected")
		c.metrics.ObserveAdminAction(ActionSubmit, metrics.OutcomeRejected)
		return err
	}

	name, priceText, mode := c.name, c.price, c.mode
	c.inFlight++
	c.mu.Unlock()

	var saved *model.Product
	targetID, editing := mode.Editing()
	if editing {
		saved, err = c.client.Update(ctx, targetID, model.Patch{Name: name, Price: price})
	} else {
		saved, err = c.client.Create(ctx, model.Draft{Name: name, Price: price, Image: PlaceholderImage(c.seed())})
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight--

	if err != nil {
		c.result = failed(MsgSaveFailed)
		c.logger.Error().
			Err(err).
			Str("mode", mode.Kind.String()).
			Str("product_id", targetID.String()).
			Msg("failed to save product")
		c.metrics.ObserveAdminAction(ActionSubmit, metrics.OutcomeFailure)
		return err
	}

	if editing {
		c.record(mutation{kind: mutationReplace, id: targetID, product: *saved})
		c.result = succeeded(MsgUpdated)
	} else {
		c.record(mutation{kind: mutationUpsert, id: saved.ID, product: *saved})
		c.result = succeeded(MsgCreated)
	}

	// Only reset the form if the user has not moved on to something else meanwhile.
	if c.mode == mode && c.name == name && c.price == priceText {
		c.mode = CreateMode()
		c.name = ""
		c.price = ""
	}

	c.logger.Info().
		Str("mode", mode.Kind.String()).
		Str("product_id", saved.ID.String()).
		Msg("product saved")
	c.metrics.ObserveAdminAction(ActionSubmit, metrics.OutcomeSuccess)

	return nil
}

// Edit switches the form to editing the product with the given id. No network call is made.
func (c *Controller) Edit(id model.ProductID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := indexOf(c.products, id)
	if idx < 0 {
		return model.ErrProductNotFound
	}

	p := c.products[idx]
	c.mode = EditingMode(p.ID)
	c.name = p.Name
	c.price = formatPrice(p.Price)

	return nil
}

// Cancel leaves editing mode and clears the form. No network call is made.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mode = CreateMode()
	c.name = ""
	c.price = ""
}

// Delete asks for confirmation and deletes the product. Without confirmation
// nothing changes and false is returned.
func (c *Controller) Delete(ctx context.Context, id model.ProductID, confirmer Confirmer) (bool, error) {
	if confirmer == nil || !confirmer.Confirm(ctx, DeletePrompt) {
		c.logger.Debug().Str("product_id", id.String()).Msg("delete not confirmed")
		c.metrics.ObserveAdminAction(ActionDelete, metrics.OutcomeDeclined)
		return false, nil
	}

	c.mu.Lock()
	if c.result.Kind == StatusSuccess {
		c.result = idle()
	}
	c.inFlight++
	c.mu.Unlock()

	_, err := c.client.Delete(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight--

	if err != nil {
		c.result = failed(MsgDeleteFailed)
		c.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to delete product")
		c.metrics.ObserveAdminAction(ActionDelete, metrics.OutcomeFailure)
		return false, err
	}

	c.record(mutation{kind: mutationRemove, id: id})
	c.result = succeeded(MsgDeleted)

	if target, editing := c.mode.Editing(); editing && target == id {
		c.mode = CreateMode()
		c.name = ""
		c.price = ""
	}

	c.logger.Info().Str("product_id", id.String()).Msg("product deleted")
	c.metrics.ObserveAdminAction(ActionDelete, metrics.OutcomeSuccess)

	return true, nil
}

// record applies a settled mutation to the list and journals it for outstanding loads.
// Must be called with the lock held.
func (c *Controller) record(m mutation) {
	c.clock++
	m.at = c.clock
	c.products = m.apply(c.products)
	if c.loadsPending > 0 {
		c.journal = append(c.journal, m)
	}
}

func (m mutation) apply(list []model.Product) []model.Product {
	idx := indexOf(list, m.id)

	switch m.kind {
	case mutationUpsert:
		if idx >= 0 {
			list[idx] = m.product
			return list
		}
		return append(list, m.product)
	case mutationReplace:
		if idx >= 0 {
			list[idx] = m.product
		}
		return list
	case mutationRemove:
		if idx < 0 {
			return list
		}
		out := make([]model.Product, 0, len(list)-1)
		out = append(out, list[:idx]...)
		return append(out, list[idx+1:]...)
	}

	return list
}

func indexOf(list []model.Product, id model.ProductID) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

// IsValidation reports whether err is a form validation failure.
func IsValidation(err error) bool {
	var derr *model.DomainError
	if !errors.As(err, &derr) {
		return false
	}
	return derr == model.ErrNameRequired || derr == model.ErrInvalidPrice
}
