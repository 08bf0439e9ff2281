package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"course-market/internal/admin"
	"course-market/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductClient is a mock implementation of admin.ProductClient.
type MockProductClient struct {
	mock.Mock
}

func (m *MockProductClient) List(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductClient) Create(ctx context.Context, draft model.Draft) (*model.Product, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductClient) Update(ctx context.Context, id model.ProductID, patch model.Patch) (*model.Product, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductClient) Delete(ctx context.Context, id model.ProductID) ([]byte, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// snapshotBody mirrors the JSON shape of admin.Snapshot.
type snapshotBody struct {
	Products []model.Product `json:"products"`
	Name     string          `json:"name"`
	Price    string          `json:"price"`
	Mode     struct {
		Kind     string `json:"kind"`
		TargetID string `json:"targetId"`
	} `json:"mode"`
	Status struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"status"`
}

func adminRoutes(h *AdminHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/admin/state", h.State)
	r.Post("/api/admin/load", h.Load)
	r.Put("/api/admin/form", h.SetForm)
	r.Post("/api/admin/submit", h.Submit)
	r.Post("/api/admin/edit/{id}", h.Edit)
	r.Post("/api/admin/cancel", h.Cancel)
	r.Delete("/api/admin/products/{id}", h.Delete)
	return r
}

func doAdmin(t *testing.T, routes http.Handler, method, path, body string, header map[string]string) (int, snapshotBody) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()

	routes.ServeHTTP(w, req)

	var snap snapshotBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	return w.Code, snap
}

func newAdminFixture(products []model.Product) (*MockProductClient, http.Handler) {
	client := new(MockProductClient)
	client.On("List", mock.Anything).Return(products, nil).Maybe()

	controller := admin.NewController(client, zerolog.Nop(), admin.WithSeedFunc(func() string { return "s" }))
	return client, adminRoutes(NewAdminHandler(controller, zerolog.Nop()))
}

func TestAdminHandler_LoadAndState(t *testing.T) {
	_, routes := newAdminFixture([]model.Product{{ID: "1", Name: "Go", Price: 10}})

	status, snap := doAdmin(t, routes, http.MethodGet, "/api/admin/state", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, snap.Products)
	assert.Equal(t, "create", snap.Mode.Kind)

	status, snap = doAdmin(t, routes, http.MethodPost, "/api/admin/load", "", nil)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, snap.Products, 1)
	assert.Equal(t, "idle", snap.Status.Kind)
}

func TestAdminHandler_LoadFailure(t *testing.T) {
	client := new(MockProductClient)
	client.On("List", mock.Anything).Return(nil, &model.TransportError{Op: "list products", StatusCode: 500})
	routes := adminRoutes(NewAdminHandler(admin.NewController(client, zerolog.Nop()), zerolog.Nop()))

	status, snap := doAdmin(t, routes, http.MethodPost, "/api/admin/load", "", nil)

	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "error", snap.Status.Kind)
	assert.Equal(t, admin.MsgLoadFailed, snap.Status.Message)
}

func TestAdminHandler_Submit(t *testing.T) {
	tests := []struct {
		name           string
		form           string
		expectCreate   bool
		expectedStatus int
		expectedKind   string
		expectedMsg    string
	}{
		{
			name:           "Creates product",
			form:           `{"name":"Go","price":"150000"}`,
			expectCreate:   true,
			expectedStatus: http.StatusOK,
			expectedKind:   "success",
			expectedMsg:    admin.MsgCreated,
		},
		{
			name:           "Blank name",
			form:           `{"name":"  ","price":"150000"}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedKind:   "error",
			expectedMsg:    admin.MsgNameRequired,
		},
		{
			name:           "Non numeric price",
			form:           `{"name":"Go","price":"abc"}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedKind:   "error",
			expectedMsg:    admin.MsgInvalidPrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, routes := newAdminFixture(nil)
			if tt.expectCreate {
				client.On("Create", mock.Anything, model.Draft{
					Name:  "Go",
					Price: 150000,
					Image: admin.PlaceholderImage("s"),
				}).Return(&model.Product{ID: "9", Name: "Go", Price: 150000}, nil)
			}

			status, _ := doAdmin(t, routes, http.MethodPut, "/api/admin/form", tt.form, nil)
			require.Equal(t, http.StatusOK, status)

			status, snap := doAdmin(t, routes, http.MethodPost, "/api/admin/submit", "", nil)

			assert.Equal(t, tt.expectedStatus, status)
			assert.Equal(t, tt.expectedKind, snap.Status.Kind)
			assert.Equal(t, tt.expectedMsg, snap.Status.Message)
			if tt.expectCreate {
				require.Len(t, snap.Products, 1)
				assert.Empty(t, snap.Name)
			}
			client.AssertExpectations(t)
		})
	}
}

func TestAdminHandler_SetFormInvalidJSON(t *testing.T) {
	_, routes := newAdminFixture(nil)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/form", strings.NewReader("{"))
	w := httptest.NewRecorder()
	routes.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminHandler_EditAndCancel(t *testing.T) {
	_, routes := newAdminFixture([]model.Product{{ID: "3", Name: "A", Price: 100}})
	doAdmin(t, routes, http.MethodPost, "/api/admin/load", "", nil)

	status, snap := doAdmin(t, routes, http.MethodPost, "/api/admin/edit/3", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "editing", snap.Mode.Kind)
	assert.Equal(t, "3", snap.Mode.TargetID)
	assert.Equal(t, "A", snap.Name)
	assert.Equal(t, "100", snap.Price)

	status, _ = doAdmin(t, routes, http.MethodPost, "/api/admin/edit/404", "", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, snap = doAdmin(t, routes, http.MethodPost, "/api/admin/cancel", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "create", snap.Mode.Kind)
	assert.Empty(t, snap.Name)
	assert.Empty(t, snap.Price)
}

func TestAdminHandler_Delete(t *testing.T) {
	tests := []struct {
		name           string
		header         map[string]string
		deleteErr      error
		expectCall     bool
		expectedStatus int
		expectedCount  int
		expectedKind   string
	}{
		{
			name:           "Without confirmation nothing changes",
			expectedStatus: http.StatusOK,
			expectedCount:  2,
			expectedKind:   "idle",
		},
		{
			name:           "Declined confirmation",
			header:         map[string]string{ConfirmHeader: "false"},
			expectedStatus: http.StatusOK,
			expectedCount:  2,
			expectedKind:   "idle",
		},
		{
			name:           "Confirmed",
			header:         map[string]string{ConfirmHeader: "true"},
			expectCall:     true,
			expectedStatus: http.StatusOK,
			expectedCount:  1,
			expectedKind:   "success",
		},
		{
			name:           "Backend failure",
			header:         map[string]string{ConfirmHeader: "true"},
			deleteErr:      &model.TransportError{Op: "delete product", StatusCode: 500},
			expectCall:     true,
			expectedStatus: http.StatusBadGateway,
			expectedCount:  2,
			expectedKind:   "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, routes := newAdminFixture([]model.Product{
				{ID: "1", Name: "A", Price: 1},
				{ID: "2", Name: "B", Price: 2},
			})
			doAdmin(t, routes, http.MethodPost, "/api/admin/load", "", nil)

			if tt.expectCall {
				var body []byte
				if tt.deleteErr == nil {
					body = []byte{}
				}
				client.On("Delete", mock.Anything, model.ProductID("1")).Return(body, tt.deleteErr)
			}

			status, snap := doAdmin(t, routes, http.MethodDelete, "/api/admin/products/1", "", tt.header)

			assert.Equal(t, tt.expectedStatus, status)
			assert.Len(t, snap.Products, tt.expectedCount)
			assert.Equal(t, tt.expectedKind, snap.Status.Kind)
			if !tt.expectCall {
				client.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			}
			client.AssertExpectations(t)
		})
	}
}
