package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/safebite/backend/internal/middleware"
	"github.com/safebite/backend/internal/models"
	"github.com/safebite/backend/internal/service"
	"github.com/safebite/backend/internal/testdb"
)

// memoryCartStore keeps carts in a map for handler tests.
type memoryCartStore struct {
	carts map[uuid.UUID][]models.CartLine
}

func (s *memoryCartStore) Get(_ context.Context, userID uuid.UUID) ([]models.CartLine, error) {
	return s.carts[userID], nil
}

func (s *memoryCartStore) Save(_ context.Context, userID uuid.UUID, lines []models.CartLine) error {
	s.carts[userID] = lines
	return nil
}

func (s *memoryCartStore) Clear(_ context.Context, userID uuid.UUID) error {
	delete(s.carts, userID)
	return nil
}

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
	auth   *service.AuthService
	orders *service.OrderService
}

// newTestEnv wires the full handler stack against an in-memory database and
// cart store, with the classifier and photo upload integrations disabled.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testdb.Open(t)
	auth := service.NewAuthService(db, "test-secret")
	profiles := service.NewProfileService(db)
	menus := service.NewMenuService(db)
	carts := service.NewCartService(&memoryCartStore{carts: make(map[uuid.UUID][]models.CartLine)})
	orders := service.NewOrderService(db, carts, nil)

	authHandler := NewAuthHandler(auth)
	profileHandler := NewProfileHandler(profiles)
	menuHandler := NewMenuHandler(menus, profiles)
	cartHandler := NewCartHandler(carts, menus)
	orderHandler := NewOrderHandler(orders, nil)
	itemHandler := NewItemHandler(menus, nil, nil)
	adminHandler := NewAdminHandler(auth)

	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(auth))
	{
		customer := protected.Group("")
		customer.Use(middleware.RequireRole(models.RoleCustomer))
		{
			customer.GET("/profile/dietary", profileHandler.GetDietary)
			customer.PUT("/profile/dietary", profileHandler.PutDietary)

			customer.GET("/restaurants", menuHandler.ListRestaurants)
			customer.GET("/restaurants/:id/menu", menuHandler.GetMenu)

			customer.GET("/cart", cartHandler.Get)
			customer.POST("/cart/items", cartHandler.AddItem)
			customer.POST("/cart/items/:id/decrease", cartHandler.DecreaseItem)
			customer.DELETE("/cart", cartHandler.Clear)

			customer.POST("/orders", orderHandler.Place)
			customer.GET("/orders", orderHandler.ListMine)
			customer.GET("/orders/active", orderHandler.Active)
		}

		dashboard := protected.Group("/restaurant")
		dashboard.Use(middleware.RequireRole(models.RoleRestaurant))
		{
			dashboard.GET("/orders", orderHandler.ListForRestaurant)
			dashboard.POST("/orders/:id/accept", orderHandler.Accept)
			dashboard.POST("/orders/:id/complete", orderHandler.Complete)
			dashboard.GET("/items", itemHandler.List)
			dashboard.POST("/items", itemHandler.Create)
			dashboard.POST("/items/classify", itemHandler.Classify)
		}

		admin := protected.Group("/admin")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		admin.POST("/restaurants", adminHandler.CreateRestaurant)
	}

	return &testEnv{db: db, router: r, auth: auth, orders: orders}
}

// tokenFor creates a fresh user with the given role and returns it with a
// valid bearer token.
func (e *testEnv) tokenFor(t *testing.T, role string) (*models.User, string) {
	t.Helper()
	user := testdb.CreateUser(t, e.db, role)

	token, _, err := e.auth.Login(context.Background(), user.Email, "testpassword123")
	require.NoError(t, err)
	return user, token
}

// do performs a JSON request against the handler stack.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// doJSON performs a JSON request against an arbitrary engine; used by tests
// that wire their own handler variants.
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewBuffer(data))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
