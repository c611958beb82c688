package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"storefront-service/internal/models"
)

// MockCartRepository is a mock implementation of CartRepositoryInterface
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) ListCartItems(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CartItem), args.Error(1)
}

func (m *MockCartRepository) FindCartItem(ctx context.Context, userID, productID uuid.UUID, size string) (*models.CartItem, error) {
	args := m.Called(ctx, userID, productID, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartItem), args.Error(1)
}

func (m *MockCartRepository) GetCartItemByID(ctx context.Context, itemID uuid.UUID) (*models.CartItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartItem), args.Error(1)
}

func (m *MockCartRepository) CreateCartItem(ctx context.Context, item *models.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCartRepository) SaveCartItem(ctx context.Context, item *models.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteCartItem(ctx context.Context, itemID uuid.UUID) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func setupCartRouter(repo *MockCartRepository, user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewCartHandler(repo)
	router := gin.New()
	cart := router.Group("/api/cart", injectUser(user))
	cart.GET("", handler.GetCartItems)
	cart.POST("", handler.AddToCart)
	cart.PUT("/:id", handler.UpdateCartItem)
	cart.DELETE("/:id", handler.RemoveCartItem)
	return router
}

func TestAddToCartCreatesNewLine(t *testing.T) {
	user := &models.User{ID: uuid.New()}
	productID := uuid.New()

	repo := new(MockCartRepository)
	repo.On("FindCartItem", mock.Anything, user.ID, productID, "M").Return(nil, gorm.ErrRecordNotFound)
	repo.On("CreateCartItem", mock.Anything, mock.MatchedBy(func(item *models.CartItem) bool {
		return item.UserID == user.ID && item.ProductID == productID && item.Quantity == 2 && item.Size == "M"
	})).Return(nil)

	router := setupCartRouter(repo, user)
	body, _ := json.Marshal(models.AddCartItemRequest{ProductID: productID, Quantity: 2, Size: "M"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/cart", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	repo.AssertExpectations(t)
}

func TestAddToCartMergesExistingLine(t *testing.T) {
	user := &models.User{ID: uuid.New()}
	productID := uuid.New()
	existing := &models.CartItem{ID: uuid.New(), UserID: user.ID, ProductID: productID, Quantity: 1, Size: "M"}

	repo := new(MockCartRepository)
	repo.On("FindCartItem", mock.Anything, user.ID, productID, "M").Return(existing, nil)
	repo.On("SaveCartItem", mock.Anything, mock.MatchedBy(func(item *models.CartItem) bool {
		return item.ID == existing.ID && item.Quantity == 3
	})).Return(nil)

	router := setupCartRouter(repo, user)
	body, _ := json.Marshal(models.AddCartItemRequest{ProductID: productID, Quantity: 2, Size: "M"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/cart", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertNotCalled(t, "CreateCartItem")
}

func TestUpdateCartItemQuantity(t *testing.T) {
	user := &models.User{ID: uuid.New()}
	item := &models.CartItem{ID: uuid.New(), UserID: user.ID, Quantity: 1}

	repo := new(MockCartRepository)
	repo.On("GetCartItemByID", mock.Anything, item.ID).Return(item, nil)
	repo.On("SaveCartItem", mock.Anything, mock.MatchedBy(func(i *models.CartItem) bool {
		return i.Quantity == 5
	})).Return(nil)

	router := setupCartRouter(repo, user)
	body, _ := json.Marshal(models.UpdateCartItemRequest{Quantity: 5})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/api/cart/"+item.ID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateCartItemNotOwner(t *testing.T) {
	user := &models.User{ID: uuid.New()}
	item := &models.CartItem{ID: uuid.New(), UserID: uuid.New(), Quantity: 1}

	repo := new(MockCartRepository)
	repo.On("GetCartItemByID", mock.Anything, item.ID).Return(item, nil)

	router := setupCartRouter(repo, user)
	body, _ := json.Marshal(models.UpdateCartItemRequest{Quantity: 5})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/api/cart/"+item.ID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	repo.AssertNotCalled(t, "SaveCartItem")
}

func TestRemoveCartItem(t *testing.T) {
	user := &models.User{ID: uuid.New()}
	item := &models.CartItem{ID: uuid.New(), UserID: user.ID}

	repo := new(MockCartRepository)
	repo.On("GetCartItemByID", mock.Anything, item.ID).Return(item, nil)
	repo.On("DeleteCartItem", mock.Anything, item.ID).Return(nil)

	router := setupCartRouter(repo, user)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/api/cart/"+item.ID.String(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}

func TestRemoveCartItemNotFound(t *testing.T) {
	user := &models.User{ID: uuid.New()}
	missing := uuid.New()

	repo := new(MockCartRepository)
	repo.On("GetCartItemByID", mock.Anything, missing).Return(nil, gorm.ErrRecordNotFound)

	router := setupCartRouter(repo, user)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/api/cart/"+missing.String(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCartItemsEmpty(t *testing.T) {
	user := &models.User{ID: uuid.New()}

	repo := new(MockCartRepository)
	repo.On("ListCartItems", mock.Anything, user.ID).Return([]models.CartItem(nil), nil)

	router := setupCartRouter(repo, user)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/cart", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}
