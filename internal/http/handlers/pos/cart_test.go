package pos

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/petpaw-pos/internal/constants"
	"github.com/petpaw-pos/internal/http/response"
	"github.com/petpaw-pos/internal/models"
	"github.com/petpaw-pos/internal/provider"
	"github.com/petpaw-pos/internal/repository"
	"github.com/petpaw-pos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCartHandlerTest(t *testing.T, name string) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:cart_handler_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.CartItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	productRepo := repository.NewProductRepository(db)
	container := &provider.Container{
		CartService: service.NewCartService(
			repository.NewCartRepository(db),
			productRepo,
			service.NewProductService(productRepo, nil, 10),
		),
	}
	handler := New(container)

	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyCashierID, uint(1))
	})
	engine.POST("/cart/items", handler.AddCartItem)
	engine.PUT("/cart/items", handler.UpsertCartItem)
	return db, engine
}

func createCartHandlerProduct(t *testing.T, db *gorm.DB, sku string, stock int) *models.Product {
	t.Helper()
	product := models.Product{
		SKU:           sku,
		Name:          "Product " + sku,
		PriceAmount:   models.NewMoneyFromInt(10000),
		StockQuantity: stock,
		IsActive:      true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return &product
}

func doCartRequest(t *testing.T, engine *gin.Engine, method, body string) *response.Response {
	t.Helper()
	req := httptest.NewRequest(method, "/cart/items", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected http 200, got %d", recorder.Code)
	}
	var resp response.Response
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	return &resp
}

func countCartHandlerItems(t *testing.T, db *gorm.DB, cashierID uint) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.CartItem{}).Where("cashier_id = ?", cashierID).Count(&count).Error; err != nil {
		t.Fatalf("count cart items failed: %v", err)
	}
	return count
}

func TestUpsertCartItemZeroQuantityRemovesLine(t *testing.T) {
	db, engine := setupCartHandlerTest(t, "zero")
	product := createCartHandlerProduct(t, db, "FOOD-Z01", 5)

	resp := doCartRequest(t, engine, http.MethodPost,
		fmt.Sprintf(`{"product_id":%d,"quantity":2}`, product.ID))
	if resp.StatusCode != response.CodeOK {
		t.Fatalf("add: expected status_code %d, got %d (%s)", response.CodeOK, resp.StatusCode, resp.Msg)
	}
	if count := countCartHandlerItems(t, db, 1); count != 1 {
		t.Fatalf("expected 1 cart item after add, got %d", count)
	}

	resp = doCartRequest(t, engine, http.MethodPut,
		fmt.Sprintf(`{"product_id":%d,"quantity":0}`, product.ID))
	if resp.StatusCode != response.CodeOK {
		t.Fatalf("zero quantity: expected status_code %d, got %d (%s)", response.CodeOK, resp.StatusCode, resp.Msg)
	}
	if count := countCartHandlerItems(t, db, 1); count != 0 {
		t.Fatalf("expected empty cart after zero-quantity update, got %d items", count)
	}
}

func TestCartItemRequestRejectsMissingQuantity(t *testing.T) {
	db, engine := setupCartHandlerTest(t, "missing")
	product := createCartHandlerProduct(t, db, "FOOD-M01", 5)

	resp := doCartRequest(t, engine, http.MethodPut,
		fmt.Sprintf(`{"product_id":%d}`, product.ID))
	if resp.StatusCode != response.CodeBadRequest {
		t.Fatalf("expected status_code %d for missing quantity, got %d", response.CodeBadRequest, resp.StatusCode)
	}
}
