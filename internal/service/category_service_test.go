package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/petpaw-pos/internal/models"
	"github.com/petpaw-pos/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCategoryServiceTest(t *testing.T, name string) (*CategoryService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:category_service_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewCategoryService(repository.NewCategoryRepository(db)), db
}

func TestCategoryCreateRejectsDuplicateSlug(t *testing.T) {
	svc, _ := setupCategoryServiceTest(t, "dup_slug")

	if _, err := svc.Create(CreateCategoryInput{Slug: "pet-food", Name: "宠物主粮"}); err != nil {
		t.Fatalf("create error: %v", err)
	}
	if _, err := svc.Create(CreateCategoryInput{Slug: "pet-food", Name: "另一个主粮"}); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}
}

func TestCategoryUpdateKeepsOwnSlug(t *testing.T) {
	svc, _ := setupCategoryServiceTest(t, "update_slug")

	created, err := svc.Create(CreateCategoryInput{Slug: "pet-toys", Name: "宠物玩具", SortOrder: 5})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	// slug 不变时更新不应触发重复校验
	updated, err := svc.Update(created.ID, CreateCategoryInput{Slug: "pet-toys", Name: "玩具专区", SortOrder: 9})
	if err != nil {
		t.Fatalf("update error: %v", err)
	}
	if updated.Name != "玩具专区" || updated.SortOrder != 9 {
		t.Fatalf("unexpected updated category: %+v", updated)
	}

	other, err := svc.Create(CreateCategoryInput{Slug: "pet-snacks", Name: "宠物零食"})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if _, err := svc.Update(other.ID, CreateCategoryInput{Slug: "pet-toys", Name: "改名冲突"}); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}
}

func TestCategoryUpdateNotFound(t *testing.T) {
	svc, _ := setupCategoryServiceTest(t, "update_missing")

	if _, err := svc.Update(9999, CreateCategoryInput{Slug: "x", Name: "x"}); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCategoryDeleteBlockedByProducts(t *testing.T) {
	svc, db := setupCategoryServiceTest(t, "delete_blocked")

	created, err := svc.Create(CreateCategoryInput{Slug: "pet-health", Name: "宠物保健"})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	product := models.Product{
		CategoryID:  created.ID,
		SKU:         "HEALTH-001",
		Name:        "宠物钙片",
		PriceAmount: models.NewMoneyFromInt(45000),
		IsActive:    true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product error: %v", err)
	}

	if err := svc.Delete(created.ID); !errors.Is(err, ErrCategoryHasProduct) {
		t.Fatalf("expected ErrCategoryHasProduct, got %v", err)
	}

	if err := db.Delete(&product).Error; err != nil {
		t.Fatalf("remove product error: %v", err)
	}
	if err := svc.Delete(created.ID); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if _, err := svc.Get(created.ID); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound after delete, got %v", err)
	}
}

func TestCategoryListOrdersBySortOrder(t *testing.T) {
	svc, _ := setupCategoryServiceTest(t, "list_order")

	if _, err := svc.Create(CreateCategoryInput{Slug: "low", Name: "靠后", SortOrder: 1}); err != nil {
		t.Fatalf("create error: %v", err)
	}
	if _, err := svc.Create(CreateCategoryInput{Slug: "high", Name: "靠前", SortOrder: 10}); err != nil {
		t.Fatalf("create error: %v", err)
	}

	categories, err := svc.List()
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
	if categories[0].Slug != "high" {
		t.Fatalf("expected high sort_order first, got %s", categories[0].Slug)
	}
}
