package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/petpaw-pos/internal/constants"
	"github.com/petpaw-pos/internal/models"
	"github.com/petpaw-pos/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupSettingServiceTest(t *testing.T, name string) *SettingService {
	t.Helper()

	dsn := fmt.Sprintf("file:setting_service_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Setting{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewSettingService(repository.NewSettingRepository(db))
}

func TestSettingGetAllMergesDefaults(t *testing.T) {
	svc := setupSettingServiceTest(t, "defaults")

	data, err := svc.GetAll()
	if err != nil {
		t.Fatalf("get all error: %v", err)
	}
	if data[constants.SettingKeyShopName] != "PetPaw Pet Shop" {
		t.Fatalf("expected default shop name, got %v", data[constants.SettingKeyShopName])
	}
	if data[constants.SettingKeyCurrency] != "IDR" {
		t.Fatalf("expected default currency, got %v", data[constants.SettingKeyCurrency])
	}

	if _, err := svc.Update(constants.SettingKeyShopName, "Paws & Claws"); err != nil {
		t.Fatalf("update error: %v", err)
	}
	data, err = svc.GetAll()
	if err != nil {
		t.Fatalf("get all error: %v", err)
	}
	if data[constants.SettingKeyShopName] != "Paws & Claws" {
		t.Fatalf("expected stored shop name, got %v", data[constants.SettingKeyShopName])
	}
}

func TestSettingUpdateRejectsUnknownKey(t *testing.T) {
	svc := setupSettingServiceTest(t, "unknown")

	_, err := svc.Update("made_up_key", "x")
	if !errors.Is(err, ErrSettingKeyUnknown) {
		t.Fatalf("expected unknown key error, got: %v", err)
	}
	_, err = svc.Get("made_up_key")
	if !errors.Is(err, ErrSettingKeyUnknown) {
		t.Fatalf("expected unknown key on get, got: %v", err)
	}
}

func TestSettingUpdateNormalizesValues(t *testing.T) {
	svc := setupSettingServiceTest(t, "normalize")

	value, err := svc.Update(constants.SettingKeyCurrency, " idr ")
	if err != nil {
		t.Fatalf("update currency error: %v", err)
	}
	if value != "IDR" {
		t.Fatalf("expected uppercased currency, got %v", value)
	}

	if _, err := svc.Update(constants.SettingKeyLowStockThreshold, "-3"); !errors.Is(err, ErrSettingValueInvalid) {
		t.Fatalf("expected invalid threshold, got: %v", err)
	}
	if _, err := svc.Update(constants.SettingKeyLowStockThreshold, 15); err != nil {
		t.Fatalf("update threshold error: %v", err)
	}

	threshold, err := svc.GetLowStockThreshold(10)
	if err != nil {
		t.Fatalf("get threshold error: %v", err)
	}
	if threshold != 15 {
		t.Fatalf("expected threshold 15, got %d", threshold)
	}
}

func TestSettingGetLowStockThresholdDefault(t *testing.T) {
	svc := setupSettingServiceTest(t, "fallback")

	threshold, err := svc.GetLowStockThreshold(7)
	if err != nil {
		t.Fatalf("get threshold error: %v", err)
	}
	if threshold != 10 {
		t.Fatalf("expected built-in default 10, got %d", threshold)
	}
}
