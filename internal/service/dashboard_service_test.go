package service

import (
	"errors"
	"testing"
	"time"

	"github.com/petpaw-pos/internal/constants"
)

func TestResolveDashboardWindowToday(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, time.Local)
	window, err := resolveDashboardWindow(DashboardQueryInput{Range: constants.DashboardWindowToday}, now)
	if err != nil {
		t.Fatalf("resolve window error: %v", err)
	}
	expectedStart := time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)
	if !window.startAt.Equal(expectedStart) {
		t.Fatalf("expected start %v, got %v", expectedStart, window.startAt)
	}
	if !window.endAt.Equal(expectedStart.AddDate(0, 0, 1)) {
		t.Fatalf("expected end next midnight, got %v", window.endAt)
	}
}

func TestResolveDashboardWindowDefaultsToSevenDays(t *testing.T) {
	now := time.Date(2024, 3, 15, 8, 0, 0, 0, time.Local)
	window, err := resolveDashboardWindow(DashboardQueryInput{}, now)
	if err != nil {
		t.Fatalf("resolve window error: %v", err)
	}
	if window.rangeKey != constants.DashboardWindow7Days {
		t.Fatalf("expected 7d default, got %s", window.rangeKey)
	}
	if days := window.endAt.Sub(window.startAt).Hours() / 24; days != 7 {
		t.Fatalf("expected 7 day span, got %.1f", days)
	}
}

func TestResolveDashboardWindowCustom(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(2024, 3, 10, 23, 59, 59, 0, time.Local)
	window, err := resolveDashboardWindow(DashboardQueryInput{
		Range: constants.DashboardWindowCustom,
		From:  &from,
		To:    &to,
	}, time.Now())
	if err != nil {
		t.Fatalf("resolve window error: %v", err)
	}
	if !window.startAt.Equal(from) {
		t.Fatalf("expected start %v, got %v", from, window.startAt)
	}
	if !window.endAt.After(to) {
		t.Fatalf("expected end to cover %v, got %v", to, window.endAt)
	}
}

func TestResolveDashboardWindowRejectsInvalid(t *testing.T) {
	if _, err := resolveDashboardWindow(DashboardQueryInput{Range: "90d"}, time.Now()); !errors.Is(err, ErrDashboardRangeInvalid) {
		t.Fatalf("expected invalid range, got: %v", err)
	}

	if _, err := resolveDashboardWindow(DashboardQueryInput{Range: constants.DashboardWindowCustom}, time.Now()); !errors.Is(err, ErrDashboardRangeInvalid) {
		t.Fatalf("expected invalid custom range without bounds, got: %v", err)
	}

	from := time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local)
	to := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	if _, err := resolveDashboardWindow(DashboardQueryInput{Range: constants.DashboardWindowCustom, From: &from, To: &to}, time.Now()); !errors.Is(err, ErrDashboardRangeInvalid) {
		t.Fatalf("expected invalid inverted custom range, got: %v", err)
	}

	wide := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)
	if _, err := resolveDashboardWindow(DashboardQueryInput{Range: constants.DashboardWindowCustom, From: &from, To: &wide}, time.Now()); !errors.Is(err, ErrDashboardRangeInvalid) {
		t.Fatalf("expected invalid oversized custom range, got: %v", err)
	}
}
