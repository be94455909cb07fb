package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pratododia/cardapio-backend/internal/dishes"
	"github.com/pratododia/cardapio-backend/pkg/db/models"
	"github.com/pratododia/cardapio-backend/pkg/events"
	"github.com/shopspring/decimal"
)

type stubDishesService struct {
	dishes.Service
	active []models.Dish
}

func (s *stubDishesService) ListActive(context.Context) ([]models.Dish, error) {
	return s.active, nil
}

type stubStreamSource struct {
	events chan events.MenuEvent
}

func (s *stubStreamSource) SubscribeMenuEvents(context.Context) (<-chan events.MenuEvent, func(), error) {
	return s.events, func() {}, nil
}

func TestMenuListsActiveDishes(t *testing.T) {
	svc := &stubDishesService{active: []models.Dish{{
		ID:             uuid.New(),
		Name:           "Feijoada",
		Price:          decimal.NewFromInt(45),
		RemainingStock: 3,
		Active:         true,
	}}}
	handler := Menu(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/menu", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"Feijoada"`) {
		t.Fatalf("expected dish in body: %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"remaining_stock":3`) {
		t.Fatalf("expected stock count in body: %s", rec.Body.String())
	}
}

func TestMenuStreamForwardsEvents(t *testing.T) {
	source := &stubStreamSource{events: make(chan events.MenuEvent, 1)}
	handler := MenuStream(source, nil)

	dishID := uuid.New()
	source.events <- events.StockChanged(dishID, 2)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/menu/stream", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		handler.ServeHTTP(rec, req)
		close(done)
	}()

	// Give the handler a moment to drain the buffered event, then hang up.
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler did not stop after client disconnect")
	}

	if got := rec.Header().Get("Content-Type"); got != "text/event-stream" {
		t.Fatalf("unexpected content type %q", got)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "event: stock_changed") {
		t.Fatalf("expected stock_changed event, got: %s", body)
	}
	if !strings.Contains(body, dishID.String()) {
		t.Fatalf("expected dish id in payload, got: %s", body)
	}
}
