package dishes

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pratododia/cardapio-backend/pkg/db/models"
	pkgerrors "github.com/pratododia/cardapio-backend/pkg/errors"
	"github.com/pratododia/cardapio-backend/pkg/events"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const dishesSchema = `
CREATE TABLE IF NOT EXISTS dishes (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  price NUMERIC NOT NULL DEFAULT 0,
  initial_stock INTEGER NOT NULL DEFAULT 0,
  remaining_stock INTEGER NOT NULL DEFAULT 0,
  active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`

type capturingPublisher struct {
	events []events.MenuEvent
}

func (p *capturingPublisher) PublishMenuEvent(_ context.Context, event events.MenuEvent) error {
	p.events = append(p.events, event)
	return nil
}

func setupDishService(t *testing.T) (Service, *gorm.DB, *capturingPublisher) {
	t.Helper()

	dsn := fmt.Sprintf("file:dishes_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Exec(dishesSchema).Error)

	publisher := &capturingPublisher{}
	svc, err := NewService(NewRepository(db), publisher, nil)
	require.NoError(t, err)
	return svc, db, publisher
}

func seedDish(t *testing.T, db *gorm.DB, name string, active bool, created time.Time) *models.Dish {
	t.Helper()

	dish := &models.Dish{
		ID:             uuid.New(),
		Name:           name,
		Price:          decimal.NewFromInt(30),
		InitialStock:   5,
		RemainingStock: 5,
		Active:         active,
		CreatedAt:      created,
		UpdatedAt:      created,
	}
	require.NoError(t, db.Create(dish).Error)
	return dish
}

func TestServiceCreateDish(t *testing.T) {
	svc, db, publisher := setupDishService(t)

	desc := "Tradicional, serve 2 pessoas"
	dish, err := svc.Create(context.Background(), CreateDishInput{
		Name:         "  Feijoada Completa  ",
		Description:  &desc,
		Price:        decimal.RequireFromString("45.90"),
		InitialStock: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, "Feijoada Completa", dish.Name)
	assert.Equal(t, 5, dish.InitialStock)
	assert.Equal(t, 5, dish.RemainingStock)
	assert.True(t, dish.Active)

	var stored models.Dish
	require.NoError(t, db.Where("id = ?", dish.ID).First(&stored).Error)
	assert.Equal(t, 5, stored.RemainingStock)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, events.TypeDishCreated, publisher.events[0].Type)
}

func TestServiceCreateDishValidation(t *testing.T) {
	svc, _, publisher := setupDishService(t)

	cases := []struct {
		name  string
		input CreateDishInput
	}{
		{"empty name", CreateDishInput{Name: "  ", Price: decimal.NewFromInt(10), InitialStock: 1}},
		{"negative price", CreateDishInput{Name: "Prato", Price: decimal.NewFromInt(-1), InitialStock: 1}},
		{"negative stock", CreateDishInput{Name: "Prato", Price: decimal.NewFromInt(10), InitialStock: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.input)
			require.Error(t, err)
			assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))
		})
	}
	assert.Empty(t, publisher.events)
}

func TestServiceListActiveOrdering(t *testing.T) {
	svc, db, _ := setupDishService(t)

	now := time.Now().UTC()
	seedDish(t, db, "Mais Antigo", true, now.Add(-2*time.Hour))
	seedDish(t, db, "Inativo", false, now.Add(-time.Hour))
	seedDish(t, db, "Mais Novo", true, now)

	list, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Mais Antigo", list[0].Name)
	assert.Equal(t, "Mais Novo", list[1].Name)

	// Reads never mutate; a second call sees the same menu.
	again, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, again, 2)
	assert.Equal(t, list[0].ID, again[0].ID)
	assert.Equal(t, list[1].ID, again[1].ID)
}

// A default tag on the Active column would make gorm drop the zero-value
// false from the INSERT and store the dish as active.
func TestInactiveDishPersistsInactive(t *testing.T) {
	_, db, _ := setupDishService(t)

	seeded := seedDish(t, db, "Inativo", false, time.Now().UTC())

	var stored models.Dish
	require.NoError(t, db.First(&stored, "id = ?", seeded.ID).Error)
	assert.False(t, stored.Active)
}

func TestServiceListAllIncludesInactive(t *testing.T) {
	svc, db, _ := setupDishService(t)

	now := time.Now().UTC()
	seedDish(t, db, "Ativo", true, now.Add(-time.Hour))
	seedDish(t, db, "Inativo", false, now)

	list, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func TestServiceDeleteDish(t *testing.T) {
	svc, db, publisher := setupDishService(t)
	dish := seedDish(t, db, "Para Remover", true, time.Now().UTC())

	require.NoError(t, svc.Delete(context.Background(), dish.ID))

	var count int64
	require.NoError(t, db.Model(&models.Dish{}).Where("id = ?", dish.ID).Count(&count).Error)
	assert.Zero(t, count)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, events.TypeDishDeleted, publisher.events[0].Type)
	assert.Equal(t, dish.ID, publisher.events[0].DishID)
}

func TestServiceDeleteMissingDish(t *testing.T) {
	svc, _, _ := setupDishService(t)

	err := svc.Delete(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
}

func TestServiceSetActiveTogglesVisibility(t *testing.T) {
	svc, db, publisher := setupDishService(t)
	dish := seedDish(t, db, "Prato do Dia", true, time.Now().UTC())

	updated, err := svc.SetActive(context.Background(), dish.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.Active)
	assert.Equal(t, 5, updated.RemainingStock, "visibility toggle must not touch stock")

	list, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, events.TypeDishUpdated, publisher.events[0].Type)
}

func TestServiceSetActiveMissingDish(t *testing.T) {
	svc, _, _ := setupDishService(t)

	_, err := svc.SetActive(context.Background(), uuid.New(), false)
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
}
