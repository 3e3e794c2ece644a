//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feriahub/marketplace-api/internal/domains/orders/domain"
	"github.com/feriahub/marketplace-api/internal/domains/orders/ports"
	"github.com/feriahub/marketplace-api/internal/platform/migrations"
)

func setupOrdersPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("marketplace_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func persistedOrder(t *testing.T) *domain.Order {
	t.Helper()
	address, err := domain.NewAddress(domain.AddressParams{
		Street:   "Av. Corrientes",
		Number:   1234,
		City:     "Buenos Aires",
		Province: "CABA",
		Country:  "Argentina",
	})
	require.NoError(t, err)
	mate, err := domain.NewLineItem("prod-1", "seller-1", "Mate Imperial", 2, 1850_00)
	require.NoError(t, err)
	yerba, err := domain.NewLineItem("prod-2", "seller-2", "Yerba Organica", 1, 420_00)
	require.NoError(t, err)
	order, err := domain.NewOrder("buyer-1", []domain.LineItem{mate, yerba}, "ARS", address)
	require.NoError(t, err)
	return order
}

func TestRepository_SaveAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	saved, err := repo.Save(ctx, persistedOrder(t))
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	fetched, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, fetched.ID)
	assert.Equal(t, "buyer-1", fetched.BuyerID)
	assert.Equal(t, domain.StatusPending, fetched.Status)
	assert.Equal(t, int64(2*1850_00+420_00), fetched.Total())
	assert.Equal(t, []string{"seller-1", "seller-2"}, fetched.Sellers())
	assert.Equal(t, "Av. Corrientes", fetched.DeliveryAddress.Street())
}

func TestRepository_GetByIDNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	_, err := repo.GetByID(context.Background(), "7f0b7a06-8f14-4f9d-b1a0-5f0c9a3d9e21")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_AppendStatusChange(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	saved, err := repo.Save(ctx, persistedOrder(t))
	require.NoError(t, err)

	updated, err := repo.AppendStatusChange(ctx, saved.ID, domain.StatusChange{
		At:     time.Now().UTC(),
		Status: domain.StatusConfirmed,
		Actor:  "seller-1",
		Reason: "confirmed by seller",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, updated.Status)
	require.Len(t, updated.History, 1)
	assert.Equal(t, "seller-1", updated.History[0].Actor)

	reloaded, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, reloaded.Status)
	assert.Len(t, reloaded.History, 1)
}

func TestRepository_List(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.Save(ctx, persistedOrder(t))
		require.NoError(t, err)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}
