package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/feriahub/marketplace-api/internal/domains/orders/domain"
	"github.com/feriahub/marketplace-api/internal/domains/orders/ports"
)

func sampleOrder(t *testing.T) *domain.Order {
	t.Helper()
	address, err := domain.NewAddress(domain.AddressParams{
		Street:   "Av. Cabildo",
		Number:   500,
		City:     "Buenos Aires",
		Province: "CABA",
		Country:  "Argentina",
	})
	require.NoError(t, err)
	item, err := domain.NewLineItem("prod-1", "seller-1", "Mate Imperial", 2, 1850_00)
	require.NoError(t, err)
	order, err := domain.NewOrder("buyer-1", []domain.LineItem{item}, "ARS", address)
	require.NoError(t, err)
	return order
}

func TestRepository_SaveAssignsID(t *testing.T) {
	repo := NewRepository()
	saved, err := repo.Save(context.Background(), sampleOrder(t))
	require.NoError(t, err)
	require.NoError(t, uuid.Validate(saved.ID))

	loaded, err := repo.GetByID(context.Background(), saved.ID)
	require.NoError(t, err)
	require.Equal(t, saved.ID, loaded.ID)
	require.Equal(t, domain.StatusPending, loaded.Status)
}

func TestRepository_GetByIDNotFound(t *testing.T) {
	repo := NewRepository()
	_, err := repo.GetByID(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_AppendStatusChange(t *testing.T) {
	repo := NewRepository()
	saved, err := repo.Save(context.Background(), sampleOrder(t))
	require.NoError(t, err)

	change := domain.StatusChange{
		At:     time.Now().UTC(),
		Status: domain.StatusConfirmed,
		Actor:  "seller-1",
		Reason: "confirmed by seller",
	}
	updated, err := repo.AppendStatusChange(context.Background(), saved.ID, change)
	require.NoError(t, err)
	require.Equal(t, domain.StatusConfirmed, updated.Status)
	require.Len(t, updated.History, 1)
	require.Equal(t, "seller-1", updated.History[0].Actor)

	reloaded, err := repo.GetByID(context.Background(), saved.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusConfirmed, reloaded.Status)
	require.Len(t, reloaded.History, 1)
}

func TestRepository_AppendStatusChangeUnknownOrder(t *testing.T) {
	repo := NewRepository()
	_, err := repo.AppendStatusChange(context.Background(), uuid.NewString(), domain.StatusChange{Status: domain.StatusCancelled})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_ReturnsClones(t *testing.T) {
	repo := NewRepository()
	saved, err := repo.Save(context.Background(), sampleOrder(t))
	require.NoError(t, err)

	saved.Status = domain.StatusCancelled
	saved.History = append(saved.History, domain.StatusChange{Status: domain.StatusCancelled})

	reloaded, err := repo.GetByID(context.Background(), saved.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, reloaded.Status)
	require.Empty(t, reloaded.History)
}

func TestCatalog_ConditionalDecrement(t *testing.T) {
	catalog := NewCatalog()
	catalog.Seed(ports.Product{ID: "prod-1", Name: "Mate", SellerID: "seller-1", Stock: 3, PriceCents: 100_00})

	require.NoError(t, catalog.DecrementStock(context.Background(), "prod-1", 2))

	err := catalog.DecrementStock(context.Background(), "prod-1", 2)
	require.ErrorIs(t, err, ports.ErrInsufficientStock)

	stock, err := catalog.AvailableStock(context.Background(), "prod-1")
	require.NoError(t, err)
	require.Equal(t, 1, stock)
}

func TestCatalog_SalesCounter(t *testing.T) {
	catalog := NewCatalog()
	catalog.Seed(ports.Product{ID: "prod-1", Name: "Mate", SellerID: "seller-1", Stock: 3, PriceCents: 100_00})

	require.NoError(t, catalog.IncrementSalesCount(context.Background(), "prod-1", 2))
	require.NoError(t, catalog.IncrementSalesCount(context.Background(), "prod-1", 1))
	require.Equal(t, 3, catalog.SalesCount("prod-1"))

	err := catalog.IncrementSalesCount(context.Background(), "prod-ghost", 1)
	require.ErrorIs(t, err, ports.ErrProductNotFound)
}

func TestNotifier_RecordsAndFilters(t *testing.T) {
	notifier := NewNotifier()
	require.NoError(t, notifier.Create(context.Background(), ports.Notification{RecipientID: "seller-1", Kind: "pedido_nuevo"}))
	require.NoError(t, notifier.Create(context.Background(), ports.Notification{RecipientID: "buyer-1", Kind: "pedido_confirmado"}))

	require.Len(t, notifier.Notifications(), 2)
	require.Len(t, notifier.ForRecipient("seller-1"), 1)
	require.Empty(t, notifier.ForRecipient("seller-9"))
}
