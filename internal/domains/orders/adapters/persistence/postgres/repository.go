package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feriahub/marketplace-api/internal/domains/orders/domain"
	"github.com/feriahub/marketplace-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists order aggregates in PostgreSQL using GORM. Items,
// address and history are stored as JSON documents on the order row, so a
// status change and its history entry always land in one atomic row update.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Schema management lives
// in platform/migrations; the caller manages the DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type itemRecord struct {
	ProductID      string `json:"productId"`
	SellerID       string `json:"sellerId"`
	ProductName    string `json:"productName"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

type addressRecord struct {
	Street     string   `json:"street"`
	Number     int      `json:"number"`
	Floor      string   `json:"floor,omitempty"`
	Unit       string   `json:"unit,omitempty"`
	PostalCode string   `json:"postalCode,omitempty"`
	City       string   `json:"city"`
	Province   string   `json:"province"`
	Country    string   `json:"country"`
	Latitude   *float64 `json:"lat,omitempty"`
	Longitude  *float64 `json:"lon,omitempty"`
}

type historyRecord struct {
	At     time.Time `json:"at"`
	Status string    `json:"status"`
	Actor  string    `json:"actor"`
	Reason string    `json:"reason"`
}

// orderRecord maps the order aggregate to its relational shape.
type orderRecord struct {
	ID        string          `gorm:"primaryKey;column:id;type:uuid"`
	BuyerID   string          `gorm:"column:buyer_id;index"`
	Currency  string          `gorm:"column:currency;type:varchar(8)"`
	Status    string          `gorm:"column:status;type:varchar(16);index"`
	Items     []itemRecord    `gorm:"column:items;serializer:json"`
	Address   addressRecord   `gorm:"column:delivery_address;serializer:json"`
	History   []historyRecord `gorm:"column:status_history;serializer:json"`
	SellerIDs pq.StringArray  `gorm:"column:seller_ids;type:text[]"`
	CreatedAt time.Time       `gorm:"column:created_at;index"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Save inserts or updates an order, assigning a fresh uuid on first save.
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"status", "items", "delivery_address", "status_history", "seller_ids", "updated_at",
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an order by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain()
}

// List returns all orders, oldest first.
func (r *Repository) List(ctx context.Context) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		order, err := records[i].toDomain()
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// AppendStatusChange updates the status column and pushes the history entry in
// one row update inside a transaction holding a row lock, so readers never see
// a status without its history entry.
func (r *Repository) AppendStatusChange(ctx context.Context, orderID string, change domain.StatusChange) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var updated orderRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record orderRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&record, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ports.ErrNotFound
			}
			return err
		}
		record.History = append(record.History, historyRecord{
			At:     change.At,
			Status: string(change.Status),
			Actor:  change.Actor,
			Reason: change.Reason,
		})
		record.Status = string(change.Status)
		record.UpdatedAt = time.Now().UTC()
		if err := tx.Model(&orderRecord{}).Where("id = ?", orderID).
			Select("status", "status_history", "updated_at").
			Updates(record).Error; err != nil {
			return err
		}
		updated = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated.toDomain()
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	items := make([]itemRecord, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, itemRecord{
			ProductID:      item.ProductID(),
			SellerID:       item.SellerID(),
			ProductName:    item.ProductName(),
			Quantity:       item.Quantity(),
			UnitPriceCents: item.UnitPriceCents(),
		})
	}
	history := make([]historyRecord, 0, len(order.History))
	for _, change := range order.History {
		history = append(history, historyRecord{
			At:     change.At,
			Status: string(change.Status),
			Actor:  change.Actor,
			Reason: change.Reason,
		})
	}
	params := order.DeliveryAddress.Params()
	return orderRecord{
		ID:       order.ID,
		BuyerID:  order.BuyerID,
		Currency: order.Currency,
		Status:   string(order.Status),
		Items:    items,
		Address: addressRecord{
			Street:     params.Street,
			Number:     params.Number,
			Floor:      params.Floor,
			Unit:       params.Unit,
			PostalCode: params.PostalCode,
			City:       params.City,
			Province:   params.Province,
			Country:    params.Country,
			Latitude:   params.Latitude,
			Longitude:  params.Longitude,
		},
		History:   history,
		SellerIDs: pq.StringArray(order.Sellers()),
		CreatedAt: order.CreatedAt,
	}
}

func (rec orderRecord) toDomain() (*domain.Order, error) {
	address, err := domain.NewAddress(domain.AddressParams{
		Street:     rec.Address.Street,
		Number:     rec.Address.Number,
		Floor:      rec.Address.Floor,
		Unit:       rec.Address.Unit,
		PostalCode: rec.Address.PostalCode,
		City:       rec.Address.City,
		Province:   rec.Address.Province,
		Country:    rec.Address.Country,
		Latitude:   rec.Address.Latitude,
		Longitude:  rec.Address.Longitude,
	})
	if err != nil {
		return nil, fmt.Errorf("rebuild address for order %s: %w", rec.ID, err)
	}
	items := make([]domain.LineItem, 0, len(rec.Items))
	for _, item := range rec.Items {
		li, err := domain.NewLineItem(item.ProductID, item.SellerID, item.ProductName, item.Quantity, item.UnitPriceCents)
		if err != nil {
			return nil, fmt.Errorf("rebuild line item for order %s: %w", rec.ID, err)
		}
		items = append(items, li)
	}
	history := make([]domain.StatusChange, 0, len(rec.History))
	for _, change := range rec.History {
		history = append(history, domain.StatusChange{
			At:     change.At,
			Status: domain.OrderStatus(change.Status),
			Actor:  change.Actor,
			Reason: change.Reason,
		})
	}
	return &domain.Order{
		ID:              rec.ID,
		BuyerID:         rec.BuyerID,
		Items:           items,
		Currency:        rec.Currency,
		DeliveryAddress: address,
		Status:          domain.OrderStatus(rec.Status),
		CreatedAt:       rec.CreatedAt,
		History:         history,
	}, nil
}
