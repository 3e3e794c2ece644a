// Package migrations owns the relational schema for all bounded contexts, so
// adapters never automigrate on their own.
package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema. Safe to call on every startup.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&orderRecord{})
}

// Order schema mirrors the orders Postgres adapter: the aggregate's items,
// delivery address and status history live as JSON documents on the row, and
// the distinct seller ids are kept in a text[] column for seller-side queries.
type orderRecord struct {
	ID        string         `gorm:"primaryKey;column:id;type:uuid"`
	BuyerID   string         `gorm:"column:buyer_id;index"`
	Currency  string         `gorm:"column:currency;type:varchar(8)"`
	Status    string         `gorm:"column:status;type:varchar(16);index"`
	Items     string         `gorm:"column:items;type:jsonb"`
	Address   string         `gorm:"column:delivery_address;type:jsonb"`
	History   string         `gorm:"column:status_history;type:jsonb"`
	SellerIDs pq.StringArray `gorm:"column:seller_ids;type:text[]"`
	CreatedAt time.Time      `gorm:"column:created_at;index"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }
