package stock

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one row of the external quantity ledger. Multiple rows may match
// a single catalog product; shopper-facing quantity is the SUM over matches.
type Entry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Item      string    `gorm:"not null" json:"item"`
	Quantity  int64     `gorm:"not null;default:0" json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName maps the model onto the ledger table.
func (Entry) TableName() string {
	return "stock"
}
