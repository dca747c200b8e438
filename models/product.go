package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a marketplace offer owned by a business account's store.
// Price is the field updated most often; it changes independently of the
// rest through a quick-edit patch.
type Product struct {
	ID          int64     `json:"id" db:"id" gorm:"column:id;primaryKey;autoIncrement"`
	StoreID     uuid.UUID `json:"storeId" db:"store_id" gorm:"column:store_id;type:uuid;not null;index"`
	Name        string    `json:"name" db:"name" gorm:"column:name;type:text;not null"`
	Description *string   `json:"description,omitempty" db:"description" gorm:"column:description;type:text"`
	Price       float64   `json:"price" db:"price" gorm:"column:price;type:numeric;not null;default:0"`
	Unit        string    `json:"unit" db:"unit" gorm:"column:unit;type:text;not null"`
	Category    string    `json:"category" db:"category" gorm:"column:category;type:text"`
	LastUpdated time.Time `json:"lastUpdated" db:"last_updated" gorm:"column:last_updated;type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
}

// ProductPatch is a partial update of a Product; nil means untouched.
type ProductPatch struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Unit        *string  `json:"unit,omitempty"`
	Category    *string  `json:"category,omitempty"`
}

func (p ProductPatch) Columns() map[string]any {
	cols := map[string]any{}
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.Price != nil {
		cols["price"] = *p.Price
	}
	if p.Unit != nil {
		cols["unit"] = *p.Unit
	}
	if p.Category != nil {
		cols["category"] = *p.Category
	}
	return cols
}

func (Product) TableName() string {
	return "products"
}
