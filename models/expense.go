package models

import (
	"time"

	"gorm.io/datatypes"
)

// PaymentStatus is the stringly-typed status column the store keeps.
type PaymentStatus string

const (
	PaymentStatusPaid      PaymentStatus = "Pago"
	PaymentStatusPending   PaymentStatus = "Pendente"
	PaymentStatusScheduled PaymentStatus = "Agendado"
)

// Expense is a single spend entry owned by a Project.
type Expense struct {
	ID             int64                       `json:"id" db:"id" gorm:"column:id;primaryKey;autoIncrement"`
	ProjectID      int64                       `json:"projectId" db:"project_id" gorm:"column:project_id;not null;index"`
	Date           string                      `json:"date" db:"date" gorm:"column:date;type:date;not null"`
	CategoryID     int64                       `json:"categoryId" db:"category_id" gorm:"column:category_id;not null"`
	SubCategory    *string                     `json:"subCategory,omitempty" db:"sub_category" gorm:"column:sub_category;type:text"`
	Supplier       string                      `json:"supplier" db:"supplier" gorm:"column:supplier;type:text"`
	Responsible    string                      `json:"responsible" db:"responsible" gorm:"column:responsible;type:text"`
	PaymentMethod  string                      `json:"paymentMethod" db:"payment_method" gorm:"column:payment_method;type:text"`
	Status         PaymentStatus               `json:"status" db:"status" gorm:"column:status;type:text;not null"`
	DueDate        *string                     `json:"dueDate,omitempty" db:"due_date" gorm:"column:due_date;type:date"`
	AmountExpected float64                     `json:"amountExpected" db:"amount_expected" gorm:"column:amount_expected;type:numeric;not null;default:0"`
	AmountPaid     float64                     `json:"amountPaid" db:"amount_paid" gorm:"column:amount_paid;type:numeric;not null;default:0"`
	Description    string                      `json:"description" db:"description" gorm:"column:description;type:text"`
	Quantity       *float64                    `json:"quantity,omitempty" db:"quantity" gorm:"column:quantity;type:numeric"`
	Unit           *string                     `json:"unit,omitempty" db:"unit" gorm:"column:unit;type:text"`
	ReceiptImages  datatypes.JSONSlice[string] `json:"receiptImages" db:"receipt_images" gorm:"column:receipt_images;type:jsonb"`
	CreatedAt      time.Time                   `json:"createdAt" db:"created_at" gorm:"column:created_at;type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
}

// HasAmount reports whether the expense carries any value worth persisting.
func (e Expense) HasAmount() bool {
	return e.AmountPaid > 0 || e.AmountExpected > 0
}

// ExpensePatch is a partial update of an Expense; nil means untouched.
type ExpensePatch struct {
	Date           *string        `json:"date,omitempty"`
	CategoryID     *int64         `json:"categoryId,omitempty"`
	SubCategory    *string        `json:"subCategory,omitempty"`
	Supplier       *string        `json:"supplier,omitempty"`
	Responsible    *string        `json:"responsible,omitempty"`
	PaymentMethod  *string        `json:"paymentMethod,omitempty"`
	Status         *PaymentStatus `json:"status,omitempty"`
	DueDate        *string        `json:"dueDate,omitempty"`
	AmountExpected *float64       `json:"amountExpected,omitempty"`
	AmountPaid     *float64       `json:"amountPaid,omitempty"`
	Description    *string        `json:"description,omitempty"`
	Quantity       *float64       `json:"quantity,omitempty"`
	Unit           *string        `json:"unit,omitempty"`
	ReceiptImages  *[]string      `json:"receiptImages,omitempty"`
}

func (p ExpensePatch) Columns() map[string]any {
	cols := map[string]any{}
	if p.Date != nil {
		cols["date"] = *p.Date
	}
	if p.CategoryID != nil {
		cols["category_id"] = *p.CategoryID
	}
	if p.SubCategory != nil {
		cols["sub_category"] = *p.SubCategory
	}
	if p.Supplier != nil {
		cols["supplier"] = *p.Supplier
	}
	if p.Responsible != nil {
		cols["responsible"] = *p.Responsible
	}
	if p.PaymentMethod != nil {
		cols["payment_method"] = *p.PaymentMethod
	}
	if p.Status != nil {
		cols["status"] = *p.Status
	}
	if p.DueDate != nil {
		cols["due_date"] = *p.DueDate
	}
	if p.AmountExpected != nil {
		cols["amount_expected"] = *p.AmountExpected
	}
	if p.AmountPaid != nil {
		cols["amount_paid"] = *p.AmountPaid
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.Quantity != nil {
		cols["quantity"] = *p.Quantity
	}
	if p.Unit != nil {
		cols["unit"] = *p.Unit
	}
	if p.ReceiptImages != nil {
		cols["receipt_images"] = datatypes.NewJSONSlice(*p.ReceiptImages)
	}
	return cols
}

func (Expense) TableName() string {
	return "expenses"
}
