package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Store is the single marketplace profile of a business account, keyed by
// the owning account id. IsActive gates marketplace visibility.
type Store struct {
	ID              int64                       `json:"id" db:"id" gorm:"column:id;primaryKey;autoIncrement"`
	UserID          uuid.UUID                   `json:"userId" db:"user_id" gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	Name            string                      `json:"name" db:"name" gorm:"column:name;type:text;not null"`
	CNPJ            *string                     `json:"cnpj,omitempty" db:"cnpj" gorm:"column:cnpj;type:text"`
	Phone           string                      `json:"phone" db:"phone" gorm:"column:phone;type:text;not null"`
	Email           *string                     `json:"email,omitempty" db:"email" gorm:"column:email;type:text"`
	Address         string                      `json:"address" db:"address" gorm:"column:address;type:text;not null"`
	City            string                      `json:"city" db:"city" gorm:"column:city;type:text;not null"`
	State           *string                     `json:"state,omitempty" db:"state" gorm:"column:state;type:text"`
	ZipCode         *string                     `json:"zipCode,omitempty" db:"zip_code" gorm:"column:zip_code;type:text"`
	Latitude        *float64                    `json:"latitude,omitempty" db:"latitude" gorm:"column:latitude;type:numeric"`
	Longitude       *float64                    `json:"longitude,omitempty" db:"longitude" gorm:"column:longitude;type:numeric"`
	LogoURL         *string                     `json:"logoUrl,omitempty" db:"logo_url" gorm:"column:logo_url;type:text"`
	Description     *string                     `json:"description,omitempty" db:"description" gorm:"column:description;type:text"`
	OpeningHours    *string                     `json:"openingHours,omitempty" db:"opening_hours" gorm:"column:opening_hours;type:text"`
	DeliveryOptions datatypes.JSONSlice[string] `json:"deliveryOptions" db:"delivery_options" gorm:"column:delivery_options;type:jsonb"`
	PaymentMethods  datatypes.JSONSlice[string] `json:"paymentMethods" db:"payment_methods" gorm:"column:payment_methods;type:jsonb"`
	Instagram       *string                     `json:"instagram,omitempty" db:"instagram" gorm:"column:instagram;type:text"`
	Facebook        *string                     `json:"facebook,omitempty" db:"facebook" gorm:"column:facebook;type:text"`
	IsActive        bool                        `json:"isActive" db:"is_active" gorm:"column:is_active;not null;default:true"`
	CreatedAt       time.Time                   `json:"createdAt" db:"created_at" gorm:"column:created_at;type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
}

// HasLocation reports whether the store can take part in distance ranking.
func (s Store) HasLocation() bool {
	return s.Latitude != nil && s.Longitude != nil
}

// Validate checks the fields the profile form requires before any network
// call is made.
func (s Store) Validate() []string {
	var missing []string
	if s.Name == "" {
		missing = append(missing, "name")
	}
	if s.Phone == "" {
		missing = append(missing, "phone")
	}
	if s.Address == "" {
		missing = append(missing, "address")
	}
	if s.City == "" {
		missing = append(missing, "city")
	}
	return missing
}

func (Store) TableName() string {
	return "stores"
}
