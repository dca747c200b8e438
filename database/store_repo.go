package database

import (
	"github.com/flavioricotta/Obracontrolia/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StoreRepo struct {
	db *gorm.DB
}

func NewStoreRepo(db *gorm.DB) *StoreRepo {
	return &StoreRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *StoreRepo) GetDB() *gorm.DB {
	return r.db
}

// FindActive returns every store currently visible in the marketplace
func (r *StoreRepo) FindActive() ([]*models.Store, error) {
	var stores []*models.Store
	err := r.db.Where("is_active = ?", true).Order("name").Find(&stores).Error
	return stores, err
}

// FindByUserID returns the store profile of one business account
func (r *StoreRepo) FindByUserID(userID uuid.UUID) (*models.Store, error) {
	var store models.Store
	err := r.db.Where("user_id = ?", userID).First(&store).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}

// Upsert inserts the store profile or, if the account already has one,
// replaces its editable fields in place. One profile per account.
func (r *StoreRepo) Upsert(store *models.Store) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "cnpj", "phone", "email", "address", "city", "state",
			"zip_code", "latitude", "longitude", "logo_url", "description",
			"opening_hours", "delivery_options", "payment_methods",
			"instagram", "facebook", "is_active",
		}),
	}).Create(store).Error
}

