package database

import (
	"time"

	"github.com/flavioricotta/Obracontrolia/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) *ProductRepo {
	return &ProductRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *ProductRepo) GetDB() *gorm.DB {
	return r.db
}

// FindAll returns the full marketplace catalog
func (r *ProductRepo) FindAll() ([]*models.Product, error) {
	var products []*models.Product
	err := r.db.Order("name").Find(&products).Error
	return products, err
}

// FindByStore returns the products published by one store
func (r *ProductRepo) FindByStore(storeID uuid.UUID) ([]*models.Product, error) {
	var products []*models.Product
	err := r.db.Where("store_id = ?", storeID).Order("name").Find(&products).Error
	return products, err
}

// FindByID returns a product by its ID
func (r *ProductRepo) FindByID(id int64) (*models.Product, error) {
	var product models.Product
	err := r.db.First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Add inserts a new product into the database
func (r *ProductRepo) Add(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update applies the non-nil fields of the patch to an existing product
func (r *ProductRepo) Update(id int64, patch models.ProductPatch) error {
	columns := patch.Columns()
	if len(columns) == 0 {
		return nil
	}
	columns["last_updated"] = time.Now()
	return r.db.Model(&models.Product{}).Where("id = ?", id).Updates(columns).Error
}

// Delete removes a product from the database by id
func (r *ProductRepo) Delete(id int64) error {
	return r.db.Delete(&models.Product{}, id).Error
}
