package database

import (
	"github.com/flavioricotta/Obracontrolia/models"
	"gorm.io/gorm"
)

type CategoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *CategoryRepo) GetDB() *gorm.DB {
	return r.db
}

// FindAll returns all categories from the database
func (r *CategoryRepo) FindAll() ([]*models.Category, error) {
	var categories []*models.Category
	err := r.db.Order("id").Find(&categories).Error
	return categories, err
}

// FindByID returns a category by its ID
func (r *CategoryRepo) FindByID(id int64) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByName returns a category by its exact name
func (r *CategoryRepo) FindByName(name string) (*models.Category, error) {
	var category models.Category
	err := r.db.Where("name = ?", name).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Seed inserts the default construction categories if the table is empty.
// Safe to call on every boot.
func (r *CategoryRepo) Seed() error {
	var count int64
	if err := r.db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	seed := make([]models.Category, len(models.SeedCategories))
	copy(seed, models.SeedCategories)
	return r.db.Create(&seed).Error
}
