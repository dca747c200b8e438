package database

import (
	"github.com/flavioricotta/Obracontrolia/models"
	"gorm.io/gorm"
)

type ExpenseRepo struct {
	db *gorm.DB
}

func NewExpenseRepo(db *gorm.DB) *ExpenseRepo {
	return &ExpenseRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *ExpenseRepo) GetDB() *gorm.DB {
	return r.db
}

// FindAll returns all expenses, newest purchase first
func (r *ExpenseRepo) FindAll() ([]*models.Expense, error) {
	var expenses []*models.Expense
	err := r.db.Order("date DESC").Find(&expenses).Error
	return expenses, err
}

// FindByProject returns the expenses of one project, newest purchase first
func (r *ExpenseRepo) FindByProject(projectID int64) ([]*models.Expense, error) {
	var expenses []*models.Expense
	err := r.db.Where("project_id = ?", projectID).Order("date DESC").Find(&expenses).Error
	return expenses, err
}

// FindByID returns an expense by its ID
func (r *ExpenseRepo) FindByID(id int64) (*models.Expense, error) {
	var expense models.Expense
	err := r.db.First(&expense, id).Error
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// Add inserts a new expense into the database
func (r *ExpenseRepo) Add(expense *models.Expense) error {
	return r.db.Create(expense).Error
}

// Update applies the non-nil fields of the patch to an existing expense
func (r *ExpenseRepo) Update(id int64, patch models.ExpensePatch) error {
	columns := patch.Columns()
	if len(columns) == 0 {
		return nil
	}
	return r.db.Model(&models.Expense{}).Where("id = ?", id).Updates(columns).Error
}

// Delete removes an expense from the database by id
func (r *ExpenseRepo) Delete(id int64) error {
	return r.db.Delete(&models.Expense{}, id).Error
}
