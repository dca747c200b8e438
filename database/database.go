package database

import (
	"gorm.io/gorm"
)

type Database struct {
	projectRepo  *ProjectRepo
	expenseRepo  *ExpenseRepo
	categoryRepo *CategoryRepo
	taskRepo     *TaskRepo
	productRepo  *ProductRepo
	storeRepo    *StoreRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		projectRepo:  NewProjectRepo(db),
		expenseRepo:  NewExpenseRepo(db),
		categoryRepo: NewCategoryRepo(db),
		taskRepo:     NewTaskRepo(db),
		productRepo:  NewProductRepo(db),
		storeRepo:    NewStoreRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ExpenseRepo() *ExpenseRepo {
	return d.expenseRepo
}

func (d Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}

func (d Database) TaskRepo() *TaskRepo {
	return d.taskRepo
}

func (d Database) ProductRepo() *ProductRepo {
	return d.productRepo
}

func (d Database) StoreRepo() *StoreRepo {
	return d.storeRepo
}
