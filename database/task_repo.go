package database

import (
	"github.com/flavioricotta/Obracontrolia/models"
	"gorm.io/gorm"
)

type TaskRepo struct {
	db *gorm.DB
}

func NewTaskRepo(db *gorm.DB) *TaskRepo {
	return &TaskRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *TaskRepo) GetDB() *gorm.DB {
	return r.db
}

// FindByProject returns the tasks of one project, newest first
func (r *TaskRepo) FindByProject(projectID int64) ([]*models.Task, error) {
	var tasks []*models.Task
	err := r.db.Where("project_id = ?", projectID).Order("created_at DESC").Find(&tasks).Error
	return tasks, err
}

// FindByID returns a task by its ID
func (r *TaskRepo) FindByID(id int64) (*models.Task, error) {
	var task models.Task
	err := r.db.First(&task, id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Add inserts a new task into the database
func (r *TaskRepo) Add(task *models.Task) error {
	return r.db.Create(task).Error
}

// AddAll inserts a batch of tasks in a single statement
func (r *TaskRepo) AddAll(tasks []*models.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	return r.db.Create(&tasks).Error
}

// SetDone flips the completion flag on a task
func (r *TaskRepo) SetDone(id int64, done bool) error {
	return r.db.Model(&models.Task{}).Where("id = ?", id).Update("is_done", done).Error
}

// Delete removes a task from the database by id
func (r *TaskRepo) Delete(id int64) error {
	return r.db.Delete(&models.Task{}, id).Error
}
