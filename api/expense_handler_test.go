package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/flavioricotta/Obracontrolia/models"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type stubExpenseStore struct {
	expenses map[int64]*models.Expense
	added    []*models.Expense
	updated  []models.ExpensePatch
}

func (s *stubExpenseStore) FindAll() ([]*models.Expense, error) {
	out := make([]*models.Expense, 0, len(s.expenses))
	for _, e := range s.expenses {
		out = append(out, e)
	}
	return out, nil
}

func (s *stubExpenseStore) FindByProject(projectID int64) ([]*models.Expense, error) {
	var out []*models.Expense
	for _, e := range s.expenses {
		if e.ProjectID == projectID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *stubExpenseStore) FindByID(id int64) (*models.Expense, error) {
	e, ok := s.expenses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (s *stubExpenseStore) Add(expense *models.Expense) error {
	s.added = append(s.added, expense)
	return nil
}

func (s *stubExpenseStore) Update(id int64, patch models.ExpensePatch) error {
	s.updated = append(s.updated, patch)
	return nil
}

func (s *stubExpenseStore) Delete(id int64) error {
	delete(s.expenses, id)
	return nil
}

type stubProjectFinder struct {
	projects map[int64]*models.Project
}

func (s *stubProjectFinder) FindByID(id int64) (*models.Project, error) {
	p, ok := s.projects[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

type stubCategoryFinder struct {
	categories map[int64]*models.Category
}

func (s *stubCategoryFinder) FindByID(id int64) (*models.Category, error) {
	c, ok := s.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func newTestExpenseHandler(store *stubExpenseStore, projects *stubProjectFinder, categories *stubCategoryFinder) expenseHandler {
	logger := zerolog.Nop()
	return expenseHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		expenseRepo:  store,
		projectRepo:  projects,
		categoryRepo: categories,
	}
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestCreateExpenseValidation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			"unknown category is rejected",
			`{"projectId": 1, "categoryId": 999, "date": "2026-08-01", "amountPaid": 150}`,
			http.StatusNotFound,
		},
		{
			"unknown project is rejected",
			`{"projectId": 42, "categoryId": 1, "date": "2026-08-01", "amountPaid": 150}`,
			http.StatusNotFound,
		},
		{
			"missing categoryId is rejected",
			`{"projectId": 1, "date": "2026-08-01", "amountPaid": 150}`,
			http.StatusBadRequest,
		},
		{
			"zero amounts are rejected",
			`{"projectId": 1, "categoryId": 1, "date": "2026-08-01"}`,
			http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &stubExpenseStore{expenses: map[int64]*models.Expense{}}
			projects := &stubProjectFinder{projects: map[int64]*models.Project{
				1: {ID: 1, Name: "Casa Alphaville"},
			}}
			categories := &stubCategoryFinder{categories: map[int64]*models.Category{
				1: {ID: 1, Name: "Fundação", Type: models.ExpenseTypeMaterial},
			}}
			h := newTestExpenseHandler(store, projects, categories)

			req := httptest.NewRequest("POST", "/expense", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.createExpense().ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if len(store.added) != 0 {
				t.Errorf("expense was persisted despite failing validation: %+v", store.added)
			}
		})
	}
}

func TestCreateExpenseValidEntry(t *testing.T) {
	store := &stubExpenseStore{expenses: map[int64]*models.Expense{}}
	projects := &stubProjectFinder{projects: map[int64]*models.Project{
		1: {ID: 1, Name: "Casa Alphaville"},
	}}
	categories := &stubCategoryFinder{categories: map[int64]*models.Category{
		3: {ID: 3, Name: "Alvenaria", Type: models.ExpenseTypeMaterial},
	}}
	h := newTestExpenseHandler(store, projects, categories)

	body := `{"projectId": 1, "categoryId": 3, "date": "2026-08-01", "supplier": "Casa do Construtor", "amountPaid": 150}`
	req := httptest.NewRequest("POST", "/expense", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.createExpense().ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if len(store.added) != 1 {
		t.Fatalf("added = %d expenses, want 1", len(store.added))
	}
	if store.added[0].Status != models.PaymentStatusPaid {
		t.Errorf("status defaulted to %q, want %q", store.added[0].Status, models.PaymentStatusPaid)
	}
}

func TestUpdateExpenseUnknownCategory(t *testing.T) {
	store := &stubExpenseStore{expenses: map[int64]*models.Expense{
		7: {ID: 7, ProjectID: 1, CategoryID: 1, Date: "2026-08-01", AmountPaid: 150},
	}}
	projects := &stubProjectFinder{projects: map[int64]*models.Project{}}
	categories := &stubCategoryFinder{categories: map[int64]*models.Category{
		1: {ID: 1, Name: "Fundação", Type: models.ExpenseTypeMaterial},
	}}
	h := newTestExpenseHandler(store, projects, categories)

	req := httptest.NewRequest("PATCH", "/expense/7", strings.NewReader(`{"categoryId": 999}`))
	req = withURLParam(req, "expenseID", "7")
	rec := httptest.NewRecorder()
	h.updateExpense().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if len(store.updated) != 0 {
		t.Errorf("patch was applied despite unknown category: %+v", store.updated)
	}
}

func TestUpdateExpenseValidCategory(t *testing.T) {
	store := &stubExpenseStore{expenses: map[int64]*models.Expense{
		7: {ID: 7, ProjectID: 1, CategoryID: 1, Date: "2026-08-01", AmountPaid: 150},
	}}
	projects := &stubProjectFinder{projects: map[int64]*models.Project{}}
	categories := &stubCategoryFinder{categories: map[int64]*models.Category{
		1: {ID: 1, Name: "Fundação", Type: models.ExpenseTypeMaterial},
		2: {ID: 2, Name: "Alvenaria", Type: models.ExpenseTypeMaterial},
	}}
	h := newTestExpenseHandler(store, projects, categories)

	req := httptest.NewRequest("PATCH", "/expense/7", strings.NewReader(`{"categoryId": 2}`))
	req = withURLParam(req, "expenseID", "7")
	rec := httptest.NewRecorder()
	h.updateExpense().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if len(store.updated) != 1 || store.updated[0].CategoryID == nil || *store.updated[0].CategoryID != 2 {
		t.Errorf("updated = %+v, want one patch with categoryId 2", store.updated)
	}
}
