package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

type mockBudgetService struct {
	createBudgetFn         func(workspaceID, userID uint, name string, amount int64, budgetPeriod models.BudgetPeriod, startDate time.Time, endDate *time.Time, categoryIDs []uint) (*models.Budget, error)
	getWorkspaceBudgetsFn  func(workspaceID uint, page pagination.PageRequest, budgetPeriod *models.BudgetPeriod) (*pagination.PageResponse[models.Budget], error)
	getBudgetByIDFn        func(workspaceID, budgetID uint) (*models.Budget, error)
	updateBudgetFn         func(workspaceID, budgetID uint, name *string, amount *int64, budgetPeriod *models.BudgetPeriod, startDate, endDate *time.Time, categoryIDs []uint) (*models.Budget, error)
	deleteBudgetFn         func(workspaceID, budgetID uint) error
	getBudgetProgressFn    func(workspaceID, budgetID uint, from, to *time.Time) ([]services.BudgetProgress, error)
	getWorkspaceProgressFn func(workspaceID uint, from, to *time.Time) (map[uint][]services.BudgetProgress, error)
}

func (m *mockBudgetService) CreateBudget(workspaceID, userID uint, name string, amount int64, budgetPeriod models.BudgetPeriod, startDate time.Time, endDate *time.Time, categoryIDs []uint) (*models.Budget, error) {
	if m.createBudgetFn != nil {
		return m.createBudgetFn(workspaceID, userID, name, amount, budgetPeriod, startDate, endDate, categoryIDs)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) GetWorkspaceBudgets(workspaceID uint, page pagination.PageRequest, budgetPeriod *models.BudgetPeriod) (*pagination.PageResponse[models.Budget], error) {
	if m.getWorkspaceBudgetsFn != nil {
		return m.getWorkspaceBudgetsFn(workspaceID, page, budgetPeriod)
	}
	return &pagination.PageResponse[models.Budget]{}, nil
}

func (m *mockBudgetService) GetBudgetByID(workspaceID, budgetID uint) (*models.Budget, error) {
	if m.getBudgetByIDFn != nil {
		return m.getBudgetByIDFn(workspaceID, budgetID)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) UpdateBudget(workspaceID, budgetID uint, name *string, amount *int64, budgetPeriod *models.BudgetPeriod, startDate, endDate *time.Time, categoryIDs []uint) (*models.Budget, error) {
	if m.updateBudgetFn != nil {
		return m.updateBudgetFn(workspaceID, budgetID, name, amount, budgetPeriod, startDate, endDate, categoryIDs)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) DeleteBudget(workspaceID, budgetID uint) error {
	if m.deleteBudgetFn != nil {
		return m.deleteBudgetFn(workspaceID, budgetID)
	}
	return nil
}

func (m *mockBudgetService) GetBudgetProgress(workspaceID, budgetID uint, from, to *time.Time) ([]services.BudgetProgress, error) {
	if m.getBudgetProgressFn != nil {
		return m.getBudgetProgressFn(workspaceID, budgetID, from, to)
	}
	return nil, nil
}

func (m *mockBudgetService) GetWorkspaceProgress(workspaceID uint, from, to *time.Time) (map[uint][]services.BudgetProgress, error) {
	if m.getWorkspaceProgressFn != nil {
		return m.getWorkspaceProgressFn(workspaceID, from, to)
	}
	return nil, nil
}

var _ services.BudgetServicer = (*mockBudgetService)(nil)

func setupBudgetRouter(handler *BudgetHandler) *gin.Engine {
	r := gin.New()
	ws := r.Group("/workspaces/:workspace_id", injectUserID(1), injectWorkspaceID(1))
	{
		ws.POST("/budgets", handler.CreateBudget)
		ws.GET("/budgets", handler.GetBudgets)
		ws.GET("/budgets/progress", handler.GetWorkspaceProgress)
		ws.GET("/budgets/:id", handler.GetBudget)
		ws.PATCH("/budgets/:id", handler.UpdateBudget)
		ws.DELETE("/budgets/:id", handler.DeleteBudget)
		ws.GET("/budgets/:id/progress", handler.GetBudgetProgress)
	}
	return r
}

func TestBudgetHandler_CreateBudget(t *testing.T) {
	t.Run("returns 201 on valid request", func(t *testing.T) {
		budgetSvc := &mockBudgetService{
			createBudgetFn: func(workspaceID, userID uint, name string, amount int64, budgetPeriod models.BudgetPeriod, startDate time.Time, endDate *time.Time, categoryIDs []uint) (*models.Budget, error) {
				if workspaceID != 1 || userID != 1 {
					t.Errorf("expected workspace 1 and user 1, got %d and %d", workspaceID, userID)
				}
				if amount != 40000 || budgetPeriod != models.BudgetPeriodMonthly {
					t.Errorf("unexpected amount/period: %d %s", amount, budgetPeriod)
				}
				if len(categoryIDs) != 2 {
					t.Errorf("expected 2 categories, got %d", len(categoryIDs))
				}
				return &models.Budget{Base: models.Base{ID: 5}, Name: name, Amount: amount, Period: budgetPeriod}, nil
			},
		}
		handler := NewBudgetHandler(budgetSvc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/workspaces/1/budgets",
			`{"name":"Groceries","amount":40000,"period":"monthly","start_date":"2024-01-01T00:00:00Z","categories":[3,4]}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		budget := result["budget"].(map[string]interface{})
		if budget["name"] != "Groceries" {
			t.Errorf("expected Groceries, got %v", budget["name"])
		}
	})

	t.Run("returns 400 on non-positive amount", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{}, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/workspaces/1/budgets",
			`{"amount":0,"period":"monthly","start_date":"2024-01-01T00:00:00Z","categories":[3]}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on empty category set", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{}, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/workspaces/1/budgets",
			`{"amount":40000,"period":"monthly","start_date":"2024-01-01T00:00:00Z","categories":[]}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on invalid period", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{}, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/workspaces/1/budgets",
			`{"amount":40000,"period":"fortnightly","start_date":"2024-01-01T00:00:00Z","categories":[3]}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on category conflict", func(t *testing.T) {
		budgetSvc := &mockBudgetService{
			createBudgetFn: func(_, _ uint, _ string, _ int64, _ models.BudgetPeriod, _ time.Time, _ *time.Time, _ []uint) (*models.Budget, error) {
				return nil, apperrors.ErrCategoryConflict
			},
		}
		handler := NewBudgetHandler(budgetSvc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/workspaces/1/budgets",
			`{"amount":40000,"period":"monthly","start_date":"2024-01-01T00:00:00Z","categories":[3]}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CATEGORY_CONFLICT")
	})
}

func TestBudgetHandler_GetBudget(t *testing.T) {
	t.Run("returns 404 when not found", func(t *testing.T) {
		budgetSvc := &mockBudgetService{
			getBudgetByIDFn: func(_, _ uint) (*models.Budget, error) {
				return nil, apperrors.ErrBudgetNotFound
			},
		}
		handler := NewBudgetHandler(budgetSvc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/workspaces/1/budgets/99", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "BUDGET_NOT_FOUND")
	})

	t.Run("returns 400 on non-numeric id", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{}, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/workspaces/1/budgets/abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestBudgetHandler_UpdateBudget(t *testing.T) {
	t.Run("passes only provided fields", func(t *testing.T) {
		budgetSvc := &mockBudgetService{
			updateBudgetFn: func(_, budgetID uint, name *string, amount *int64, budgetPeriod *models.BudgetPeriod, startDate, _ *time.Time, categoryIDs []uint) (*models.Budget, error) {
				if budgetID != 5 {
					t.Errorf("expected budget 5, got %d", budgetID)
				}
				if name != nil {
					t.Errorf("expected nil name, got %q", *name)
				}
				if amount == nil || *amount != 50000 {
					t.Errorf("expected amount 50000, got %v", amount)
				}
				if budgetPeriod != nil || categoryIDs != nil {
					t.Error("expected nil period and categories")
				}
				if startDate != nil {
					t.Errorf("expected nil start date, got %v", *startDate)
				}
				return &models.Budget{Base: models.Base{ID: budgetID}, Amount: 50000}, nil
			},
		}
		handler := NewBudgetHandler(budgetSvc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "PATCH", "/workspaces/1/budgets/5", `{"amount":50000}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("passes a new start date through", func(t *testing.T) {
		budgetSvc := &mockBudgetService{
			updateBudgetFn: func(_, _ uint, _ *string, _ *int64, _ *models.BudgetPeriod, startDate, _ *time.Time, _ []uint) (*models.Budget, error) {
				want := time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)
				if startDate == nil || !startDate.Equal(want) {
					t.Errorf("expected start date %v, got %v", want, startDate)
				}
				return &models.Budget{Base: models.Base{ID: 5}, StartDate: want}, nil
			},
		}
		handler := NewBudgetHandler(budgetSvc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "PATCH", "/workspaces/1/budgets/5", `{"start_date":"2024-02-15T00:00:00Z"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 on conflicting re-categorization", func(t *testing.T) {
		budgetSvc := &mockBudgetService{
			updateBudgetFn: func(_, _ uint, _ *string, _ *int64, _ *models.BudgetPeriod, _, _ *time.Time, _ []uint) (*models.Budget, error) {
				return nil, apperrors.ErrCategoryConflict
			},
		}
		handler := NewBudgetHandler(budgetSvc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "PATCH", "/workspaces/1/budgets/5", `{"categories":[7]}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CATEGORY_CONFLICT")
	})
}

func TestBudgetHandler_DeleteBudget(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		called := false
		budgetSvc := &mockBudgetService{
			deleteBudgetFn: func(_, budgetID uint) error {
				called = true
				if budgetID != 5 {
					t.Errorf("expected budget 5, got %d", budgetID)
				}
				return nil
			},
		}
		handler := NewBudgetHandler(budgetSvc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "DELETE", "/workspaces/1/budgets/5", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !called {
			t.Error("expected DeleteBudget to be called")
		}
	})
}

func TestBudgetHandler_GetBudgetProgress(t *testing.T) {
	t.Run("parses range and returns progress", func(t *testing.T) {
		budgetSvc := &mockBudgetService{
			getBudgetProgressFn: func(workspaceID, budgetID uint, from, to *time.Time) ([]services.BudgetProgress, error) {
				if workspaceID != 1 || budgetID != 5 {
					t.Errorf("expected workspace 1 budget 5, got %d %d", workspaceID, budgetID)
				}
				if from == nil || !from.Equal(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)) {
					t.Errorf("unexpected from: %v", from)
				}
				if to == nil || !to.Equal(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)) {
					t.Errorf("unexpected to: %v", to)
				}
				return []services.BudgetProgress{
					{
						BudgetID:    5,
						Amount:      40000,
						PeriodStart: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
						PeriodEnd:   time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
						Spent:       20000,
						Remaining:   20000,
						PercentUsed: 50,
					},
				}, nil
			},
		}
		handler := NewBudgetHandler(budgetSvc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET",
			"/workspaces/1/budgets/5/progress?from=2024-01-01T00:00:00Z&to=2024-03-01T00:00:00Z", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		progress := result["progress"].([]interface{})
		if len(progress) != 1 {
			t.Fatalf("expected 1 progress entry, got %d", len(progress))
		}
		entry := progress[0].(map[string]interface{})
		if entry["percent_used"] != float64(50) {
			t.Errorf("expected percent_used 50, got %v", entry["percent_used"])
		}
	})

	t.Run("passes nil range when absent", func(t *testing.T) {
		budgetSvc := &mockBudgetService{
			getBudgetProgressFn: func(_, _ uint, from, to *time.Time) ([]services.BudgetProgress, error) {
				if from != nil || to != nil {
					t.Errorf("expected nil range, got %v %v", from, to)
				}
				return nil, nil
			},
		}
		handler := NewBudgetHandler(budgetSvc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/workspaces/1/budgets/5/progress", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on malformed timestamp", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{}, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/workspaces/1/budgets/5/progress?from=yesterday", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 404 when budget not found", func(t *testing.T) {
		budgetSvc := &mockBudgetService{
			getBudgetProgressFn: func(_, _ uint, _, _ *time.Time) ([]services.BudgetProgress, error) {
				return nil, apperrors.ErrBudgetNotFound
			},
		}
		handler := NewBudgetHandler(budgetSvc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/workspaces/1/budgets/99/progress", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestBudgetHandler_GetWorkspaceProgress(t *testing.T) {
	t.Run("returns progress keyed by budget", func(t *testing.T) {
		budgetSvc := &mockBudgetService{
			getWorkspaceProgressFn: func(workspaceID uint, _, _ *time.Time) (map[uint][]services.BudgetProgress, error) {
				if workspaceID != 1 {
					t.Errorf("expected workspace 1, got %d", workspaceID)
				}
				return map[uint][]services.BudgetProgress{
					5: {{BudgetID: 5, Spent: 2000}},
					6: {{BudgetID: 6, Spent: 8000}},
				}, nil
			},
		}
		handler := NewBudgetHandler(budgetSvc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/workspaces/1/budgets/progress", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		progress := result["progress"].(map[string]interface{})
		if len(progress) != 2 {
			t.Errorf("expected 2 budgets, got %d", len(progress))
		}
	})
}
