package handler_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/LeonardoCto/myeconomyback/internal/domain"
	"github.com/LeonardoCto/myeconomyback/internal/repository"
	"github.com/LeonardoCto/myeconomyback/internal/transport/http/handler"
	"github.com/LeonardoCto/myeconomyback/internal/transport/http/middleware"
	"github.com/LeonardoCto/myeconomyback/internal/usecase"
	"github.com/gin-gonic/gin"
)

// fakeExpenseStore keeps expenses in a map so tests can observe exactly what
// was (or was not) persisted.
type fakeExpenseStore struct {
	expenses  map[string]*domain.Expense
	deleteErr error
}

func newFakeExpenseStore() *fakeExpenseStore {
	return &fakeExpenseStore{expenses: make(map[string]*domain.Expense)}
}

func (s *fakeExpenseStore) Create(_ context.Context, e *domain.Expense) (*domain.Expense, error) {
	out := *e
	out.ID = "3f0e8a1c-0000-0000-0000-000000000001"
	out.CreatedAt = time.Now()
	s.expenses[out.ID] = &out
	return &out, nil
}

func (s *fakeExpenseStore) FindByID(_ context.Context, id, userID string) (*domain.Expense, error) {
	e, ok := s.expenses[id]
	if !ok || e.UserID != userID {
		return nil, domain.ErrExpenseNotFound
	}
	return e, nil
}

func (s *fakeExpenseStore) ListByMonth(_ context.Context, userID string, month domain.Month) ([]*domain.Expense, error) {
	var out []*domain.Expense
	for _, e := range s.expenses {
		if e.UserID == userID && e.ReferenceMonth == month {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeExpenseStore) DeleteIfOpen(_ context.Context, id, userID string, current domain.Month) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	e, ok := s.expenses[id]
	if !ok || e.UserID != userID {
		return domain.ErrExpenseNotFound
	}
	if e.ReferenceMonth.Before(current) {
		return domain.ErrPastPeriod
	}
	delete(s.expenses, id)
	return nil
}

func (s *fakeExpenseStore) OverLimit(_ context.Context, _ domain.Month) ([]repository.CategorySpend, error) {
	return nil, nil
}

const principalID = "user-1"

func newExpenseEngine(store *fakeExpenseStore) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	h := handler.NewExpenseHandler(usecase.NewExpenseUsecase(store), logger)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		middleware.SetPrincipal(c, domain.Principal{Email: "test@example.com", UserID: principalID})
	})
	r.POST("/expense/create", h.Create)
	r.DELETE("/expense/delete/:id", h.Delete)
	r.GET("/expense/month/:month", h.ListByMonth)
	return r
}

func TestCreateExpense_PastMonth_Returns400AndWritesNothing(t *testing.T) {
	store := newFakeExpenseStore()

	w := postJSON(t, newExpenseEngine(store), "/expense/create",
		`{"description":"groceries","amount":120.5,"reference_month":"15-05-2020","category_id":"7a9f4b7e-1111-2222-3333-444455556666"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if len(store.expenses) != 0 {
		t.Errorf("store holds %d expenses after a rejected create, want 0", len(store.expenses))
	}
}

func TestCreateExpense_OpenMonth_PersistsSubmittedMonth(t *testing.T) {
	store := newFakeExpenseStore()

	// A far-future month is always open regardless of the wall clock.
	w := postJSON(t, newExpenseEngine(store), "/expense/create",
		`{"description":"groceries","amount":120.5,"reference_month":"01-06-2999","category_id":"7a9f4b7e-1111-2222-3333-444455556666"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", w.Code, w.Body.String())
	}
	if len(store.expenses) != 1 {
		t.Fatalf("store holds %d expenses, want 1", len(store.expenses))
	}
	for _, e := range store.expenses {
		if e.ReferenceMonth != (domain.Month{Year: 2999, Month: time.June}) {
			t.Errorf("persisted month %v != submitted month 2999-06", e.ReferenceMonth)
		}
		if e.UserID != principalID {
			t.Errorf("expense owner %q, want principal %q", e.UserID, principalID)
		}
	}
}

func TestCreateExpense_BadMonthFormat_Returns400(t *testing.T) {
	w := postJSON(t, newExpenseEngine(newFakeExpenseStore()), "/expense/create",
		`{"description":"groceries","amount":120.5,"reference_month":"2024-06-01","category_id":"7a9f4b7e-1111-2222-3333-444455556666"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestDeleteExpense_ClosedMonth_Returns400AndKeepsRecord(t *testing.T) {
	store := newFakeExpenseStore()
	store.expenses["exp-old"] = &domain.Expense{
		ID: "exp-old", UserID: principalID,
		ReferenceMonth: domain.Month{Year: 2020, Month: time.April},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/expense/delete/exp-old", nil)
	newExpenseEngine(store).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if _, ok := store.expenses["exp-old"]; !ok {
		t.Error("expense in a closed month was removed")
	}
}

func TestDeleteExpense_OpenMonth_Removes(t *testing.T) {
	store := newFakeExpenseStore()
	store.expenses["exp-new"] = &domain.Expense{
		ID: "exp-new", UserID: principalID,
		ReferenceMonth: domain.Month{Year: 2999, Month: time.June},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/expense/delete/exp-new", nil)
	newExpenseEngine(store).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if _, ok := store.expenses["exp-new"]; ok {
		t.Error("expense still present after delete")
	}
}

func TestDeleteExpense_Unknown_Returns404(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/expense/delete/no-such-id", nil)
	newExpenseEngine(newFakeExpenseStore()).ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestListExpenses_EmptyMonth_Returns404(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/expense/month/01-06-2024", nil)
	newExpenseEngine(newFakeExpenseStore()).ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestListExpenses_ScopedToPrincipal(t *testing.T) {
	store := newFakeExpenseStore()
	store.expenses["mine"] = &domain.Expense{
		ID: "mine", UserID: principalID, Description: "groceries",
		ReferenceMonth: domain.Month{Year: 2024, Month: time.June},
	}
	store.expenses["theirs"] = &domain.Expense{
		ID: "theirs", UserID: "user-2", Description: "secret",
		ReferenceMonth: domain.Month{Year: 2024, Month: time.June},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/expense/month/01-06-2024", nil)
	newExpenseEngine(store).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if strings.Contains(w.Body.String(), "secret") {
		t.Error("response leaks another user's expense")
	}
	if !strings.Contains(w.Body.String(), "groceries") {
		t.Error("response misses the principal's expense")
	}
}
