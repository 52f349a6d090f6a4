package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/LeonardoCto/myeconomyback/internal/domain"
	"github.com/LeonardoCto/myeconomyback/internal/token"
	"github.com/LeonardoCto/myeconomyback/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testKey = "middleware-test-secret-32-chars!!!!!"

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeUserRepo struct {
	findByEmail func(ctx context.Context, email string) (*domain.User, error)
}

func (r *fakeUserRepo) Create(_ context.Context, _ *domain.User) (*domain.User, error) {
	panic("not used")
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findByEmail(ctx, email)
}

func (r *fakeUserRepo) FindByID(_ context.Context, _ string) (*domain.User, error) {
	panic("not used")
}

var knownUser = &domain.User{ID: "user-1", Email: "test@example.com"}

// newEngine builds a minimal gin engine with the Auth middleware protecting
// GET /protected. The handler writes the resolved principal so tests can
// assert it was attached.
func newEngine() *gin.Engine {
	users := &fakeUserRepo{
		findByEmail: func(_ context.Context, email string) (*domain.User, error) {
			if email != knownUser.Email {
				return nil, domain.ErrUserNotFound
			}
			return knownUser, nil
		},
	}

	r := gin.New()
	r.GET("/protected", middleware.Auth(token.NewManager([]byte(testKey)), users), func(c *gin.Context) {
		p := middleware.Principal(c)
		c.String(http.StatusOK, "%s:%s", p.UserID, p.Email)
	})
	return r
}

func serve(t *testing.T, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	newEngine().ServeHTTP(w, req)
	return w
}

func TestAuth_MissingHeader_Returns403(t *testing.T) {
	if w := serve(t, ""); w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestAuth_NonBearerScheme_Returns403(t *testing.T) {
	if w := serve(t, "Basic dXNlcjpwYXNz"); w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestAuth_InvalidToken_Returns403(t *testing.T) {
	if w := serve(t, "Bearer not.a.jwt"); w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestAuth_ExpiredToken_Returns403(t *testing.T) {
	claims := jwt.MapClaims{
		"email": knownUser.Email,
		"iat":   time.Now().Add(-8 * time.Hour).Unix(),
		"exp":   time.Now().Add(-time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testKey))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if w := serve(t, "Bearer "+signed); w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestAuth_UnknownEmail_Returns403(t *testing.T) {
	signed, err := token.NewManager([]byte(testKey)).Issue("removed@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if w := serve(t, "Bearer "+signed); w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

// The gate must not let a caller distinguish a missing credential, a bad
// credential, and a recognized-but-unresolvable one.
func TestAuth_FailureModes_AreIndistinguishable(t *testing.T) {
	signedUnknown, err := token.NewManager([]byte(testKey)).Issue("removed@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	missing := serve(t, "")
	invalid := serve(t, "Bearer garbage")
	unknown := serve(t, "Bearer "+signedUnknown)

	for name, w := range map[string]*httptest.ResponseRecorder{
		"missing": missing, "invalid": invalid, "unknown": unknown,
	} {
		if w.Code != missing.Code {
			t.Errorf("%s: status %d differs from %d", name, w.Code, missing.Code)
		}
		if w.Body.String() != missing.Body.String() {
			t.Errorf("%s: body %q differs from %q", name, w.Body.String(), missing.Body.String())
		}
	}
}

func TestAuth_ValidToken_AttachesPrincipal(t *testing.T) {
	signed, err := token.NewManager([]byte(testKey)).Issue(knownUser.Email)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	w := serve(t, "Bearer "+signed)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if want := knownUser.ID + ":" + knownUser.Email; w.Body.String() != want {
		t.Errorf("principal = %q, want %q", w.Body.String(), want)
	}
}
