package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const testJWTSecret = "test-secret"

func signToken(t *testing.T, sub string, userType string, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": sub,
		"exp": expiresAt.Unix(),
	}
	if userType != "" {
		claims["user_metadata"] = map[string]interface{}{"user_type": userType}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestAuthenticateMissingToken(t *testing.T) {
	m := newAuthMiddleware(testJWTSecret)
	handler := m.authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("should not reach handler")
	}))

	for _, header := range []string{"", "Bearer ", "Basic abc"} {
		req := httptest.NewRequest("GET", "/projects", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want %d", header, rec.Code, http.StatusUnauthorized)
		}
	}
}

func TestAuthenticateInvalidToken(t *testing.T) {
	m := newAuthMiddleware(testJWTSecret)
	handler := m.authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("should not reach handler")
	}))

	req := httptest.NewRequest("GET", "/projects", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthenticateWrongSecret(t *testing.T) {
	m := newAuthMiddleware(testJWTSecret)
	handler := m.authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("should not reach handler")
	}))

	claims := jwt.MapClaims{"sub": uuid.NewString(), "exp": time.Now().Add(time.Hour).Unix()}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest("GET", "/projects", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthenticateExpiredToken(t *testing.T) {
	m := newAuthMiddleware(testJWTSecret)
	handler := m.authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("should not reach handler")
	}))

	token := signToken(t, uuid.NewString(), "", time.Now().Add(-time.Hour))
	req := httptest.NewRequest("GET", "/projects", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthenticateBadSubject(t *testing.T) {
	m := newAuthMiddleware(testJWTSecret)
	handler := m.authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("should not reach handler")
	}))

	token := signToken(t, "not-a-uuid", "", time.Now().Add(time.Hour))
	req := httptest.NewRequest("GET", "/projects", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthenticateValidToken(t *testing.T) {
	m := newAuthMiddleware(testJWTSecret)
	userID := uuid.New()

	var gotSession Session
	handler := m.authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFromCtx(r.Context())
		if !ok {
			t.Fatal("expected session in request context")
		}
		gotSession = session
		w.WriteHeader(http.StatusOK)
	}))

	token := signToken(t, userID.String(), UserTypeBusiness, time.Now().Add(time.Hour))
	req := httptest.NewRequest("GET", "/projects", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if gotSession.UserID != userID {
		t.Errorf("UserID = %s, want %s", gotSession.UserID, userID)
	}
	if !gotSession.IsBusiness() {
		t.Errorf("UserType = %q, want %q", gotSession.UserType, UserTypeBusiness)
	}
}

func TestAuthenticateDefaultsToClient(t *testing.T) {
	m := newAuthMiddleware(testJWTSecret)

	var gotSession Session
	handler := m.authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSession, _ = sessionFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	token := signToken(t, uuid.NewString(), "", time.Now().Add(time.Hour))
	req := httptest.NewRequest("GET", "/projects", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if gotSession.UserType != UserTypeClient {
		t.Errorf("UserType = %q, want %q", gotSession.UserType, UserTypeClient)
	}
	if gotSession.IsBusiness() {
		t.Error("client session reported as business")
	}
}

func TestRequireBusiness(t *testing.T) {
	m := newAuthMiddleware(testJWTSecret)

	tests := []struct {
		name       string
		userType   string
		wantStatus int
	}{
		{"business passes", UserTypeBusiness, http.StatusOK},
		{"client forbidden", UserTypeClient, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := m.requireBusiness(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			session := Session{UserID: uuid.New(), UserType: tt.userType}
			req := httptest.NewRequest("PUT", "/store", nil)
			req = req.WithContext(ctxWithSession(req.Context(), session))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequireBusinessNoSession(t *testing.T) {
	m := newAuthMiddleware(testJWTSecret)
	handler := m.requireBusiness(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("should not reach handler")
	}))

	req := httptest.NewRequest("PUT", "/store", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
