package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dealerdesk/dealerdesk/internal/middleware"
	"github.com/dealerdesk/dealerdesk/internal/models"
	"github.com/dealerdesk/dealerdesk/internal/service"
	"github.com/dealerdesk/dealerdesk/internal/session"
)

// fakeAuthService implements AuthService for testing.
type fakeAuthService struct {
	registerUser     *models.User
	registerErr      error
	authenticateUser *models.User
	authenticateErr  error
	loadUser         *models.User
	loadErr          error
}

func (f *fakeAuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	return f.registerUser, f.registerErr
}

func (f *fakeAuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	return f.authenticateUser, f.authenticateErr
}

func (f *fakeAuthService) Load(ctx context.Context, id int64) (*models.User, error) {
	return f.loadUser, f.loadErr
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		service        *fakeAuthService
		expectedCode   int
		expectedSubstr string
	}{
		{
			name:           "invalid JSON",
			body:           `not a json`,
			service:        &fakeAuthService{},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "invalid request",
		},
		{
			name:           "empty username",
			body:           `{"username":"","email":"a@b.c","password":"pw"}`,
			service:        &fakeAuthService{},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "invalid request",
		},
		{
			name:           "missing email",
			body:           `{"username":"alice","password":"pw"}`,
			service:        &fakeAuthService{},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "invalid request",
		},
		{
			name:           "username taken",
			body:           `{"username":"bob","email":"bob@example.com","password":"pw"}`,
			service:        &fakeAuthService{registerErr: service.ErrUsernameTaken},
			expectedCode:   http.StatusConflict,
			expectedSubstr: "username already taken",
		},
		{
			name:           "email taken",
			body:           `{"username":"carol","email":"taken@example.com","password":"pw"}`,
			service:        &fakeAuthService{registerErr: service.ErrEmailTaken},
			expectedCode:   http.StatusConflict,
			expectedSubstr: "email already registered",
		},
		{
			name:           "store error",
			body:           `{"username":"dave","email":"dave@example.com","password":"pw"}`,
			service:        &fakeAuthService{registerErr: errors.New("db down")},
			expectedCode:   http.StatusInternalServerError,
			expectedSubstr: "internal error",
		},
		{
			name:           "success",
			body:           `{"username":"erin","email":"erin@example.com","password":"pw"}`,
			service:        &fakeAuthService{registerUser: &models.User{ID: 1, Username: "erin"}},
			expectedCode:   http.StatusCreated,
			expectedSubstr: `"username":"erin"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/api/register", bytes.NewBufferString(tt.body))
			h := &AuthHandler{AuthService: tt.service, Sessions: session.NewStore(time.Hour)}
			h.Register(rec, req)
			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, res.StatusCode)
			}

			buf := new(bytes.Buffer)
			if _, err := buf.ReadFrom(res.Body); err != nil {
				t.Fatalf("failed to read body: %v", err)
			}
			if !bytes.Contains(buf.Bytes(), []byte(tt.expectedSubstr)) {
				t.Errorf("expected body to contain %q, got %q", tt.expectedSubstr, buf.String())
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		service      *fakeAuthService
		expectedCode int
		wantCookie   bool
	}{
		{
			name:         "invalid JSON",
			body:         `{`,
			service:      &fakeAuthService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "wrong credentials",
			body:         `{"username":"alice","password":"bad"}`,
			service:      &fakeAuthService{authenticateErr: service.ErrInvalidCredentials},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "store error",
			body:         `{"username":"alice","password":"pw"}`,
			service:      &fakeAuthService{authenticateErr: errors.New("db down")},
			expectedCode: http.StatusInternalServerError,
		},
		{
			name:         "successful login",
			body:         `{"username":"alice","password":"pw"}`,
			service:      &fakeAuthService{authenticateUser: &models.User{ID: 5, Username: "alice"}},
			expectedCode: http.StatusOK,
			wantCookie:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := session.NewStore(time.Hour)
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/api/login", bytes.NewBufferString(tt.body))
			h := &AuthHandler{AuthService: tt.service, Sessions: store}
			h.Login(rec, req)
			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.expectedCode {
				t.Fatalf("%s: expected status %d, got %d", tt.name, tt.expectedCode, res.StatusCode)
			}

			var sessionCookie *http.Cookie
			for _, c := range res.Cookies() {
				if c.Name == middleware.SessionCookieName {
					sessionCookie = c
				}
			}
			if tt.wantCookie {
				if sessionCookie == nil || sessionCookie.Value == "" {
					t.Fatal("expected session cookie to be set")
				}
				userID, ok := store.Resolve(sessionCookie.Value)
				if !ok || userID != 5 {
					t.Errorf("cookie token resolves to (%d, %v); want (5, true)", userID, ok)
				}
			} else if sessionCookie != nil {
				t.Errorf("unexpected session cookie: %v", sessionCookie)
			}
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	store := session.NewStore(time.Hour)
	sess := store.Create(9)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: sess.Token})
	h := &AuthHandler{AuthService: &fakeAuthService{}, Sessions: store}
	h.Logout(rec, req)
	res := rec.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.StatusCode)
	}
	if _, ok := store.Resolve(sess.Token); ok {
		t.Error("expected session to be revoked")
	}
}

func TestAuthHandler_Me(t *testing.T) {
	tests := []struct {
		name         string
		service      *fakeAuthService
		expectedCode int
	}{
		{
			name:         "user exists",
			service:      &fakeAuthService{loadUser: &models.User{ID: 3, Username: "gina"}},
			expectedCode: http.StatusOK,
		},
		{
			name:         "user deleted since login",
			service:      &fakeAuthService{},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "store error",
			service:      &fakeAuthService{loadErr: errors.New("db down")},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/api/me", nil)
			h := &AuthHandler{AuthService: tt.service, Sessions: session.NewStore(time.Hour)}
			h.Me(rec, req)
			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, res.StatusCode)
			}
			if tt.expectedCode == http.StatusOK {
				var u models.User
				if err := json.NewDecoder(res.Body).Decode(&u); err != nil {
					t.Fatalf("failed to decode JSON: %v", err)
				}
				if u.Username != "gina" {
					t.Errorf("expected username gina, got %q", u.Username)
				}
			}
		})
	}
}
