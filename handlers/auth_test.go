package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"testing"

	"admin-console/middleware"
	"admin-console/remote"
	"admin-console/session"

	"github.com/gin-gonic/gin"
)

type fakeOperatorSession struct {
	LoginFn     func(email, password string) (*remote.User, error)
	LogoutErr   error
	user        *remote.User
	token       string
	logins      int
	LogoutCalls int
}

func (f *fakeOperatorSession) Login(ctx context.Context, email, password string) (*remote.User, error) {
	user, err := f.LoginFn(email, password)
	if err != nil {
		return nil, err
	}
	f.logins++
	f.user = user
	f.token = "tok-" + strconv.Itoa(f.logins)
	return user, nil
}

func (f *fakeOperatorSession) Logout(ctx context.Context) error {
	f.LogoutCalls++
	f.user = nil
	f.token = ""
	return f.LogoutErr
}

func (f *fakeOperatorSession) Token() string { return f.token }

func (f *fakeOperatorSession) Authenticate(token string) (*remote.User, bool) {
	if f.user == nil || token == "" || token != f.token {
		return nil, false
	}
	return f.user, true
}

func setupAuthRouter(sess *fakeOperatorSession) *gin.Engine {
	handler := &AuthHandler{Session: sess}
	r := gin.New()
	r.POST("/api/auth/login", handler.Login)
	r.POST("/api/auth/logout", middleware.RequireSession(sess), handler.Logout)
	r.GET("/api/auth/me", middleware.RequireSession(sess), handler.Me)
	return r
}

func adminLogin(email, password string) (*remote.User, error) {
	if password != "correct-horse" {
		return nil, &remote.APIError{StatusCode: http.StatusUnauthorized, Message: "Invalid email or password"}
	}
	return &remote.User{ID: "a1", Email: email, Role: "ADMIN"}, nil
}

func bearer(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func loginToken(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := serve(router, jsonRequest("POST", "/api/auth/login", map[string]string{
		"email": "admin@test.com", "password": "correct-horse",
	}))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	token, _ := parseResponse(w)["token"].(string)
	if token == "" {
		t.Fatalf("expected a token in the login response, got %s", w.Body.String())
	}
	return token
}

func TestLoginSuccess(t *testing.T) {
	sess := &fakeOperatorSession{LoginFn: adminLogin}
	router := setupAuthRouter(sess)

	w := serve(router, jsonRequest("POST", "/api/auth/login", map[string]string{
		"email": "admin@test.com", "password": "correct-horse",
	}))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(w)
	user, _ := resp["user"].(map[string]interface{})
	if user["email"] != "admin@test.com" {
		t.Errorf("expected user in response, got %v", resp)
	}
	if resp["token"] != sess.token {
		t.Errorf("expected session token %q in response, got %v", sess.token, resp["token"])
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	router := setupAuthRouter(&fakeOperatorSession{LoginFn: adminLogin})

	w := serve(router, jsonRequest("POST", "/api/auth/login", map[string]string{
		"email": "admin@test.com", "password": "wrong",
	}))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
	if parseResponse(w)["error"] != "Invalid credentials" {
		t.Errorf("unexpected error %v", parseResponse(w)["error"])
	}
}

func TestLoginValidation(t *testing.T) {
	router := setupAuthRouter(&fakeOperatorSession{LoginFn: adminLogin})

	w := serve(router, jsonRequest("POST", "/api/auth/login", map[string]string{"email": "not-an-email"}))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestLoginNonAdminRejected(t *testing.T) {
	sess := &fakeOperatorSession{LoginFn: func(string, string) (*remote.User, error) {
		return nil, session.ErrNotAdmin
	}}
	router := setupAuthRouter(sess)

	w := serve(router, jsonRequest("POST", "/api/auth/login", map[string]string{
		"email": "customer@test.com", "password": "whatever",
	}))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", w.Code)
	}
	if _, ok := parseResponse(w)["token"]; ok {
		t.Error("a rejected login must not return a token")
	}
	if sess.LogoutCalls != 0 {
		t.Error("a rejected login must not end the current session")
	}
}

func TestLoginBackendDown(t *testing.T) {
	router := setupAuthRouter(&fakeOperatorSession{LoginFn: func(string, string) (*remote.User, error) {
		return nil, errors.New("dial tcp: connection refused")
	}})

	w := serve(router, jsonRequest("POST", "/api/auth/login", map[string]string{
		"email": "admin@test.com", "password": "correct-horse",
	}))
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", w.Code)
	}
}

func TestMeRequiresToken(t *testing.T) {
	sess := &fakeOperatorSession{LoginFn: adminLogin}
	router := setupAuthRouter(sess)

	if w := serve(router, jsonRequest("GET", "/api/auth/me", nil)); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 before login, got %d", w.Code)
	}

	token := loginToken(t, router)
	if w := serve(router, bearer(jsonRequest("GET", "/api/auth/me", nil), token)); w.Code != http.StatusOK {
		t.Fatalf("expected status 200 with the token, got %d", w.Code)
	}
	if w := serve(router, jsonRequest("GET", "/api/auth/me", nil)); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without the token after login, got %d", w.Code)
	}
}

func TestLogoutRequiresToken(t *testing.T) {
	sess := &fakeOperatorSession{LoginFn: adminLogin}
	router := setupAuthRouter(sess)
	token := loginToken(t, router)

	if w := serve(router, jsonRequest("POST", "/api/auth/logout", nil)); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 for an anonymous logout, got %d", w.Code)
	}
	if sess.LogoutCalls != 0 || sess.user == nil {
		t.Fatal("an anonymous logout must not end the session")
	}

	if w := serve(router, bearer(jsonRequest("POST", "/api/auth/logout", nil), token)); w.Code != http.StatusOK {
		t.Fatalf("expected status 200 on logout, got %d", w.Code)
	}
	if w := serve(router, bearer(jsonRequest("GET", "/api/auth/me", nil), token)); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 after logout, got %d", w.Code)
	}
}
