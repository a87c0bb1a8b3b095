package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"admin-console/database"
	"admin-console/localstore"
	"admin-console/logger"
	"admin-console/middleware"
	"admin-console/promotions"
	"admin-console/remote"
	"admin-console/session"

	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.SetGlobalLogger(logger.Nop())
	os.Exit(m.Run())
}

// fakeAPI answers the handful of backend endpoints the route tests touch.
type fakeAPI struct {
	mu        sync.Mutex
	role      string
	revoked   bool
	lastAuth  string
	mediaHits int
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastAuth = r.Header.Get("Authorization")
	w.Header().Set("Content-Type", "application/json")

	if f.revoked && r.URL.Path != "/auth/login" {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(gin.H{"success": false, "message": "Token expired"})
		return
	}

	switch r.URL.Path {
	case "/auth/login":
		var creds struct {
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(gin.H{"success": false, "message": "Invalid email or password"})
			return
		}
		json.NewEncoder(w).Encode(gin.H{"success": true, "token": "tok-123"})
	case "/users/me":
		json.NewEncoder(w).Encode(gin.H{"success": true, "data": gin.H{"id": "a1", "email": "admin@test.com", "role": f.role}})
	case "/api/categories":
		json.NewEncoder(w).Encode(gin.H{"success": true, "data": []gin.H{}})
	case "/api/media":
		f.mediaHits++
		json.NewEncoder(w).Encode(gin.H{"success": true, "data": gin.H{"id": "m1"}})
	default:
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(gin.H{"success": false, "message": "Not found"})
	}
}

type testApp struct {
	router *gin.Engine
	api    *fakeAPI
	sess   *session.Session
	slots  localstore.Store
	token  string
}

func setupApp(t *testing.T, role string) *testApp {
	api := &fakeAPI{role: role}
	server := httptest.NewServer(api)
	t.Cleanup(server.Close)

	db, err := database.Connect(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatal(err)
	}
	slots := localstore.NewGormStore(db)

	client := remote.New(server.URL, 2*time.Second)
	sess := session.New(slots, remote.NewAuthService(client))
	client.SetTokenSource(sess)
	client.OnUnauthorized(sess.Clear)

	store := promotions.NewStore(slots, remote.NewMediaService(client), promotions.WithLogger(logger.Nop()))
	if err := store.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	limiter := middleware.NewRateLimiter(3, time.Minute)
	t.Cleanup(limiter.Stop)

	r := gin.New()
	SetupRoutes(r, Dependencies{
		Session:      sess,
		Promotions:   store,
		Remote:       client,
		LoginLimiter: limiter,
	})
	return &testApp{router: r, api: api, sess: sess, slots: slots}
}

func (a *testApp) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// do sends the request with the token from the last successful login.
func (a *testApp) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	return a.request(method, path, a.token, body)
}

// anon sends the request without any credential.
func (a *testApp) anon(method, path string, body interface{}) *httptest.ResponseRecorder {
	return a.request(method, path, "", body)
}

func (a *testApp) loginWith(password string) *httptest.ResponseRecorder {
	w := a.anon("POST", "/api/auth/login", map[string]string{"email": "admin@test.com", "password": password})
	if w.Code == http.StatusOK {
		var resp struct {
			Token string `json:"token"`
		}
		json.Unmarshal(w.Body.Bytes(), &resp)
		a.token = resp.Token
	}
	return w
}

func (a *testApp) login(t *testing.T) *httptest.ResponseRecorder {
	t.Helper()
	return a.loginWith("secret")
}

func summerPromotion() map[string]string {
	return map[string]string{
		"title":     "Summer",
		"videoUrl":  "https://cdn.example.com/summer.mp4",
		"startDate": "2026-06-01",
		"endDate":   "2026-06-30",
	}
}

func TestHealthCheck(t *testing.T) {
	app := setupApp(t, "ADMIN")
	w := app.anon("GET", "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAdminRoutesRequireSession(t *testing.T) {
	app := setupApp(t, "ADMIN")

	for _, path := range []string{
		"/api/admin/promotions",
		"/api/admin/categories",
		"/api/admin/users",
		"/api/admin/dashboard/overview",
		"/api/auth/me",
	} {
		if w := app.anon("GET", path, nil); w.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", path, w.Code)
		}
	}
}

func TestLoginThenAdminRoutes(t *testing.T) {
	app := setupApp(t, "ADMIN")

	if w := app.login(t); w.Code != http.StatusOK {
		t.Fatalf("expected login 200, got %d: %s", w.Code, w.Body.String())
	}
	if app.token != "tok-123" {
		t.Fatalf("expected the backend token in the login response, got %q", app.token)
	}
	if raw, err := app.slots.Get(context.Background(), session.TokenSlot); err != nil || string(raw) != "tok-123" {
		t.Fatalf("expected token persisted, got %q (%v)", raw, err)
	}

	w := app.do("GET", "/api/admin/promotions", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = app.do("GET", "/api/admin/categories", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if app.api.lastAuth != "Bearer tok-123" {
		t.Errorf("expected bearer token forwarded, got %q", app.api.lastAuth)
	}
}

func TestAnonymousRequestsRejectedWhileSignedIn(t *testing.T) {
	app := setupApp(t, "ADMIN")
	app.login(t)

	if w := app.anon("POST", "/api/admin/promotions", summerPromotion()); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for an anonymous create, got %d", w.Code)
	}
	if app.api.mediaHits != 0 {
		t.Error("an anonymous request must not reach the backend")
	}
	if w := app.request("GET", "/api/admin/promotions", "not-the-token", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for a wrong token, got %d", w.Code)
	}
	if w := app.anon("GET", "/api/auth/me", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for an anonymous /me, got %d", w.Code)
	}

	if w := app.anon("POST", "/api/auth/logout", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for an anonymous logout, got %d", w.Code)
	}
	if !app.sess.Active() {
		t.Fatal("an anonymous logout must not end the session")
	}
	if w := app.do("GET", "/api/admin/promotions", nil); w.Code != http.StatusOK {
		t.Errorf("expected the admin to stay signed in, got %d", w.Code)
	}
}

func TestFailedLoginKeepsSession(t *testing.T) {
	app := setupApp(t, "ADMIN")
	app.login(t)
	token := app.token

	if w := app.loginWith("wrong"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad credentials, got %d: %s", w.Code, w.Body.String())
	}
	if !app.sess.Active() {
		t.Fatal("a failed login must not end the current session")
	}
	if w := app.request("GET", "/api/admin/promotions", token, nil); w.Code != http.StatusOK {
		t.Errorf("expected the existing token to keep working, got %d", w.Code)
	}
}

func TestLogout(t *testing.T) {
	app := setupApp(t, "ADMIN")
	app.login(t)

	if w := app.do("POST", "/api/auth/logout", nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if app.sess.Active() {
		t.Error("expected the session to end")
	}
	if w := app.do("GET", "/api/admin/promotions", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 after logout, got %d", w.Code)
	}
}

func TestCreatePromotionThroughRoutes(t *testing.T) {
	app := setupApp(t, "ADMIN")
	app.login(t)

	w := app.do("POST", "/api/admin/promotions", summerPromotion())
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if app.api.mediaHits != 1 {
		t.Errorf("expected one media create, got %d", app.api.mediaHits)
	}

	w = app.do("POST", "/api/admin/promotions/reload", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected reload 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestNonAdminLoginRejected(t *testing.T) {
	app := setupApp(t, "PROVIDER")

	if w := app.login(t); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
	if app.sess.Active() {
		t.Error("non-admin session must not become active")
	}
	if _, err := app.slots.Get(context.Background(), session.TokenSlot); err == nil {
		t.Error("non-admin token must not be persisted")
	}
}

func TestBackendUnauthorizedEndsSession(t *testing.T) {
	app := setupApp(t, "ADMIN")
	app.login(t)

	app.api.mu.Lock()
	app.api.revoked = true
	app.api.mu.Unlock()

	if w := app.do("GET", "/api/admin/categories", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected backend 401 passed through, got %d", w.Code)
	}
	if app.sess.Active() {
		t.Fatal("session must be cleared after a backend 401")
	}
	if w := app.do("GET", "/api/admin/promotions", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 once the session is gone, got %d", w.Code)
	}
}

func TestLoginRateLimited(t *testing.T) {
	app := setupApp(t, "ADMIN")

	var last int
	for i := 0; i < 4; i++ {
		last = app.login(t).Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("expected 429 on the fourth attempt, got %d", last)
	}
}
