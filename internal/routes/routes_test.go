package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/codeRisshi25/UrbanPulse/internal/auth"
	"github.com/codeRisshi25/UrbanPulse/internal/controllers"
	"github.com/codeRisshi25/UrbanPulse/internal/models"
	"github.com/codeRisshi25/UrbanPulse/internal/service"
	"github.com/codeRisshi25/UrbanPulse/internal/store"
)

type fakeUsers struct {
	byNumber map[string]*models.User
	nextID   uint
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byNumber: make(map[string]*models.User), nextID: 1}
}

func (f *fakeUsers) FindByNumber(_ context.Context, number string) (*models.User, error) {
	return f.byNumber[number], nil
}

func (f *fakeUsers) FindByID(_ context.Context, id uint) (*models.User, error) {
	for _, u := range f.byNumber {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) CreateWithRole(_ context.Context, name, number, passwordHash, role string) (*models.User, error) {
	if _, ok := f.byNumber[number]; ok {
		return nil, store.ErrDuplicateNumber
	}
	user := &models.User{Name: name, Number: number, Password: passwordHash}
	user.ID = f.nextID
	f.nextID++
	if role == models.RoleDriver {
		user.Driver = &models.Driver{UserID: user.ID}
	} else {
		user.Rider = &models.Rider{UserID: user.ID}
	}
	f.byNumber[number] = user
	return user, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

func newTestRouter(t *testing.T) (*gin.Engine, *fakeUsers) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := newFakeUsers()
	tokens := auth.NewTokenService("test-secret")
	svc := service.NewAuthService(users, auth.NewHasher(4), tokens)

	r := SetupRouter(Deps{
		Auth:       controllers.NewAuthController(svc),
		User:       controllers.NewUserController(svc),
		Health:     controllers.NewHealthController(nil, nil),
		Tokens:     tokens,
		Production: true,
	})
	return r, users
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return w, env
}

var registerAda = map[string]string{
	"name":     "Ada",
	"number":   "+12025550123",
	"password": "longpassword1",
	"role":     "driver",
}

func TestRegisterEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/auth/register", "", registerAda)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", w.Code, w.Body.String())
	}
	if !env.Success {
		t.Fatal("success = false, want true")
	}

	var data struct {
		Token string `json:"token"`
		User  struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Token == "" {
		t.Error("data.token is empty")
	}
	if data.User.Role != "driver" {
		t.Errorf("data.user.role = %q, want driver", data.User.Role)
	}

	// Same number again: idempotent rejection.
	w, env = doJSON(t, r, http.MethodPost, "/auth/register", "", registerAda)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate status = %d, want 400", w.Code)
	}
	if env.Success {
		t.Error("duplicate success = true, want false")
	}
}

func TestRegisterValidationFailure(t *testing.T) {
	r, users := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/auth/register", "", map[string]string{
		"name":     "A",
		"number":   "nope",
		"password": "short",
		"role":     "pilot",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if len(env.Errors) == 0 {
		t.Fatal("expected field-level errors")
	}
	if len(users.byNumber) != 0 {
		t.Errorf("store holds %d users after rejected registration, want 0", len(users.byNumber))
	}
}

func TestLoginEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	if w, _ := doJSON(t, r, http.MethodPost, "/auth/register", "", registerAda); w.Code != http.StatusCreated {
		t.Fatalf("register status = %d", w.Code)
	}

	w, env := doJSON(t, r, http.MethodPost, "/auth/login", "", map[string]string{
		"number": "+12025550123", "password": "longpassword1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}
	if !env.Success {
		t.Fatal("success = false, want true")
	}

	// Wrong password and unknown number must be indistinguishable.
	wWrong, envWrong := doJSON(t, r, http.MethodPost, "/auth/login", "", map[string]string{
		"number": "+12025550123", "password": "wrongpassword",
	})
	wUnknown, envUnknown := doJSON(t, r, http.MethodPost, "/auth/login", "", map[string]string{
		"number": "+19995550000", "password": "longpassword1",
	})
	if wWrong.Code != http.StatusUnauthorized || wUnknown.Code != http.StatusUnauthorized {
		t.Fatalf("statuses = %d/%d, want 401/401", wWrong.Code, wUnknown.Code)
	}
	if envWrong.Message != envUnknown.Message {
		t.Errorf("messages differ: %q vs %q", envWrong.Message, envUnknown.Message)
	}
}

func TestProtectedRoutes(t *testing.T) {
	r, users := newTestRouter(t)

	w, _ := doJSON(t, r, http.MethodGet, "/user/profile", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: status = %d, want 401", w.Code)
	}

	_, env := doJSON(t, r, http.MethodPost, "/auth/register", "", registerAda)
	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}

	w, env = doJSON(t, r, http.MethodGet, "/user/profile", data.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("profile status = %d, want 200; body %s", w.Code, w.Body.String())
	}
	var profile struct {
		Role string `json:"role"`
	}
	if err := json.Unmarshal(env.Data, &profile); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if profile.Role != "driver" {
		t.Errorf("profile role = %q, want driver", profile.Role)
	}

	w, env = doJSON(t, r, http.MethodGet, "/user/me", data.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me status = %d, want 200", w.Code)
	}
	var me struct {
		Number string `json:"number"`
		Role   string `json:"role"`
	}
	if err := json.Unmarshal(env.Data, &me); err != nil {
		t.Fatalf("decode me: %v", err)
	}
	if me.Number != "+12025550123" || me.Role != "driver" {
		t.Errorf("me = %+v, want number=+12025550123 role=driver", me)
	}

	// Valid token for a user that no longer exists.
	delete(users.byNumber, "+12025550123")
	w, _ = doJSON(t, r, http.MethodGet, "/user/profile", data.Token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("deleted user profile status = %d, want 404", w.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !env.Success {
		t.Error("success = false, want true")
	}
	var raw map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if _, ok := raw["timestamp"]; !ok {
		t.Error("missing timestamp")
	}
}

func TestUnknownRoute(t *testing.T) {
	r, _ := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodGet, "/nope", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if env.Success {
		t.Error("success = true, want false")
	}
}
