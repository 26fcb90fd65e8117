package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JokeryEU/shoplistapp-server/internal/common"
	"github.com/JokeryEU/shoplistapp-server/internal/logging"
	"github.com/JokeryEU/shoplistapp-server/internal/server/auth"
	"github.com/JokeryEU/shoplistapp-server/internal/server/models"
	"github.com/JokeryEU/shoplistapp-server/internal/server/repositories/repomanager"
	"github.com/JokeryEU/shoplistapp-server/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	t       *testing.T
	now     time.Time
	rm      *repomanager.MemoryRepositoryManager
	users   *services.UserService
	lists   *services.ListService
	handler http.Handler
}

func newTestEnv(t *testing.T, secure bool) *testEnv {
	t.Helper()
	env := &testEnv{t: t, now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}

	codec, err := auth.NewCodec("access-secret", "refresh-secret", 24*time.Hour, 7*24*time.Hour,
		auth.WithClock(func() time.Time { return env.now }))
	require.NoError(t, err)

	env.rm = repomanager.NewMemoryRepositoryManager()
	env.users = services.NewUserService(nil, env.rm, codec, auth.NewHasher(bcrypt.MinCost))
	env.lists = services.NewListService(nil, env.rm)
	env.handler = NewHTTPServer("127.0.0.1:0", logging.Discard(), env.users, env.lists, secure).Router()
	return env
}

func (e *testEnv) do(method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(e.t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// register signs up email and returns its access and refresh cookies.
func (e *testEnv) register(email string) (access, refresh *http.Cookie) {
	e.t.Helper()
	rec := e.do(http.MethodPost, "/auth/register", map[string]string{"email": email, "password": "longenough1"})
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())
	return cookiesOf(e.t, rec)
}

func cookiesOf(t *testing.T, rec *httptest.ResponseRecorder) (access, refresh *http.Cookie) {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		switch c.Name {
		case common.AccessTokenCookieName:
			access = c
		case common.RefreshTokenCookieName:
			refresh = c
		}
	}
	return access, refresh
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t, false)
	rec := env.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestRegister_SetsCookiesAndStoresRefreshToken(t *testing.T) {
	env := newTestEnv(t, false)

	rec := env.do(http.MethodPost, "/auth/register",
		`{"email":" A@X.com ","password":"longenough1","role":"Admin"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	raw := rec.Body.String()
	assert.NotContains(t, raw, "password")
	assert.NotContains(t, raw, "refreshToken")

	var body struct {
		User models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &body))
	assert.Equal(t, "a@x.com", body.User.Email)
	assert.Equal(t, models.RoleUser, body.User.Role, "role is never taken from the request")

	access, refresh := cookiesOf(t, rec)
	require.NotNil(t, access)
	require.NotNil(t, refresh)
	assert.True(t, access.HttpOnly)
	assert.Equal(t, "/", access.Path)
	assert.False(t, access.Secure)
	assert.Equal(t, http.SameSiteLaxMode, access.SameSite)
	assert.Equal(t, int((24 * time.Hour).Seconds()), access.MaxAge)
	assert.Equal(t, int((7 * 24 * time.Hour).Seconds()), refresh.MaxAge)

	stored, err := env.rm.Users(nil).GetByID(context.Background(), body.User.ID)
	require.NoError(t, err)
	assert.Equal(t, refresh.Value, stored.RefreshToken)
}

func TestRegister_ProductionCookies(t *testing.T) {
	env := newTestEnv(t, true)
	access, refresh := env.register("a@x.com")

	for _, c := range []*http.Cookie{access, refresh} {
		assert.True(t, c.Secure)
		assert.True(t, c.HttpOnly)
		assert.Equal(t, http.SameSiteNoneMode, c.SameSite)
	}
}

func TestRegister_Validation(t *testing.T) {
	env := newTestEnv(t, false)

	rec := env.do(http.MethodPost, "/auth/register", map[string]string{"email": "not-an-email", "password": "short"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeError(t, rec)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	paths := make([]string, 0, len(resp.Details))
	for _, d := range resp.Details {
		paths = append(paths, d.Path)
	}
	assert.ElementsMatch(t, []string{"email", "password"}, paths)

	rec = env.do(http.MethodPost, "/auth/register", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t, false)
	env.register("a@x.com")

	rec := env.do(http.MethodPost, "/auth/register", map[string]string{"email": "A@x.com", "password": "longenough1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, msgDuplicateEmail, decodeError(t, rec).Error)
}

func TestLogin_WrongPasswordSetsNoCookies(t *testing.T) {
	env := newTestEnv(t, false)
	env.register("a@x.com")

	for _, body := range []map[string]string{
		{"email": "a@x.com", "password": "wrong-password"},
		{"email": "nobody@x.com", "password": "longenough1"},
	} {
		rec := env.do(http.MethodPost, "/auth/login", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, rec.Result().Cookies())
		resp := decodeError(t, rec)
		assert.Equal(t, msgInvalidCredentials, resp.Error)
		assert.Empty(t, resp.Details)
	}
}

func TestLogin_Success(t *testing.T) {
	env := newTestEnv(t, false)
	env.register("a@x.com")

	rec := env.do(http.MethodPost, "/auth/login", map[string]string{"email": "A@X.COM", "password": "longenough1"})
	require.Equal(t, http.StatusOK, rec.Code)
	access, refresh := cookiesOf(t, rec)
	require.NotNil(t, access)
	require.NotNil(t, refresh)

	rec = env.do(http.MethodGet, "/users/profile", nil, access)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProtectedRoute_NoOrExpiredCookie(t *testing.T) {
	env := newTestEnv(t, false)
	access, _ := env.register("a@x.com")

	rec := env.do(http.MethodGet, "/users/profile", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, msgUnauthenticated, decodeError(t, rec).Error)

	env.now = env.now.Add(25 * time.Hour)
	rec = env.do(http.MethodGet, "/users/profile", nil, access)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefresh_RotatesAndReplayRevokes(t *testing.T) {
	env := newTestEnv(t, false)
	_, oldRefresh := env.register("a@x.com")

	rec := env.do(http.MethodPost, "/auth/refresh", nil, oldRefresh)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	newAccess, newRefresh := cookiesOf(t, rec)
	require.NotNil(t, newAccess)
	require.NotNil(t, newRefresh)
	assert.NotEqual(t, oldRefresh.Value, newRefresh.Value)

	rec = env.do(http.MethodPost, "/auth/refresh", nil, oldRefresh)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	cleared, clearedRefresh := cookiesOf(t, rec)
	require.NotNil(t, cleared)
	require.NotNil(t, clearedRefresh)
	assert.Negative(t, cleared.MaxAge)
	assert.Negative(t, clearedRefresh.MaxAge)
	assert.Equal(t, "/", cleared.Path)
	assert.True(t, cleared.HttpOnly)
	assert.Equal(t, msgInvalidRefresh, decodeError(t, rec).Error)

	rec = env.do(http.MethodPost, "/auth/refresh", nil, newRefresh)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "revocation must also kill the newest token")
}

func TestRefresh_MissingOrInvalidCookie(t *testing.T) {
	env := newTestEnv(t, false)

	rec := env.do(http.MethodPost, "/auth/refresh", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, msgUnauthenticated, decodeError(t, rec).Error)
	assert.Empty(t, rec.Result().Cookies())

	rec = env.do(http.MethodPost, "/auth/refresh", nil,
		&http.Cookie{Name: common.RefreshTokenCookieName, Value: "garbage"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, msgUnauthenticated, decodeError(t, rec).Error)
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t, false)
	access, refresh := env.register("a@x.com")

	rec := env.do(http.MethodPost, "/auth/logout", nil, access)
	require.Equal(t, http.StatusNoContent, rec.Code)
	a, r := cookiesOf(t, rec)
	require.NotNil(t, a)
	require.NotNil(t, r)
	assert.Negative(t, a.MaxAge)
	assert.Negative(t, r.MaxAge)

	rec = env.do(http.MethodPost, "/auth/refresh", nil, refresh)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodPost, "/auth/logout", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoleGate(t *testing.T) {
	env := newTestEnv(t, false)
	access, _ := env.register("a@x.com")

	for _, path := range []string{"/users", "/list"} {
		rec := env.do(http.MethodGet, path, nil, access)
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
		assert.Equal(t, msgForbidden, decodeError(t, rec).Error)
	}

	_, err := env.users.CreateAdmin(context.Background(), services.RegisterInput{Email: "root@x.com", Password: "longenough1"})
	require.NoError(t, err)
	rec := env.do(http.MethodPost, "/auth/login", map[string]string{"email": "root@x.com", "password": "longenough1"})
	require.Equal(t, http.StatusOK, rec.Code)
	adminAccess, _ := cookiesOf(t, rec)

	rec = env.do(http.MethodGet, "/users", nil, adminAccess)
	require.Equal(t, http.StatusOK, rec.Code)
	var users []models.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&users))
	assert.Len(t, users, 2)
}

func TestProfileUpdate(t *testing.T) {
	env := newTestEnv(t, false)
	access, _ := env.register("a@x.com")

	rec := env.do(http.MethodPut, "/users/profile", `{"firstName":"Ann","role":"Admin"}`, access)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	require.Len(t, resp.Details, 1)
	assert.Equal(t, "role", resp.Details[0].Path)

	rec = env.do(http.MethodPut, "/users/profile", `{"firstName":"Ann"}`, access)
	require.Equal(t, http.StatusOK, rec.Code)
	var u models.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&u))
	assert.Equal(t, "Ann", u.FirstName)
	assert.Equal(t, models.RoleUser, u.Role)
}

func createList(t *testing.T, env *testEnv, access *http.Cookie, title string) models.List {
	t.Helper()
	rec := env.do(http.MethodPost, "/list/user", map[string]string{"title": title, "icon": "cart"}, access)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var l models.List
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&l))
	return l
}

func TestListOwnership(t *testing.T) {
	env := newTestEnv(t, false)
	aAccess, _ := env.register("a@x.com")
	bAccess, _ := env.register("b@x.com")

	l := createList(t, env, aAccess, "Groceries")

	rec := env.do(http.MethodGet, "/list/"+l.ID, nil, aAccess)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodGet, "/list/"+l.ID, nil, bAccess)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	notYours := rec.Body.String()

	rec = env.do(http.MethodGet, "/list/5d7c0c1e-0000-4000-8000-000000000000", nil, bAccess)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, notYours, rec.Body.String(), "missing and not-owned must be indistinguishable")

	rec = env.do(http.MethodGet, "/list/not-a-uuid", nil, bAccess)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	require.Len(t, resp.Details, 1)
	assert.Equal(t, "id", resp.Details[0].Path)

	rec = env.do(http.MethodDelete, "/list/"+l.ID, nil, bAccess)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(http.MethodGet, "/list/"+l.ID, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListLifecycleAndInvites(t *testing.T) {
	env := newTestEnv(t, false)
	aAccess, _ := env.register("a@x.com")
	bAccess, _ := env.register("b@x.com")

	l := createList(t, env, aAccess, "Party")

	rec := env.do(http.MethodPut, "/list/"+l.ID, map[string]string{"title": "Big party"}, aAccess)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodPost, "/list/"+l.ID+"/invited", map[string]string{"email": "B@x.com"}, aAccess)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(http.MethodGet, "/list/user", nil, bAccess)
	require.Equal(t, http.StatusOK, rec.Code)
	var shared []models.List
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&shared))
	require.Len(t, shared, 1)
	assert.Equal(t, "Big party", shared[0].Title)

	rec = env.do(http.MethodPost, "/list/"+l.ID+"/invited", map[string]string{"email": "ghost@x.com"}, aAccess)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, msgUserNotFound, decodeError(t, rec).Error)

	rec = env.do(http.MethodDelete, "/list/"+l.ID+"/invited", map[string]string{"email": "b@x.com"}, aAccess)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodDelete, "/list/"+l.ID, nil, aAccess)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(http.MethodGet, "/list/"+l.ID, nil, aAccess)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateList_Validation(t *testing.T) {
	env := newTestEnv(t, false)
	access, _ := env.register("a@x.com")

	rec := env.do(http.MethodPost, "/list/user", map[string]string{"title": "   "}, access)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPost, "/list/user", map[string]string{"title": strings.Repeat("t", 101)}, access)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBodySizeLimit(t *testing.T) {
	env := newTestEnv(t, false)

	big := `{"email":"a@x.com","password":"` + strings.Repeat("p", maxRequestBodySize) + `"}`
	rec := env.do(http.MethodPost, "/auth/register", big)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	env := newTestEnv(t, false)
	s := NewHTTPServer("127.0.0.1:0", logging.Discard(), env.users, env.lists, false)

	h := s.recoveryMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, msgInternal, decodeError(t, rec).Error)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	env := newTestEnv(t, false)
	s := NewHTTPServer("127.0.0.1:0", logging.Discard(), env.users, env.lists, false)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	env := newTestEnv(t, false)
	s := NewHTTPServer("127.0.0.1:99999", logging.Discard(), env.users, env.lists, false)

	assert.Error(t, s.Run(context.Background()))
}

func TestListItems_OwnerFlow(t *testing.T) {
	env := newTestEnv(t, false)
	access, _ := env.register("a@x.com")

	rec := env.do(http.MethodPost, "/list/user", map[string]string{"title": "Groceries"}, access)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"items":[]`)
	var l models.List
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&l))

	rec = env.do(http.MethodPost, "/list/"+l.ID,
		`{"name":" Milk ","unit":"l","quantity":2,"isPinned":true}`, access)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&l))
	require.Len(t, l.Items, 1)
	milk := l.Items[0]
	assert.Equal(t, "Milk", milk.Name)
	assert.True(t, milk.IsPinned)
	require.NotNil(t, milk.Quantity)
	assert.Equal(t, 2.0, *milk.Quantity)

	rec = env.do(http.MethodPut, "/list/"+l.ID+"/item/"+milk.ID, `{"isCrossedOff":true}`, access)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&l))
	assert.True(t, l.Item(milk.ID).IsCrossedOff)
	assert.Equal(t, "Milk", l.Item(milk.ID).Name)

	rec = env.do(http.MethodPut, "/list/"+l.ID+"/item/abc", `{"isCrossedOff":true}`, access)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	require.Len(t, resp.Details, 1)
	assert.Equal(t, "itemId", resp.Details[0].Path)

	rec = env.do(http.MethodDelete, "/list/"+l.ID+"/item/"+milk.ID, nil, access)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(http.MethodDelete, "/list/"+l.ID+"/item/"+milk.ID, nil, access)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, msgItemNotFound, decodeError(t, rec).Error)

	rec = env.do(http.MethodGet, "/list/"+l.ID, nil, access)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"items":[]`)
}

func TestListItems_NonOwnerForbidden(t *testing.T) {
	env := newTestEnv(t, false)
	aAccess, _ := env.register("a@x.com")
	bAccess, _ := env.register("b@x.com")

	l := createList(t, env, aAccess, "Groceries")
	rec := env.do(http.MethodPost, "/list/"+l.ID, map[string]string{"name": "Milk"}, aAccess)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&l))
	itemPath := "/list/" + l.ID + "/item/" + l.Items[0].ID

	for _, tc := range []struct {
		method, path string
		body         any
	}{
		{http.MethodPost, "/list/" + l.ID, map[string]string{"name": "Eggs"}},
		{http.MethodPut, itemPath, map[string]bool{"isCrossedOff": true}},
		{http.MethodDelete, itemPath, nil},
	} {
		rec := env.do(tc.method, tc.path, tc.body, bAccess)
		assert.Equal(t, http.StatusForbidden, rec.Code, tc.method+" "+tc.path)
		assert.Equal(t, msgForbidden, decodeError(t, rec).Error)
	}

	got, err := env.lists.Get(context.Background(), l.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.False(t, got.Items[0].IsCrossedOff)
}

func TestListItems_Validation(t *testing.T) {
	env := newTestEnv(t, false)
	access, _ := env.register("a@x.com")
	l := createList(t, env, access, "Groceries")

	for _, body := range []string{
		`{"name":"   "}`,
		`{"name":"` + strings.Repeat("n", 121) + `"}`,
		`{"name":"Milk","unit":"` + strings.Repeat("u", 51) + `"}`,
		`{"name":"Milk","quantity":"lots"}`,
	} {
		rec := env.do(http.MethodPost, "/list/"+l.ID, body, access)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}

	rec := env.do(http.MethodPost, "/list/"+l.ID, map[string]string{"name": "Milk"}, access)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&l))

	rec = env.do(http.MethodPut, "/list/"+l.ID+"/item/"+l.Items[0].ID, `{"name":""}`, access)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	require.Len(t, resp.Details, 1)
	assert.Equal(t, "name", resp.Details[0].Path)
}

func TestRouterFallbacks_RenderErrorBody(t *testing.T) {
	env := newTestEnv(t, false)

	for _, tc := range []struct {
		method, path string
		status       int
		msg          string
	}{
		{http.MethodGet, "/nope", http.StatusNotFound, msgRouteNotFound},
		{http.MethodGet, "/auth/nope", http.StatusNotFound, msgRouteNotFound},
		{http.MethodPost, "/healthz", http.StatusMethodNotAllowed, msgMethodNotAllowed},
		{http.MethodGet, "/auth/login", http.StatusMethodNotAllowed, msgMethodNotAllowed},
	} {
		rec := env.do(tc.method, tc.path, nil)
		require.Equal(t, tc.status, rec.Code, tc.method+" "+tc.path)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		resp := decodeError(t, rec)
		assert.Equal(t, tc.status, resp.Status)
		assert.Equal(t, tc.msg, resp.Error)
	}
}

func TestRegister_LongEmailAccepted(t *testing.T) {
	env := newTestEnv(t, false)

	email := strings.Repeat("a", 45) + "@example.com"
	require.Greater(t, len(email), 50)
	access, _ := env.register(email)
	require.NotNil(t, access)

	rec := env.do(http.MethodPost, "/auth/login", map[string]string{"email": email, "password": "longenough1"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogin_Validation(t *testing.T) {
	env := newTestEnv(t, false)
	env.register("a@x.com")

	for _, tc := range []struct {
		body map[string]string
		path string
	}{
		{map[string]string{"email": "not-an-email", "password": "longenough1"}, "email"},
		{map[string]string{"email": "a@x.com", "password": "short"}, "password"},
	} {
		rec := env.do(http.MethodPost, "/auth/login", tc.body)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, rec.Result().Cookies())
		resp := decodeError(t, rec)
		require.Len(t, resp.Details, 1)
		assert.Equal(t, tc.path, resp.Details[0].Path)
	}
}
