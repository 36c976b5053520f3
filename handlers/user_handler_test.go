package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/handlers"
	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/middleware"
	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/models"
	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/services"
)

type fakeUserService struct {
	services.UserService

	users         map[int]*models.User
	changeRoleErr error
}

func (f *fakeUserService) GetByID(_ context.Context, id int) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, services.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserService) ChangeRole(_ context.Context, _ *models.User, id int, role models.UserRole) (*models.User, error) {
	if f.changeRoleErr != nil {
		return nil, f.changeRoleErr
	}
	user, ok := f.users[id]
	if !ok {
		return nil, services.ErrUserNotFound
	}
	copied := *user
	copied.Role = role
	return &copied, nil
}

func newUserRouter(svc *fakeUserService) chi.Router {
	h := handlers.NewUserHandler(svc)
	r := chi.NewRouter()
	r.Get("/users/me", h.Me)
	r.Get("/users/{userID}", h.Get)
	r.Put("/users/{userID}/role", h.ChangeRole)
	return r
}

func authenticatedRequest(method, target string, body string, userID int, role models.UserRole) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req.WithContext(middleware.WithUserClaims(req.Context(), userID, role))
}

func TestMeReturnsCurrentUser(t *testing.T) {
	svc := &fakeUserService{users: map[int]*models.User{
		5: {ID: 5, Email: "alice@example.com", FullName: "Alice", Role: models.RolePlayer},
	}}
	router := newUserRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authenticatedRequest(http.MethodGet, "/users/me", "", 5, models.RolePlayer))

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		User models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Equal(t, 5, payload.User.ID)
	require.Equal(t, "alice@example.com", payload.User.Email)
}

func TestGetUserInvalidID(t *testing.T) {
	router := newUserRouter(&fakeUserService{users: map[int]*models.User{}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/abc", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUserNotFound(t *testing.T) {
	router := newUserRouter(&fakeUserService{users: map[int]*models.User{}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/99", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChangeRoleForbiddenMapsTo403(t *testing.T) {
	svc := &fakeUserService{
		users: map[int]*models.User{
			5: {ID: 5, Role: models.RoleAdmin},
			9: {ID: 9, Role: models.RolePlayer},
		},
		changeRoleErr: services.ErrForbiddenOperation,
	}
	router := newUserRouter(svc)

	rec := httptest.NewRecorder()
	req := authenticatedRequest(http.MethodPut, "/users/9/role", `{"role":"admin"}`, 5, models.RoleAdmin)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestChangeRoleSucceeds(t *testing.T) {
	svc := &fakeUserService{users: map[int]*models.User{
		1: {ID: 1, Role: models.RoleMaster},
		9: {ID: 9, Role: models.RolePlayer},
	}}
	router := newUserRouter(svc)

	rec := httptest.NewRecorder()
	req := authenticatedRequest(http.MethodPut, "/users/9/role", `{"role":"admin"}`, 1, models.RoleMaster)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		User models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Equal(t, models.RoleAdmin, payload.User.Role)
}
