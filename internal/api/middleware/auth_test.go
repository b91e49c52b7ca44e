package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TCM-VisitService/internal/domain"
)

func callAuth(t *testing.T, userID, role string) (*httptest.ResponseRecorder, int64, domain.ActorRole, bool) {
	t.Helper()

	var (
		gotUserID int64
		gotRole   domain.ActorRole
		called    bool
	)
	handler := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		gotUserID, _ = GetUserID(r.Context())
		gotRole, _ = GetUserRole(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/1", nil)
	if userID != "" {
		req.Header.Set(HeaderUserID, userID)
	}
	if role != "" {
		req.Header.Set(HeaderUserRole, role)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, gotUserID, gotRole, called
}

func TestAuth_ValidHeaders(t *testing.T) {
	rec, userID, role, called := callAuth(t, "100", "operator")

	require.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(100), userID)
	assert.Equal(t, domain.RoleOperator, role)
}

func TestAuth_MissingUserID(t *testing.T) {
	rec, _, _, called := callAuth(t, "", "")

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_InvalidUserID(t *testing.T) {
	for _, raw := range []string{"abc", "0", "-5"} {
		rec, _, _, called := callAuth(t, raw, "")
		assert.False(t, called, "user id %q", raw)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
}

func TestAuth_UnknownRoleCoercedToPilgrim(t *testing.T) {
	// Привилегии оператора не выдаются без явного заголовка
	for _, raw := range []string{"", "admin", "Operator"} {
		_, _, role, called := callAuth(t, "100", raw)
		require.True(t, called)
		assert.Equal(t, domain.RolePilgrim, role, "role header %q", raw)
	}
}

func TestGetUserID_MissingFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := GetUserID(req.Context())
	assert.False(t, ok)

	_, ok = GetUserRole(req.Context())
	assert.False(t, ok)
}
