package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/fatetable/internal/dependencies/mocks"
	"github.com/mcoot/fatetable/internal/model"
	"github.com/mcoot/fatetable/internal/testutil"
)

func serveWithIdentity(target string) (*httptest.ResponseRecorder, model.UserID) {
	random := mocks.NewMockRandom()
	random.QueueUUID("generated-user")

	var seen model.UserID
	handler := Identity(random)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = MustGetUser(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec, seen
}

func TestIdentityGeneratesUser(t *testing.T) {
	rec, user := serveWithIdentity("/table")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.UserID("generated-user"), user)
}

func TestIdentityResumesUser(t *testing.T) {
	_, user := serveWithIdentity("/table?user=p1")
	assert.Equal(t, model.UserID("p1"), user)
}

func TestIdentityRejectsLongUser(t *testing.T) {
	rec, user := serveWithIdentity("/table?user=" + strings.Repeat("x", 200))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, user)
}

func TestGetUserWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := GetUser(req.Context())
	assert.False(t, ok)
	assert.Panics(t, func() { MustGetUser(req.Context()) })
}

func TestRecoveryWritesJSON(t *testing.T) {
	handler := Recovery(testutil.NopLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
}
