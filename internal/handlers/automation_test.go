package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globalyuen/achievepack-sub004/internal/store"
)

func newAutomationHandler(t *testing.T) *AutomationHandler {
	t.Helper()
	db, err := store.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate())
	return &AutomationHandler{Store: db, Logger: testLogger()}
}

func TestAutomationDefaultsToDisabled(t *testing.T) {
	h := newAutomationHandler(t)

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/api/automation", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.JSONEq(t, `{"enabled":false}`, rec.Body.String())
}

func TestAutomationToggleRoundTrip(t *testing.T) {
	h := newAutomationHandler(t)

	rec := httptest.NewRecorder()
	h.Post(rec, httptest.NewRequest(http.MethodPost, "/api/automation", strings.NewReader(`{"enabled":true}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"enabled":true}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/api/automation", nil))
	assert.JSONEq(t, `{"enabled":true}`, rec.Body.String())
}

func TestAutomationRejectsNonBooleanPayload(t *testing.T) {
	h := newAutomationHandler(t)

	for _, body := range []string{`{}`, `{"enabled":"yes"}`, `{"enabled":1}`, `not json`} {
		rec := httptest.NewRecorder()
		h.Post(rec, httptest.NewRequest(http.MethodPost, "/api/automation", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body=%s", body)
	}
}

func TestAutomationOptionsPreflighted(t *testing.T) {
	h := newAutomationHandler(t)

	rec := httptest.NewRecorder()
	h.Options(rec, httptest.NewRequest(http.MethodOptions, "/api/automation", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}
