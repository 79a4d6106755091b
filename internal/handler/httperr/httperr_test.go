//go:build unit

package httperr_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-checkout/internal/handler/httperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbortWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	cause := errors.New("connection refused")

	httperr.AbortWithError(c, http.StatusInternalServerError, cause, "Error fetching order", map[string]string{"id": "42"})

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Error fetching order","detail":{"id":"42"}}`, w.Body.String())

	require.Len(t, c.Errors, 1)
	public := c.Errors.ByType(gin.ErrorTypePublic)
	require.Len(t, public, 1, "error must stay public so the error middleware can log it")
	assert.ErrorIs(t, public[0].Err, cause)

	resp, ok := public[0].Meta.(httperr.Response)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
	assert.Equal(t, "Error fetching order", resp.Message)
}

func TestAbortWithError_NilErrorPanics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Panics(t, func() {
		httperr.AbortWithError(c, http.StatusBadRequest, nil, "Invalid request format", nil)
	})
}

func TestAbort(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	httperr.Abort(c, http.StatusUnauthorized, "Not authorized, no token")

	assert.True(t, c.IsAborted())
	assert.Empty(t, c.Errors)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Not authorized, no token"}`, w.Body.String())
}
