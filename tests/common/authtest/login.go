//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	"lashdiary/internal/handler/dto/request"
	"lashdiary/internal/pkg/cookie"
	"lashdiary/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// LoginUser signs in through the console endpoint and returns the access
// token taken from the session cookie.
func LoginUser(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login",
		request.LoginRequest{Email: email, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	accessCookie := httptest.ExtractCookie(w, cookie.AccessTokenCookieName)
	require.NotNil(t, accessCookie, "Access token not found in cookies")
	require.NotEmpty(t, accessCookie.Value, "Access token cookie is empty")

	return accessCookie.Value
}
