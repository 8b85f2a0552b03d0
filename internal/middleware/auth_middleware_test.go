package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appauth "github.com/sesa/portal/internal/app/auth"
	"github.com/sesa/portal/internal/app/models"
	"github.com/sesa/portal/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type roleReaderStub struct {
	roles map[int64][]models.AppRole
	err   error
}

func (s *roleReaderStub) GetRolesByUserID(ctx context.Context, userID int64) ([]models.AppRole, error) {
	return s.roles[userID], s.err
}

func (s *roleReaderStub) HasAnyRole(ctx context.Context, userID int64, wanted []models.AppRole) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	for _, held := range s.roles[userID] {
		for _, want := range wanted {
			if held == want {
				return true, nil
			}
		}
	}
	return false, nil
}

func testJWTService(accessExp time.Duration) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "portal-test",
	})
}

func issueToken(t *testing.T, jwtService *auth.JWTService, userID int64) string {
	t.Helper()
	user := &models.User{ID: userID, Email: "ada@sesa.org"}
	accessToken, _, _, _, err := jwtService.GenerateTokenPair(user, []models.AppRole{models.RoleStudent})
	require.NoError(t, err)
	return accessToken
}

func protectedRouter(mw *AuthMiddleware) *gin.Engine {
	router := gin.New()
	router.GET("/protected", mw.JWTAuth(), func(c *gin.Context) {
		userID := c.GetInt64("userID")
		c.JSON(http.StatusOK, gin.H{"userId": userID})
	})
	router.GET("/optional", mw.OptionalJWTAuth(), func(c *gin.Context) {
		if userID, ok := c.Get("userID"); ok {
			c.JSON(http.StatusOK, gin.H{"userId": userID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"anonymous": true})
	})
	router.GET("/admin", mw.JWTAuth(), mw.AdminRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func doRequest(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthMissingHeader(t *testing.T) {
	mw := NewAuthMiddleware(testJWTService(time.Hour), appauth.NewAuthorizer(&roleReaderStub{}))
	rec := doRequest(protectedRouter(mw), "/protected", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "AUTH_007")
}

func TestJWTAuthValidToken(t *testing.T) {
	jwtService := testJWTService(time.Hour)
	mw := NewAuthMiddleware(jwtService, appauth.NewAuthorizer(&roleReaderStub{}))

	rec := doRequest(protectedRouter(mw), "/protected", issueToken(t, jwtService, 42))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"userId":42`)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	expiredIssuer := testJWTService(-time.Minute)
	mw := NewAuthMiddleware(testJWTService(time.Hour), appauth.NewAuthorizer(&roleReaderStub{}))

	rec := doRequest(protectedRouter(mw), "/protected", issueToken(t, expiredIssuer, 42))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "AUTH_005")
}

func TestJWTAuthGarbageToken(t *testing.T) {
	mw := NewAuthMiddleware(testJWTService(time.Hour), appauth.NewAuthorizer(&roleReaderStub{}))
	rec := doRequest(protectedRouter(mw), "/protected", "not.a.jwt")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "AUTH_004")
}

func TestJWTAuthQueryFallback(t *testing.T) {
	jwtService := testJWTService(time.Hour)
	mw := NewAuthMiddleware(jwtService, appauth.NewAuthorizer(&roleReaderStub{}))
	router := protectedRouter(mw)

	req := httptest.NewRequest(http.MethodGet, "/protected?token="+issueToken(t, jwtService, 42), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOptionalJWTAuth(t *testing.T) {
	jwtService := testJWTService(time.Hour)
	mw := NewAuthMiddleware(jwtService, appauth.NewAuthorizer(&roleReaderStub{}))
	router := protectedRouter(mw)

	t.Run("anonymous passes through", func(t *testing.T) {
		rec := doRequest(router, "/optional", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "anonymous")
	})

	t.Run("valid token resolves user", func(t *testing.T) {
		rec := doRequest(router, "/optional", issueToken(t, jwtService, 42))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"userId":42`)
	})

	t.Run("garbage token treated as anonymous", func(t *testing.T) {
		rec := doRequest(router, "/optional", "not.a.jwt")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "anonymous")
	})
}

func TestAdminRequired(t *testing.T) {
	jwtService := testJWTService(time.Hour)

	t.Run("admin role passes", func(t *testing.T) {
		roles := &roleReaderStub{roles: map[int64][]models.AppRole{42: {models.RoleSuperAdmin}}}
		mw := NewAuthMiddleware(jwtService, appauth.NewAuthorizer(roles))

		rec := doRequest(protectedRouter(mw), "/admin", issueToken(t, jwtService, 42))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("student is rejected", func(t *testing.T) {
		roles := &roleReaderStub{roles: map[int64][]models.AppRole{42: {models.RoleStudent}}}
		mw := NewAuthMiddleware(jwtService, appauth.NewAuthorizer(roles))

		rec := doRequest(protectedRouter(mw), "/admin", issueToken(t, jwtService, 42))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "AUTH_009")
	})

	t.Run("role lookup failure is a server error", func(t *testing.T) {
		roles := &roleReaderStub{err: errors.New("connection refused")}
		mw := NewAuthMiddleware(jwtService, appauth.NewAuthorizer(roles))

		rec := doRequest(protectedRouter(mw), "/admin", issueToken(t, jwtService, 42))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("no token is unauthorized before role check", func(t *testing.T) {
		roles := &roleReaderStub{roles: map[int64][]models.AppRole{42: {models.RoleSuperAdmin}}}
		mw := NewAuthMiddleware(jwtService, appauth.NewAuthorizer(roles))

		rec := doRequest(protectedRouter(mw), "/admin", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
