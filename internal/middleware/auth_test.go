package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"itravelly/internal/domain"
	"itravelly/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testRouter(jwtSvc *jwt.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Auth(jwtSvc), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": UserID(c),
			"role":    Role(c),
		})
	})
	r.GET("/admin", Auth(jwtSvc), AdminOnly(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/superadmin", Auth(jwtSvc), SuperadminOnly(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuth_ValidToken(t *testing.T) {
	jwtSvc := jwt.New("test-secret", time.Hour)
	token, err := jwtSvc.GenerateToken(42, "user@example.com", "client")
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	testRouter(jwtSvc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":42`)
	assert.Contains(t, w.Body.String(), `"role":"client"`)
}

func TestAuth_MissingHeader(t *testing.T) {
	jwtSvc := jwt.New("test-secret", time.Hour)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)

	testRouter(jwtSvc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_BadToken(t *testing.T) {
	jwtSvc := jwt.New("test-secret", time.Hour)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")

	testRouter(jwtSvc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_WrongSecret(t *testing.T) {
	jwtSvc := jwt.New("test-secret", time.Hour)
	other := jwt.New("other-secret", time.Hour)
	token, err := other.GenerateToken(42, "user@example.com", "client")
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	testRouter(jwtSvc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	jwtSvc := jwt.New("test-secret", time.Hour)
	r := testRouter(jwtSvc)

	cases := []struct {
		role string
		want int
	}{
		{"client", http.StatusForbidden},
		{"admin", http.StatusOK},
		{"superadmin", http.StatusOK}, // outranks admin
		{"bogus", http.StatusForbidden},
	}

	for _, tc := range cases {
		token, err := jwtSvc.GenerateToken(1, "user@example.com", tc.role)
		assert.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, tc.want, w.Code, "role %s", tc.role)
	}
}

func TestSuperadminOnly(t *testing.T) {
	jwtSvc := jwt.New("test-secret", time.Hour)
	r := testRouter(jwtSvc)

	cases := []struct {
		role string
		want int
	}{
		{"client", http.StatusForbidden},
		{"admin", http.StatusForbidden},
		{"superadmin", http.StatusOK},
	}

	for _, tc := range cases {
		token, err := jwtSvc.GenerateToken(1, "user@example.com", tc.role)
		assert.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/superadmin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, tc.want, w.Code, "role %s", tc.role)
	}
}

type staticCorporateResolver struct {
	corp *domain.Corporate
	err  error
}

func (s staticCorporateResolver) GetByUserID(context.Context, int64) (*domain.Corporate, error) {
	return s.corp, s.err
}

func TestCorporateContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtSvc := jwt.New("test-secret", time.Hour)

	newRouter := func(resolver CorporateResolver) *gin.Engine {
		r := gin.New()
		r.GET("/corp", Auth(jwtSvc), CorporateContext(resolver), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"corporate_id": CorporateID(c)})
		})
		return r
	}

	token, err := jwtSvc.GenerateToken(1, "andes@example.com", "admin")
	assert.NoError(t, err)

	t.Run("resolved", func(t *testing.T) {
		r := newRouter(staticCorporateResolver{corp: &domain.Corporate{ID: 3, IsActive: true}})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/corp", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"corporate_id":3`)
	})

	t.Run("inactive corporate", func(t *testing.T) {
		r := newRouter(staticCorporateResolver{corp: &domain.Corporate{ID: 3, IsActive: false}})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/corp", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("no corporate", func(t *testing.T) {
		r := newRouter(staticCorporateResolver{err: assert.AnError})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/corp", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
