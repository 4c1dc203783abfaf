package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"derm-go/internal/middleware"
	"derm-go/internal/models"
	"derm-go/internal/repository"
	"derm-go/internal/service"
	"derm-go/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.InitValidator()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	userRepo := repository.NewUserRepository(db)
	jwtManager := utils.NewJWTManager("test-secret", "HS256", time.Hour)
	authService := service.NewAuthService(userRepo, jwtManager)
	authHandler := NewAuthHandler(authService)

	r := gin.New()
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)

	authorized := r.Group("")
	authorized.Use(middleware.AuthMiddleware(jwtManager))
	authorized.GET("/index", authHandler.Index)
	authorized.GET("/logout", authHandler.Logout)

	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerBody(username, email, password string) map[string]string {
	return map[string]string{
		"username":         username,
		"email":            email,
		"password":         password,
		"confirm_password": password,
	}
}

func TestRegisterLoginIndexFlow(t *testing.T) {
	r := newAuthRouter(t)

	w := postJSON(t, r, "/register", registerBody("alice", "a@x.com", "rightpw"))
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, r, "/login", map[string]string{"username": "alice", "password": "rightpw"})
	require.Equal(t, http.StatusOK, w.Code)

	var loginResp struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	require.NotEmpty(t, loginResp.Data.AccessToken)

	req := httptest.NewRequest("GET", "/index", nil)
	req.Header.Set("Authorization", "Bearer "+loginResp.Data.AccessToken)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)

	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Contains(t, w2.Body.String(), "alice")
}

func TestRegisterValidationCollectsFieldErrors(t *testing.T) {
	r := newAuthRouter(t)

	w := postJSON(t, r, "/register", map[string]string{
		"username":         "a",
		"email":            "bad",
		"password":         "123",
		"confirm_password": "456",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Errors, 4)
}

func TestRegisterDuplicateReturnsFieldError(t *testing.T) {
	r := newAuthRouter(t)

	w := postJSON(t, r, "/register", registerBody("alice", "a@x.com", "rightpw"))
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, r, "/register", registerBody("alice", "other@x.com", "rightpw"))
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Errors, "username")
}

func TestLoginFailureUniformMessage(t *testing.T) {
	r := newAuthRouter(t)

	w := postJSON(t, r, "/register", registerBody("alice", "a@x.com", "rightpw"))
	require.Equal(t, http.StatusOK, w.Code)

	wrongPw := postJSON(t, r, "/login", map[string]string{"username": "alice", "password": "wrongpw"})
	unknown := postJSON(t, r, "/login", map[string]string{"username": "nobody", "password": "rightpw"})

	assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, wrongPw.Body.String(), unknown.Body.String())
}

func TestIndexRequiresAuth(t *testing.T) {
	r := newAuthRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/index", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
