package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/modae/teamup/models"
	"github.com/modae/teamup/utils"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "middleware-test-secret")
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newAuthRouter() *gin.Engine {
	r := gin.New()
	r.GET("/protected", AuthRequired(), func(ctx *gin.Context) {
		uid, _ := ctx.Get(ContextUserIDKey)
		utils.Success(ctx, gin.H{"user_id": uid})
	})
	r.GET("/admin", AuthRequired(), AdminRequired(), func(ctx *gin.Context) {
		utils.Success(ctx, nil)
	})
	return r
}

func doGet(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequiredRejectsMissingHeader(t *testing.T) {
	w := doGet(newAuthRouter(), "/protected", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthRequiredRejectsMalformedHeader(t *testing.T) {
	r := newAuthRouter()
	for _, header := range []string{"Token abc", "Bearer", "Bearer  "} {
		if w := doGet(r, "/protected", header); w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, w.Code)
		}
	}
}

func TestAuthRequiredRejectsGarbageToken(t *testing.T) {
	w := doGet(newAuthRouter(), "/protected", "Bearer not-a-jwt")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthRequiredAcceptsValidToken(t *testing.T) {
	user := &models.User{ID: 42, Username: "jdoe", Nickname: "jay", Role: models.RoleUser}
	token, err := utils.GenerateToken(user, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	w := doGet(newAuthRouter(), "/protected", "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
}

func TestAuthRequiredRejectsBlacklistedToken(t *testing.T) {
	user := &models.User{ID: 43, Username: "leaver", Nickname: "lv", Role: models.RoleUser}
	token, err := utils.GenerateToken(user, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	utils.BlacklistToken(token, time.Now().Add(time.Hour))

	w := doGet(newAuthRouter(), "/protected", "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 after logout", w.Code)
	}
}

func TestAdminRequired(t *testing.T) {
	r := newAuthRouter()

	user := &models.User{ID: 1, Username: "plain", Nickname: "pl", Role: models.RoleUser}
	token, _ := utils.GenerateToken(user, time.Hour)
	if w := doGet(r, "/admin", "Bearer "+token); w.Code != http.StatusForbidden {
		t.Fatalf("user role on admin route: status = %d, want 403", w.Code)
	}

	admin := &models.User{ID: 2, Username: "root", Nickname: "rt", Role: models.RoleAdmin}
	adminToken, _ := utils.GenerateToken(admin, time.Hour)
	if w := doGet(r, "/admin", "Bearer "+adminToken); w.Code != http.StatusOK {
		t.Fatalf("admin role on admin route: status = %d, want 200", w.Code)
	}
}
