package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"table-order/utils"

	"github.com/gin-gonic/gin"
)

func newAuthTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	table := router.Group("/")
	table.Use(TableAuthMiddleware())
	table.GET("/orders", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"table_id": c.GetInt("table_id")})
	})

	admin := router.Group("/admin")
	admin.Use(AdminAuthMiddleware())
	admin.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": c.GetString("username")})
	})

	return router
}

func TestTableAuthAcceptsTableToken(t *testing.T) {
	router := newAuthTestRouter()

	token, err := utils.GenerateTableToken(1, 7, "01")
	if err != nil {
		t.Fatalf("GenerateTableToken returned error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, http.StatusOK, w.Body.String())
	}
}

func TestTableAuthRejectsMissingHeader(t *testing.T) {
	router := newAuthTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestTableAuthRejectsBadFormat(t *testing.T) {
	router := newAuthTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Authorization", "Basic abc")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAdminRouteRejectsTableToken(t *testing.T) {
	router := newAuthTestRouter()

	token, err := utils.GenerateTableToken(1, 7, "01")
	if err != nil {
		t.Fatalf("GenerateTableToken returned error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
}

func TestAdminRouteAcceptsAdminToken(t *testing.T) {
	router := newAuthTestRouter()

	token, err := utils.GenerateAdminToken(1, "owner")
	if err != nil {
		t.Fatalf("GenerateAdminToken returned error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d (body %s)", w.Code, http.StatusOK, w.Body.String())
	}
}
