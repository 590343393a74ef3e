package controllers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newStaticRouter(t *testing.T) *gin.Engine {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o644); err != nil {
		t.Fatal("failed to write index.html:", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log('app')"), 0o644); err != nil {
		t.Fatal("failed to write app.js:", err)
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewStaticController(testLogger{}, dir).RegisterRoutes(router)
	return router
}

func TestStatic_ServesExistingFiles(t *testing.T) {
	router := newStaticRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/app.js", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "console.log") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestStatic_FallsBackToEntryPoint(t *testing.T) {
	router := newStaticRouter(t)

	for _, path := range []string{"/", "/some/client/route", "/missing.png"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		if w.Code != http.StatusOK {
			t.Errorf("path %s: status = %d, want 200", path, w.Code)
		}
		if !strings.Contains(w.Body.String(), "<html>app</html>") {
			t.Errorf("path %s: expected the app entry point, got %s", path, w.Body.String())
		}
	}
}

func TestStatic_DoesNotEscapeStaticDir(t *testing.T) {
	router := newStaticRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/../../etc/passwd", nil))

	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "<html>app</html>") {
		t.Errorf("path traversal must fall back to the entry point, got status %d", w.Code)
	}
}
