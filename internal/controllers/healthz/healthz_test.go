package healthz_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thaishare/backend/internal/controllers/healthz"
	"github.com/thaishare/backend/internal/models"
	"github.com/thaishare/backend/test"
)

func TestOptions(t *testing.T) {
	t.Parallel()

	recorder := httptest.NewRecorder()
	_, r := gin.CreateTestContext(recorder)
	healthz.NewController(nil).RegisterRoutes(r.Group("/healthz"))

	req, _ := http.NewRequest(http.MethodOptions, "http://example.com/healthz", nil)
	r.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, "OPTIONS, GET", recorder.Header().Get("allow"))
}

func TestGet(t *testing.T) {
	db, err := models.Connect(models.DriverSQLite, test.TmpFile(t))
	require.Nil(t, err)

	recorder := httptest.NewRecorder()
	_, r := gin.CreateTestContext(recorder)
	healthz.NewController(db).RegisterRoutes(r.Group("/healthz"))

	req, _ := http.NewRequest(http.MethodGet, "https://example.com/healthz", nil)
	r.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

func TestGetDatabaseClosed(t *testing.T) {
	db, err := models.Connect(models.DriverSQLite, test.TmpFile(t))
	require.Nil(t, err)

	sqlDB, _ := db.DB()
	sqlDB.Close()

	recorder := httptest.NewRecorder()
	_, r := gin.CreateTestContext(recorder)
	healthz.NewController(db).RegisterRoutes(r.Group("/healthz"))

	req, _ := http.NewRequest(http.MethodGet, "https://example.com/healthz", nil)
	r.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, test.DecodeError(t, recorder.Body.Bytes()), "an error occurred on the server")
}
