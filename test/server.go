package test

import (
	"bytes"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/thaishare/backend/internal/filestore"
	"github.com/thaishare/backend/internal/models"
	"github.com/thaishare/backend/internal/promptpay"
	"github.com/thaishare/backend/internal/router"
	"github.com/thaishare/backend/internal/service"
	"gorm.io/gorm"
)

// BaseURL is the external URL of test servers.
const BaseURL = "http://example.com"

// MaxUploadSize is the request size limit of test servers.
const MaxUploadSize = 64 << 10

// Now is the time returned by the clock of test servers.
var Now = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

// Server is a completely wired backend using temporary storage.
type Server struct {
	Router      *gin.Engine
	DB          *gorm.DB
	Shares      *service.ShareService
	Files       *filestore.Store
	EvidenceDir string
	QRDir       string
}

// NewServer sets up a backend with a fresh database and file store.
// It is torn down when the test finishes.
func NewServer(t *testing.T) Server {
	dir := t.TempDir()

	db, err := models.Connect(models.DriverSQLite, TmpFile(t))
	require.Nil(t, err, "Database connection failed")

	s := Server{
		DB:          db,
		EvidenceDir: filepath.Join(dir, "uploads"),
		QRDir:       filepath.Join(dir, "qrcodes"),
	}

	s.Files = filestore.New(s.EvidenceDir, s.QRDir)
	require.Nil(t, s.Files.Ensure())

	s.Shares = service.NewShareService(db, s.Files, promptpay.New(64), service.Config{
		MaxUploadSize:    MaxUploadSize,
		EvidencePatterns: []string{"*.png", "*.jpg", "*.jpeg"},
		Location:         time.UTC,
		Now:              func() time.Time { return Now },
	})

	baseURL, _ := url.Parse(BaseURL)
	r, teardown, err := router.Config(router.Options{BaseURL: baseURL})
	t.Cleanup(teardown)
	require.Nil(t, err, "Router could not be initialized")

	router.AttachRoutes(r.Group("/"), router.Dependencies{
		DB:            db,
		Shares:        s.Shares,
		Files:         s.Files,
		MaxUploadSize: MaxUploadSize,
	})
	s.Router = r

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return s
}

// Request makes a request against the server.
func (s Server) Request(t *testing.T, method, reqURL string, body any, headers ...map[string]string) httptest.ResponseRecorder {
	return Request(t, s.Router, method, reqURL, body, headers...)
}

// CloseDB closes the database connection. This enables testing the handling
// of database errors.
func (s Server) CloseDB(t *testing.T) {
	sqlDB, err := s.DB.DB()
	require.Nil(t, err, "Failed to get database resource")
	sqlDB.Close()
}

// ShareForm returns a valid multipart form for creating a share, with fields
// overridden by the ones passed in.
func ShareForm(t *testing.T, overrides map[string]string, files ...*FormFile) (*bytes.Buffer, map[string]string) {
	fields := map[string]string{
		"date":      "2025-03-01",
		"title":     "Dinner",
		"promptpay": "0801234567",
		"people":    "3",
		"amount":    "100",
	}

	for k, v := range overrides {
		fields[k] = v
	}

	return MultipartForm(t, fields, files...)
}
