package router_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thaishare/backend/internal/router"
	"github.com/thaishare/backend/test"
)

func TestPprofOn(t *testing.T) {
	url, _ := url.Parse("http://example.com")

	r, teardown, err := router.Config(router.Options{BaseURL: url, EnablePprof: true})
	defer teardown()
	assert.Nil(t, err, "Error on router initialization")

	var routes []string
	for _, r := range r.Routes() {
		routes = append(routes, r.Path)
	}
	assert.Contains(t, routes, "/debug/pprof/")
}

func TestPprofOff(t *testing.T) {
	s := test.NewServer(t)

	for _, r := range s.Router.Routes() {
		assert.NotContains(t, r.Path, "pprof", "pprof routes are registered erroneously! Route: %s", r)
	}
}

// TestCorsSetting checks that setting of CORS works.
func TestCorsSetting(t *testing.T) {
	url, _ := url.Parse("http://example.com")

	r, teardown, err := router.Config(router.Options{
		BaseURL:          url,
		CORSAllowOrigins: []string{"http://localhost:3000", "https://example.com"},
	})
	defer teardown()
	require.Nil(t, err)

	r.GET("/", func(c *gin.Context) {})

	recorder := test.Request(t, r, http.MethodOptions, "http://example.com/", nil, map[string]string{
		"Origin":                        "http://localhost:3000",
		"Access-Control-Request-Method": "GET",
	})
	assert.Equal(t, "http://localhost:3000", recorder.Header().Get("Access-Control-Allow-Origin"))
}

func TestConfigTwice(t *testing.T) {
	url, _ := url.Parse("http://example.com")

	_, teardown, err := router.Config(router.Options{BaseURL: url})
	require.Nil(t, err)

	_, teardownSecond, err := router.Config(router.Options{BaseURL: url})
	defer teardownSecond()
	assert.NotNil(t, err, "metrics must not be registered twice")

	teardown()
	_, teardownThird, err := router.Config(router.Options{BaseURL: url})
	defer teardownThird()
	assert.Nil(t, err, "metrics must be registrable again after teardown")
}

func TestGetVersion(t *testing.T) {
	s := test.NewServer(t)

	r := s.Request(t, http.MethodGet, "http://example.com/version", nil)
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var response router.VersionResponse
	test.DecodeResponse(t, &r, &response)
	assert.Equal(t, "0.0.0", response.Data.Version)

	r = s.Request(t, http.MethodOptions, "http://example.com/version", nil)
	test.AssertHTTPStatus(t, &r, http.StatusNoContent)
	assert.Equal(t, "OPTIONS, GET", r.Header().Get("allow"))
}

func TestGetV1(t *testing.T) {
	s := test.NewServer(t)

	r := s.Request(t, http.MethodGet, "http://example.com/v1", nil)
	test.AssertHTTPStatus(t, &r, http.StatusOK)
	assert.JSONEq(t, `{"links": {"shares": "http://example.com/v1/shares"}}`, r.Body.String())

	r = s.Request(t, http.MethodOptions, "http://example.com/v1", nil)
	test.AssertHTTPStatus(t, &r, http.StatusNoContent)
}

func TestHealthz(t *testing.T) {
	s := test.NewServer(t)

	r := s.Request(t, http.MethodGet, "http://example.com/healthz", nil)
	test.AssertHTTPStatus(t, &r, http.StatusNoContent)
}

func TestDocs(t *testing.T) {
	s := test.NewServer(t)

	r := s.Request(t, http.MethodGet, "http://example.com/docs/doc.json", nil)
	test.AssertHTTPStatus(t, &r, http.StatusOK)
	assert.Contains(t, r.Body.String(), `"/v1/shares"`)

	r = s.Request(t, http.MethodGet, "http://example.com/docs/index.html", nil)
	test.AssertHTTPStatus(t, &r, http.StatusOK)
	assert.Contains(t, r.Header().Get("Content-Type"), "text/html")
}

func TestMetrics(t *testing.T) {
	s := test.NewServer(t)

	body, headers := test.ShareForm(t, nil)
	r := s.Request(t, http.MethodPost, "http://example.com/v1/shares", body, headers)
	test.AssertHTTPStatus(t, &r, http.StatusCreated)

	r = s.Request(t, http.MethodGet, "http://example.com/v1/shares/1", nil)
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	r = s.Request(t, http.MethodGet, "http://example.com/metrics", nil)
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	metrics := r.Body.String()
	assert.Contains(t, metrics, "shares_created_total")
	assert.Contains(t, metrics, "shares_deleted_total")
	assert.Contains(t, metrics, `requests_total{code="200",method="GET",url="/v1/shares/:id"}`)
}
