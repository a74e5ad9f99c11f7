// Package web serves the HTML pages for managing shares.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/thaishare/backend/internal/filestore"
	"github.com/thaishare/backend/internal/httputil"
	"github.com/thaishare/backend/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"money": func(d decimal.Decimal) string {
		return d.StringFixed(2)
	},
}

// Templates parses the templates for all pages.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

type Controller struct {
	shares        *service.ShareService
	files         *filestore.Store
	maxUploadSize int64
}

func NewController(shares *service.ShareService, files *filestore.Store, maxUploadSize int64) Controller {
	return Controller{
		shares:        shares,
		files:         files,
		maxUploadSize: maxUploadSize,
	}
}

func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/", co.Index)
	r.GET("/new", co.New)
	r.POST("/create", co.Create)
	r.GET("/share/:id", co.Detail)
	r.POST("/delete/:id", co.Delete)
	r.GET("/uploads/:filename", co.serveFile(filestore.Evidence))
	r.GET("/qrcodes/:filename", co.serveFile(filestore.QRCodes))
}

// render renders a page. Base and Flashes are always set.
func render(c *gin.Context, status int, name string, data gin.H) {
	data["Base"] = httputil.BaseURL(c)
	data["Flashes"] = httputil.Flashes(c)
	c.HTML(status, name, data)
}

func renderError(c *gin.Context, err error) {
	status := httputil.Status(err)

	title := "Something went wrong"
	if status == http.StatusNotFound {
		title = "Not found"
	}

	render(c, status, "error.html", gin.H{
		"Title":   title,
		"Message": httputil.ErrorMessage(c, err),
	})
}

// Index lists all shares.
func (co Controller) Index(c *gin.Context) {
	shares, err := co.shares.List(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}

	render(c, http.StatusOK, "index.html", gin.H{
		"Shares": shares,
	})
}

// New shows the form for a new share.
func (co Controller) New(c *gin.Context) {
	render(c, http.StatusOK, "new.html", gin.H{
		"Title": "New share",
		"Today": co.shares.Today().String(),
	})
}

// Create creates a share from the submitted form and redirects to it.
// If the input is not valid, the client is sent back to the form.
func (co Controller) Create(c *gin.Context) {
	in, closeEvidence, err := httputil.BindShareForm(c, co.maxUploadSize)
	defer closeEvidence()
	if err != nil {
		backToForm(c, err)
		return
	}

	share, err := co.shares.Create(c.Request.Context(), in)
	if err != nil {
		backToForm(c, err)
		return
	}

	httputil.AddFlash(c, httputil.FlashOK, "The share has been saved and its QR code is ready")
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("%s/share/%d", httputil.BaseURL(c), share.ID))
}

// backToForm redirects to the form with the error as notice.
// Server errors are rendered directly.
func backToForm(c *gin.Context, err error) {
	if httputil.Status(err) >= http.StatusInternalServerError {
		renderError(c, err)
		return
	}

	httputil.AddFlash(c, httputil.FlashError, httputil.ErrorMessage(c, err))
	c.Redirect(http.StatusSeeOther, httputil.BaseURL(c)+"/new")
}

// Detail shows a single share with its QR code.
func (co Controller) Detail(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		notFound(c)
		return
	}

	share, err := co.shares.Get(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}

	render(c, http.StatusOK, "detail.html", gin.H{
		"Title": share.Title,
		"Share": share,
	})
}

// Delete deletes a share and redirects to the list.
func (co Controller) Delete(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		notFound(c)
		return
	}

	err = co.shares.Delete(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}

	httputil.AddFlash(c, httputil.FlashOK, "The share has been deleted")
	c.Redirect(http.StatusSeeOther, httputil.BaseURL(c)+"/")
}

// serveFile returns a handler sending files of the namespace.
func (co Controller) serveFile(ns filestore.Namespace) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("filename")
		if !co.files.Exists(ns, name) {
			notFound(c)
			return
		}

		path, err := co.files.Path(ns, name)
		if err != nil {
			notFound(c)
			return
		}

		c.File(path)
	}
}

func notFound(c *gin.Context) {
	render(c, http.StatusNotFound, "error.html", gin.H{
		"Title":   "Not found",
		"Message": "The page you requested does not exist.",
	})
}
