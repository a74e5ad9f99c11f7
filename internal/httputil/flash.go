package httputil

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	flashCookie = "thaishare_flash"
	flashKey    = "flashes"
)

// Flash categories
const (
	FlashOK    = "ok"
	FlashError = "error"
)

// Flash is a notice shown once on the next rendered page.
type Flash struct {
	Category string `json:"c"`
	Message  string `json:"m"`
}

// AddFlash queues a notice for the next page the client requests.
func AddFlash(c *gin.Context, category, message string) {
	var flashes []Flash
	if v, ok := c.Get(flashKey); ok {
		flashes = v.([]Flash)
	}
	flashes = append(flashes, Flash{Category: category, Message: message})
	c.Set(flashKey, flashes)

	b, err := json.Marshal(flashes)
	if err != nil {
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, base64.RawURLEncoding.EncodeToString(b), 0, "/", "", false, true)
}

// Flashes returns the queued notices and clears them.
//
// Cookies that cannot be decoded are discarded.
func Flashes(c *gin.Context) []Flash {
	value, err := c.Cookie(flashCookie)
	if err != nil || value == "" {
		return nil
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	b, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil
	}

	var flashes []Flash
	if err := json.Unmarshal(b, &flashes); err != nil {
		return nil
	}

	return flashes
}
