package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// demoAssets is the fixed payload served by the unversioned demo
// endpoint. Clients depend on this exact shape: a bare JSON array with
// no response envelope.
var demoAssets = []byte(`[{"id":1,"name":"Tokenized Asset","value":"1000 USD"}]`)

// DemoAssets handles GET /api/assets. It exists for client smoke tests
// and returns a canned asset list outside the versioned API surface.
func DemoAssets(c *gin.Context) {
	c.Data(http.StatusOK, "application/json", demoAssets)
}
