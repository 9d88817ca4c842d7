package api

import (
	"net/http"

	"ytautomation/web"

	"github.com/gin-gonic/gin"
)

// RegisterWebRoutes serves the browser UI.
func RegisterWebRoutes(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", web.Index)
	})
}
