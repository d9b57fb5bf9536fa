package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MultipartSlack covers boundaries and part headers around the file itself
const MultipartSlack = 1 << 20

// LimitBody caps the request body at maxBytes plus multipart overhead, so an
// oversized upload fails while it is read instead of being spooled to disk.
// A non-positive maxBytes leaves the body alone.
func LimitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+MultipartSlack)
		}
		c.Next()
	}
}
