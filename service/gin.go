//go:build gin

package service

import (
	"bufio"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Gin returns Gin handlers for POST /count and POST /enumerate. Build with
// -tags=gin to enable.
//
//	countHandler, enumerateHandler := service.Gin(svc)
//	r.POST("/count", countHandler)
//	r.POST("/enumerate", enumerateHandler)
func Gin(svc *Service) (count, enumerate gin.HandlerFunc) {
	count = func(c *gin.Context) {
		var req Request
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, errorBody(err))
			c.Abort()
			return
		}
		resp, err := svc.Count(req)
		if err != nil {
			c.JSON(statusFor(err), errorBody(err))
			c.Abort()
			return
		}
		c.JSON(http.StatusOK, resp)
	}
	enumerate = func(c *gin.Context) {
		var req Request
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, errorBody(err))
			c.Abort()
			return
		}
		c.Header("Content-Type", "text/plain; charset=utf-8")
		bw := bufio.NewWriter(c.Writer)
		sink := func(s string) {
			bw.WriteString(s)
			bw.WriteByte('\n')
			bw.Flush()
			c.Writer.Flush()
		}
		if err := svc.Enumerate(req, sink); err != nil {
			bw.Flush()
			c.Writer.Write([]byte("error: " + err.Error() + "\n"))
			return
		}
		bw.Flush()
	}
	return count, enumerate
}
