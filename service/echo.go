//go:build echo

package service

import (
	"bufio"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Echo returns Echo handlers for POST /count and POST /enumerate. Build with
// -tags=echo to enable.
//
//	countHandler, enumerateHandler := service.Echo(svc)
//	e.POST("/count", countHandler)
//	e.POST("/enumerate", enumerateHandler)
func Echo(svc *Service) (count, enumerate echo.HandlerFunc) {
	count = func(c echo.Context) error {
		var req Request
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, errorBody(err))
		}
		resp, err := svc.Count(req)
		if err != nil {
			return c.JSON(statusFor(err), errorBody(err))
		}
		return c.JSON(http.StatusOK, resp)
	}
	enumerate = func(c echo.Context) error {
		var req Request
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, errorBody(err))
		}
		c.Response().Header().Set("Content-Type", "text/plain; charset=utf-8")
		c.Response().WriteHeader(http.StatusOK)
		bw := bufio.NewWriter(c.Response())
		sink := func(s string) {
			bw.WriteString(s)
			bw.WriteByte('\n')
			bw.Flush()
			c.Response().Flush()
		}
		if err := svc.Enumerate(req, sink); err != nil {
			bw.Flush()
			c.Response().Write([]byte("error: " + err.Error() + "\n"))
			return nil
		}
		bw.Flush()
		return nil
	}
	return count, enumerate
}
