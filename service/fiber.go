//go:build fiber

package service

import (
	"github.com/gofiber/fiber/v2"
)

// Fiber returns Fiber handlers for POST /count and POST /enumerate. Build
// with -tags=fiber to enable.
//
//	countHandler, enumerateHandler := service.Fiber(svc)
//	app.Post("/count", countHandler)
//	app.Post("/enumerate", enumerateHandler)
func Fiber(svc *Service) (count, enumerate fiber.Handler) {
	count = func(c *fiber.Ctx) error {
		var req Request
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(errorBody(err))
		}
		resp, err := svc.Count(req)
		if err != nil {
			return c.Status(statusFor(err)).JSON(errorBody(err))
		}
		return c.Status(fiber.StatusOK).JSON(resp)
	}
	enumerate = func(c *fiber.Ctx) error {
		var req Request
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(errorBody(err))
		}
		c.Set("Content-Type", "text/plain; charset=utf-8")
		// Fiber buffers the response body in memory rather than
		// streaming it to the wire incrementally, unlike the net/http,
		// Gin, and Echo adapters; each emitted string is appended to
		// that buffer and the whole response is flushed once Enumerate
		// returns.
		var lines []byte
		sink := func(s string) {
			lines = append(lines, s...)
			lines = append(lines, '\n')
		}
		err := svc.Enumerate(req, sink)
		if err != nil {
			lines = append(lines, []byte("error: "+err.Error()+"\n")...)
		}
		return c.Send(lines)
	}
	return count, enumerate
}
