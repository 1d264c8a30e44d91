package middleware

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	apimodels "workshift-backend/models/api"
)

// WithBodyLimit limite para los cuerpos JSON; la carga de documentos usa el limite general de fiber
func WithBodyLimit(limit int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if strings.HasSuffix(c.Path(), "/document") {
			return c.Next()
		}
		contentLength := c.Get(fiber.HeaderContentLength)
		if contentLength != "" && contentLength != "0" {
			size, err := strconv.ParseInt(contentLength, 10, 64)
			if err == nil && size > limit {
				return c.Status(fiber.StatusRequestEntityTooLarge).
					JSON(apimodels.NewError(fmt.Sprintf("cuerpo demasiado grande, maximo permitido: %d bytes", limit)))
			}
		}
		return c.Next()
	}
}
