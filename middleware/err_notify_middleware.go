package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"workshift-backend/lib/smtp"
)

// ErrNotify avisa por email de cada respuesta 5xx
func ErrNotify(mailer smtp.Provider, to string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		statusCode := c.Response().StatusCode()
		if statusCode < http.StatusInternalServerError || mailer == nil || to == "" {
			return err
		}

		var data struct {
			Status  string `json:"status"`
			Message string `json:"message"`
		}
		if unmErr := json.Unmarshal(c.Response().Body(), &data); unmErr != nil {
			log.WithError(unmErr).Warn("error al leer la respuesta en el middleware de errores")
		}
		method := c.Method()
		path := c.OriginalURL()
		if r := c.Route(); r != nil {
			path = r.Path
		}
		msg := data.Message
		if msg == "" {
			msg = string(c.Response().Body())
		}

		go func() {
			body := fmt.Sprintf("code: %d\r\nmethod: %s\r\npath: %s\r\nerror: %s", statusCode, method, path, msg)
			if sendErr := mailer.SendEMail(to, fmt.Sprintf("Error %d en %s", statusCode, path), body); sendErr != nil {
				log.WithError(sendErr).Warn("error al enviar la notificacion de error")
			}
		}()
		return err
	}
}
