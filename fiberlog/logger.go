package fiberlog

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// Config Logger nil usa el logger global de logrus
type Config struct {
	Logger *log.Logger
	Tags   []string
}

// New registra un evento por request; el nivel sale del codigo de respuesta
func New(cfg Config) fiber.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}
	tags := selectTags(cfg.Tags)
	pid := os.Getpid()
	return func(c *fiber.Ctx) error {
		d := &data{pid: pid, start: time.Now()}
		err := c.Next()
		d.end = time.Now()
		if c.Method() == fiber.MethodOptions {
			return err
		}
		entry := logger.WithFields(collect(tags, c, d))
		entry.Log(levelFor(c.Response().StatusCode()), "request api")
		return err
	}
}

func levelFor(status int) log.Level {
	switch {
	case status >= fiber.StatusInternalServerError:
		return log.ErrorLevel
	case status >= fiber.StatusBadRequest:
		return log.WarnLevel
	}
	return log.InfoLevel
}

// collect omite los tags que devuelven cadena vacia
func collect(tags map[string]FuncTag, c *fiber.Ctx, d *data) log.Fields {
	fields := make(log.Fields, len(tags))
	for name, tag := range tags {
		value := tag(c, d)
		if s, ok := value.(string); ok && s == "" {
			continue
		}
		fields[name] = value
	}
	return fields
}
