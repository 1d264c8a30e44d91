package fiberlog

import (
	"strings"
	"time"
	authutils "workshift-backend/lib/utils/auth-utils"

	"github.com/gofiber/fiber/v2"
)

// FuncTag calcula el valor de un campo del log a partir del request
type FuncTag func(c *fiber.Ctx, d *data) interface{}

type data struct {
	pid   int
	start time.Time
	end   time.Time
}

const (
	TagPid       = "pid"
	TagLatency   = "latency"
	TagStatus    = "status"
	TagMethod    = "method"
	TagPath      = "path"
	TagURL       = "url"
	TagIP        = "ip"
	TagUserAgent = "ua"
	TagBody      = "body"
	TagResBody   = "resBody"
	TagActor     = "actor"
	RequestID    = "requestId"
)

// maxBodyLen los cuerpos se recortan para no inflar el log
const maxBodyLen = 2048

var funcTags = map[string]FuncTag{
	TagPid: func(c *fiber.Ctx, d *data) interface{} {
		return d.pid
	},
	TagLatency: func(c *fiber.Ctx, d *data) interface{} {
		return d.end.Sub(d.start).String()
	},
	TagStatus: func(c *fiber.Ctx, d *data) interface{} {
		return c.Response().StatusCode()
	},
	TagMethod: func(c *fiber.Ctx, d *data) interface{} {
		return c.Method()
	},
	TagPath: func(c *fiber.Ctx, d *data) interface{} {
		return c.Path()
	},
	TagURL: func(c *fiber.Ctx, d *data) interface{} {
		return c.OriginalURL()
	},
	TagIP: func(c *fiber.Ctx, d *data) interface{} {
		return c.IP()
	},
	TagUserAgent: func(c *fiber.Ctx, d *data) interface{} {
		return c.Get(fiber.HeaderUserAgent)
	},
	TagBody: func(c *fiber.Ctx, d *data) interface{} {
		if isMultipart(c) {
			return ""
		}
		return truncate(c.Body())
	},
	TagResBody: func(c *fiber.Ctx, d *data) interface{} {
		if c.Response().Header.ContentType() != nil &&
			string(c.Response().Header.ContentType()) != fiber.MIMEApplicationJSON &&
			string(c.Response().Header.ContentType()) != fiber.MIMEApplicationJSONCharsetUTF8 {
			return ""
		}
		return truncate(c.Response().Body())
	},
	TagActor: func(c *fiber.Ctx, d *data) interface{} {
		sub, _ := authutils.GetClaims(c)["sub"].(string)
		return sub
	},
	RequestID: func(c *fiber.Ctx, d *data) interface{} {
		if id := c.Get(fiber.HeaderXRequestID); id != "" {
			return id
		}
		return string(c.Response().Header.Peek(fiber.HeaderXRequestID))
	},
}

// selectTags los nombres desconocidos se ignoran
func selectTags(names []string) map[string]FuncTag {
	result := make(map[string]FuncTag, len(names))
	for _, tag := range names {
		if ft, ok := funcTags[tag]; ok {
			result[tag] = ft
		}
	}
	return result
}

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm)
}

func truncate(body []byte) string {
	if len(body) > maxBodyLen {
		return string(body[:maxBodyLen]) + "..."
	}
	return string(body)
}
