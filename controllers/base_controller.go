package controllers

import (
	"net/http"
	"workshift-backend/middleware"
	"workshift-backend/models"
	apimodels "workshift-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("error al interpretar la solicitud")
		return errors.New("no se pudieron obtener los datos de la solicitud")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	return c.GetIDByKey(ctx, "id")
}

func (c *BaseAPIController) GetIDByKey(ctx *fiber.Ctx, key string) (string, error) {
	id := ctx.Params(key)
	if id == "" {
		return "", errors.Errorf("falta el parametro %s", key)
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.
		WithField("employee_id", middleware.GetUserID(ctx)).
		WithField("path", ctx.Path())
}

// SendError responde segun el tipo de error; los errores sin tipo se registran y devuelven 500
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, msg string) error {
	status := StatusByKind(models.ErrorKindOf(err))
	if status == http.StatusInternalServerError {
		logger.WithError(err).Error(msg)
		return ctx.Status(status).JSON(apimodels.NewError(msg))
	}
	logger.WithError(err).Debug(msg)
	return ctx.Status(status).JSON(apimodels.NewError(err.Error()))
}

// StatusByKind PartialFailure no tiene estado propio: el 207 solo se responde junto con el resultado parcial
func StatusByKind(kind models.ErrorKind) int {
	switch kind {
	case models.ValidationErrorKind:
		return http.StatusBadRequest
	case models.ForbiddenErrorKind:
		return http.StatusForbidden
	case models.NotFoundErrorKind:
		return http.StatusNotFound
	case models.ConflictErrorKind:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
