package apiv1

import (
	"workshift-backend/controllers"
	employeehandler "workshift-backend/lib/employee"
	"workshift-backend/lib/rbac"
	"workshift-backend/middleware"
	apimodels "workshift-backend/models/api"
	authapimodels "workshift-backend/models/api/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

type authApiController struct {
	controllers.BaseAPIController
	handler employeehandler.Provider
	rbac    rbac.Provider
}

func InitAuthApiRouters(app fiber.Router, handler employeehandler.Provider, rbacProvider rbac.Provider, authRequired fiber.Handler) {
	controller := authApiController{handler: handler, rbac: rbacProvider}
	app.Route("auth", func(router fiber.Router) {
		router.Post("login", controller.login)
		router.Get("me", authRequired, controller.me)
		router.Get("permissions", authRequired, controller.permissions)
	})
}

// @Summary Autenticacion del empleado
// @Tags Autenticacion
// @Description Autenticacion por email y contraseña, devuelve un JWT
// @Param	body				body		authapimodels.LoginRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=authapimodels.JWTResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/auth/login [post]
func (c *authApiController) login(ctx *fiber.Ctx) error {
	var payload authapimodels.LoginRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := c.handler.Login(payload)
	if err != nil {
		if errors.Is(err, employeehandler.ErrInvalidCredentials) {
			return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error de autenticacion")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Empleado actual
// @Tags Autenticacion
// @Description Datos del empleado del token
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=employeeapimodels.EmployeeView}
// @Failure 401
// @Failure 500 {object} apimodels.Response
// @router /api/v1/auth/me [get]
func (c *authApiController) me(ctx *fiber.Ctx) error {
	resp, err := c.handler.Get(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al obtener el empleado actual")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Permisos del empleado actual
// @Tags Autenticacion
// @Description Modulos y permisos del rol del token, para el front
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=map[string][]string}
// @Failure 401
// @router /api/v1/auth/permissions [get]
func (c *authApiController) permissions(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(c.rbac.GetPermissions(middleware.GetUserRole(ctx))))
}
