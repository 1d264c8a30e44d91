package apiv1

import (
	"workshift-backend/controllers"
	employeehandler "workshift-backend/lib/employee"
	"workshift-backend/middleware"
	apimodels "workshift-backend/models/api"
	employeeapimodels "workshift-backend/models/api/employee"

	"github.com/gofiber/fiber/v2"
)

type employeeApiController struct {
	controllers.BaseAPIController
	handler employeehandler.Provider
}

func InitEmployeeApiRouters(app fiber.Router, handler employeehandler.Provider) {
	controller := employeeApiController{handler: handler}
	app.Route("employees", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Put("active", controller.setActive)
			idRoute.Put("password", controller.changePassword)
		})
	})
}

// @Summary Lista de empleados
// @Tags Empleados
// @Description Lista de empleados, only_active=true excluye los dados de baja
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   only_active			query		bool	false	"solo activos"
// @Success 200 {object} apimodels.Response{data=[]employeeapimodels.EmployeeView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employees [get]
func (c *employeeApiController) list(ctx *fiber.Ctx) error {
	list, err := c.handler.List(ctx.QueryBool("only_active"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al obtener la lista de empleados")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Alta de empleado
// @Tags Empleados
// @Description Alta de empleado (solo ADMIN)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 employeeapimodels.EmployeeCreate	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employees [post]
func (c *employeeApiController) create(ctx *fiber.Ctx) error {
	var payload employeeapimodels.EmployeeCreate
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := c.handler.Create(middleware.GetUserRole(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al crear el empleado")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Empleado
// @Tags Empleados
// @Description Datos del empleado
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  	    true         "employee ID"
// @Success 200 {object} apimodels.Response{data=employeeapimodels.EmployeeView}
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employees/{id} [get]
func (c *employeeApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := c.handler.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al obtener el empleado")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Modificacion de empleado
// @Tags Empleados
// @Description Modificacion de datos y rol (solo ADMIN)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  	    true         "employee ID"
// @Param	body body	 employeeapimodels.EmployeeData	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employees/{id} [put]
func (c *employeeApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload employeeapimodels.EmployeeData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = c.handler.Update(middleware.GetUserRole(ctx), id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al modificar el empleado")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Alta/baja logica
// @Tags Empleados
// @Description Activa o desactiva un empleado (solo ADMIN)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  	    true         "employee ID"
// @Param   active				query		bool	true	"activo"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employees/{id}/active [put]
func (c *employeeApiController) setActive(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = c.handler.SetActive(middleware.GetUserID(ctx), middleware.GetUserRole(ctx), id, ctx.QueryBool("active"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al cambiar el estado del empleado")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Cambio de contraseña
// @Tags Empleados
// @Description Cambio de contraseña propia, o de cualquier empleado para ADMIN
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  	    true         "employee ID"
// @Param	body body	 employeeapimodels.PasswordChange	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employees/{id}/password [put]
func (c *employeeApiController) changePassword(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload employeeapimodels.PasswordChange
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = c.handler.ChangePassword(middleware.GetUserID(ctx), middleware.GetUserRole(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al cambiar la contraseña")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
