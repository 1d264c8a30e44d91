package apiv1

import (
	"workshift-backend/controllers"
	sanctionhandler "workshift-backend/lib/sanction"
	"workshift-backend/middleware"
	apimodels "workshift-backend/models/api"
	sanctionapimodels "workshift-backend/models/api/sanction"

	"github.com/gofiber/fiber/v2"
)

type sanctionApiController struct {
	controllers.BaseAPIController
	handler sanctionhandler.Provider
}

func InitSanctionApiRouters(app fiber.Router, handler sanctionhandler.Provider) {
	controller := sanctionApiController{handler: handler}
	app.Route("sanctions", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", controller.create)
		router.Get("employee/:id", controller.listByEmployee)
		router.Put(":id/annul", controller.annul)
	})
}

// @Summary Lista de sanciones
// @Tags Sanciones
// @Description Todas las sanciones; antes de listar se finalizan las vencidas
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]sanctionapimodels.SanctionView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/sanctions [get]
func (c *sanctionApiController) list(ctx *fiber.Ctx) error {
	list, err := c.handler.List("")
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al obtener la lista de sanciones")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Sanciones de un empleado
// @Tags Sanciones
// @Description Sanciones del empleado indicado
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  	    true         "employee ID"
// @Success 200 {object} apimodels.Response{data=[]sanctionapimodels.SanctionView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/sanctions/employee/{id} [get]
func (c *sanctionApiController) listByEmployee(ctx *fiber.Ctx) error {
	employeeID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := c.handler.List(employeeID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al obtener las sanciones del empleado")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Alta de sancion
// @Tags Sanciones
// @Description Alta de sancion (JEFE/ADMIN); la sancion vigente bloquea nuevas solicitudes del empleado
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 sanctionapimodels.SanctionCreate	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/sanctions [post]
func (c *sanctionApiController) create(ctx *fiber.Ctx) error {
	var payload sanctionapimodels.SanctionCreate
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := c.handler.Create(middleware.GetUserID(ctx), middleware.GetUserRole(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al crear la sancion")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Anular sancion
// @Tags Sanciones
// @Description Anulacion de una sancion activa (solo ADMIN)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  	    true         "sanction ID"
// @Success 200 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/sanctions/{id}/annul [put]
func (c *sanctionApiController) annul(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = c.handler.Annul(middleware.GetUserID(ctx), middleware.GetUserRole(ctx), id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al anular la sancion")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
