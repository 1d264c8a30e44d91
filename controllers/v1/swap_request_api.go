package apiv1

import (
	"workshift-backend/controllers"
	swaprequesthandler "workshift-backend/lib/swap-request"
	"workshift-backend/middleware"
	apimodels "workshift-backend/models/api"
	swaprequestapimodels "workshift-backend/models/api/swap-request"

	"github.com/gofiber/fiber/v2"
)

type swapRequestApiController struct {
	controllers.BaseAPIController
	handler swaprequesthandler.Provider
}

func InitSwapRequestApiRouters(app fiber.Router, handler swaprequesthandler.Provider) {
	controller := swapRequestApiController{handler: handler}
	app.Route("swap_requests", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Patch("", controller.update)
			idRoute.Put("status", controller.changeStatus)
			idRoute.Delete("", controller.delete)
		})
	})
}

// @Summary Lista de solicitudes de cambio
// @Tags Solicitudes de cambio
// @Description Solicitudes en las que participa el empleado; supervisores y jefes ven todas
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   status				query		string	false	"estado"
// @Success 200 {object} apimodels.Response{data=[]swaprequestapimodels.SwapRequestView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/swap_requests [get]
func (c *swapRequestApiController) list(ctx *fiber.Ctx) error {
	var filter swaprequestapimodels.SwapRequestFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := c.handler.List(middleware.GetUserID(ctx), middleware.GetUserRole(ctx), filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al obtener la lista de solicitudes")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Alta de solicitud de cambio
// @Tags Solicitudes de cambio
// @Description Solicitud de intercambio directo de turnos con otro empleado
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 swaprequestapimodels.SwapRequestCreate	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/swap_requests [post]
func (c *swapRequestApiController) create(ctx *fiber.Ctx) error {
	var payload swaprequestapimodels.SwapRequestCreate
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := c.handler.Create(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al crear la solicitud")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Solicitud de cambio
// @Tags Solicitudes de cambio
// @Description Solicitud por ID
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  	    true         "request ID"
// @Success 200 {object} apimodels.Response{data=swaprequestapimodels.SwapRequestView}
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/swap_requests/{id} [get]
func (c *swapRequestApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := c.handler.Get(middleware.GetUserID(ctx), middleware.GetUserRole(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al obtener la solicitud")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Modificar solicitud de cambio
// @Tags Solicitudes de cambio
// @Description Modificacion por el solicitante mientras la solicitud esta SOLICITADO
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  	    true         "request ID"
// @Param	body body	 swaprequestapimodels.SwapRequestData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/swap_requests/{id} [patch]
func (c *swapRequestApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload swaprequestapimodels.SwapRequestData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = c.handler.Update(middleware.GetUserID(ctx), id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al modificar la solicitud")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Cambio de estado
// @Tags Solicitudes de cambio
// @Description APROBADO abre la autorizacion CAMBIO_TURNO y la solicitud sigue SOLICITADO hasta su resolucion
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  	    true         "request ID"
// @Param	body body	 swaprequestapimodels.StatusChange	true	"request body"
// @Success 200 {object} apimodels.Response{data=swaprequestapimodels.StatusChangeResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/swap_requests/{id}/status [put]
func (c *swapRequestApiController) changeStatus(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload swaprequestapimodels.StatusChange
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := c.handler.ChangeStatus(middleware.GetUserID(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al cambiar el estado de la solicitud")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Baja de solicitud de cambio
// @Tags Solicitudes de cambio
// @Description Baja por el solicitante o un administrador
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  	    true         "request ID"
// @Success 200 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/swap_requests/{id} [delete]
func (c *swapRequestApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = c.handler.Delete(middleware.GetUserID(ctx), middleware.GetUserRole(ctx), id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al eliminar la solicitud")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
