package apiv1

import (
	"fmt"
	"workshift-backend/controllers"
	authorizationhandler "workshift-backend/lib/authorization"
	"workshift-backend/middleware"
	"workshift-backend/models"
	apimodels "workshift-backend/models/api"
	authorizationapimodels "workshift-backend/models/api/authorization"

	"github.com/gofiber/fiber/v2"
)

type authorizationApiController struct {
	controllers.BaseAPIController
	handler authorizationhandler.Provider
}

func InitAuthorizationApiRouters(app fiber.Router, handler authorizationhandler.Provider) {
	controller := authorizationApiController{handler: handler}
	app.Route("authorizations", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Get("history", controller.history)
			idRoute.Get("pdf", controller.receipt)
			idRoute.Put("approve", controller.approve) // aprobar
			idRoute.Put("reject", controller.reject)   // rechazar
		})
	})
}

// @Summary Lista de autorizaciones
// @Tags Autorizaciones
// @Description Lista de autorizaciones, opcionalmente filtrada por estado
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   status				query		string	false	"PENDIENTE, APROBADA o RECHAZADA"
// @Success 200 {object} apimodels.Response{data=[]authorizationapimodels.AuthorizationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/authorizations [get]
func (c *authorizationApiController) list(ctx *fiber.Ctx) error {
	var filter authorizationapimodels.AuthorizationFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := filter.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := c.handler.List(filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al obtener la lista de autorizaciones")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Alta de autorizacion
// @Tags Autorizaciones
// @Description Alta generica; exactamente uno de request_id, offer_id, license_id
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 authorizationapimodels.AuthorizationCreate	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/authorizations [post]
func (c *authorizationApiController) create(ctx *fiber.Ctx) error {
	var payload authorizationapimodels.AuthorizationCreate
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := c.handler.Create(middleware.GetUserID(ctx), middleware.GetUserRole(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al crear la autorizacion")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Autorizacion
// @Tags Autorizaciones
// @Description Autorizacion con los datos de su origen
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  	    true         "authorization ID"
// @Success 200 {object} apimodels.Response{data=authorizationapimodels.AuthorizationView}
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/authorizations/{id} [get]
func (c *authorizationApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := c.handler.Get(middleware.GetUserID(ctx), middleware.GetUserRole(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al obtener la autorizacion")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Historial de la autorizacion
// @Tags Autorizaciones
// @Description Cambios de estado de la autorizacion
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  	    true         "authorization ID"
// @Success 200 {object} apimodels.Response{data=[]authorizationapimodels.HistoryView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/authorizations/{id}/history [get]
func (c *authorizationApiController) history(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := c.handler.History(middleware.GetUserID(ctx), middleware.GetUserRole(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al obtener el historial de la autorizacion")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Comprobante PDF
// @Tags Autorizaciones
// @Description Comprobante de la autorizacion en PDF
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  	    true         "authorization ID"
// @Success 200
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/authorizations/{id}/pdf [get]
func (c *authorizationApiController) receipt(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	body, err := c.handler.Receipt(middleware.GetUserID(ctx), middleware.GetUserRole(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al generar el comprobante")
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="autorizacion-%s.pdf"`, id))
	return ctx.Send(body)
}

// @Summary Aprobar
// @Tags Autorizaciones
// @Description Aprobacion (JEFE/ADMIN); lleva el origen a COMPLETADO o APROBADA.
// @Description 207 si la autorizacion quedo resuelta pero el origen no se pudo actualizar.
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  	    true         "authorization ID"
// @Param	body body	 authorizationapimodels.AuthorizationApprove	false	"request body"
// @Success 200 {object} apimodels.Response{data=authorizationapimodels.ResolutionView}
// @Success 207 {object} apimodels.Response{data=authorizationapimodels.ResolutionView}
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/authorizations/{id}/approve [put]
func (c *authorizationApiController) approve(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload authorizationapimodels.AuthorizationApprove
	if len(ctx.Body()) != 0 {
		if err = c.BodyParser(ctx, &payload); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
	}
	resp, err := c.handler.Approve(middleware.GetUserID(ctx), middleware.GetUserRole(ctx), id, payload)
	return c.sendResolution(ctx, resp, err, "Error al aprobar la autorizacion")
}

// @Summary Rechazar
// @Tags Autorizaciones
// @Description Rechazo (JEFE/ADMIN), observaciones de al menos 10 caracteres.
// @Description 207 si la autorizacion quedo resuelta pero el origen no se pudo actualizar.
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  	    true         "authorization ID"
// @Param	body body	 authorizationapimodels.AuthorizationReject	true	"request body"
// @Success 200 {object} apimodels.Response{data=authorizationapimodels.ResolutionView}
// @Success 207 {object} apimodels.Response{data=authorizationapimodels.ResolutionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/authorizations/{id}/reject [put]
func (c *authorizationApiController) reject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload authorizationapimodels.AuthorizationReject
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := c.handler.Reject(middleware.GetUserID(ctx), middleware.GetUserRole(ctx), id, payload)
	return c.sendResolution(ctx, resp, err, "Error al rechazar la autorizacion")
}

func (c *authorizationApiController) sendResolution(ctx *fiber.Ctx, resp *authorizationapimodels.ResolutionView, err error, msg string) error {
	if err != nil {
		if resp != nil && models.IsErrorKind(err, models.PartialFailureErrorKind) {
			c.GetLogger(ctx).WithError(err).Warn(msg)
			return ctx.Status(fiber.StatusMultiStatus).JSON(apimodels.NewPartialResponse(resp, err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, msg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
