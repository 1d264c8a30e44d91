package apiv1

import (
	"workshift-backend/controllers"
	offerhandler "workshift-backend/lib/offer"
	"workshift-backend/middleware"
	apimodels "workshift-backend/models/api"
	offerapimodels "workshift-backend/models/api/offer"

	"github.com/gofiber/fiber/v2"
)

type offerApiController struct {
	controllers.BaseAPIController
	handler offerhandler.Provider
}

func InitOfferApiRouters(app fiber.Router, handler offerhandler.Provider) {
	controller := offerApiController{handler: handler}
	app.Route("offers", func(router fiber.Router) {
		router.Get("", controller.listAvailable)
		router.Get("mine", controller.listMine)
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Put("publish", controller.publish)
			idRoute.Put("take", controller.take)
			idRoute.Delete("", controller.delete)
		})
	})
}

// @Summary Ofertas disponibles
// @Tags Ofertas
// @Description Ofertas publicadas en estado DISPONIBLE
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   type				query		string	false	"tipo de oferta"
// @Success 200 {object} apimodels.Response{data=[]offerapimodels.OfferView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/offers [get]
func (c *offerApiController) listAvailable(ctx *fiber.Ctx) error {
	var filter offerapimodels.OfferFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := c.handler.ListAvailable(filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al obtener la lista de ofertas")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Mis ofertas
// @Tags Ofertas
// @Description Ofertas publicadas o tomadas por el empleado
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]offerapimodels.OfferView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/offers/mine [get]
func (c *offerApiController) listMine(ctx *fiber.Ctx) error {
	list, err := c.handler.ListMine(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al obtener la lista de ofertas")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Alta de oferta
// @Tags Ofertas
// @Description Publicacion de un turno para intercambio o cesion
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 offerapimodels.OfferData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/offers [post]
func (c *offerApiController) create(ctx *fiber.Ctx) error {
	var payload offerapimodels.OfferData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := c.handler.Create(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al crear la oferta")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Oferta
// @Tags Ofertas
// @Description Oferta por ID
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  	    true         "offer ID"
// @Success 200 {object} apimodels.Response{data=offerapimodels.OfferView}
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/offers/{id} [get]
func (c *offerApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := c.handler.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al obtener la oferta")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Modificar oferta
// @Tags Ofertas
// @Description Modificacion por el oferente mientras la oferta esta DISPONIBLE
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  	    true         "offer ID"
// @Param	body body	 offerapimodels.OfferData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/offers/{id} [put]
func (c *offerApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload offerapimodels.OfferData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = c.handler.Update(middleware.GetUserID(ctx), id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al modificar la oferta")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Publicar oferta
// @Tags Ofertas
// @Description Publica o retira la oferta del listado
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  	    true         "offer ID"
// @Param   published			query		bool	true	"publicada"
// @Success 200 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/offers/{id}/publish [put]
func (c *offerApiController) publish(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = c.handler.Publish(middleware.GetUserID(ctx), id, ctx.QueryBool("published", true)); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al publicar la oferta")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Tomar oferta
// @Tags Ofertas
// @Description La oferta pasa a ACEPTADA y se abre la autorizacion OFERTA_INTERCAMBIO del tomador
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  	    true         "offer ID"
// @Success 200 {object} apimodels.Response{data=offerapimodels.TakeResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/offers/{id}/take [put]
func (c *offerApiController) take(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := c.handler.Take(middleware.GetUserID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al tomar la oferta")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Baja de oferta
// @Tags Ofertas
// @Description Baja por el oferente o un administrador
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  	    true         "offer ID"
// @Success 200 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/offers/{id} [delete]
func (c *offerApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = c.handler.Delete(middleware.GetUserID(ctx), middleware.GetUserRole(ctx), id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al eliminar la oferta")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
