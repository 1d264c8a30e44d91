package apiv1

import (
	"fmt"
	"path/filepath"
	"workshift-backend/controllers"
	licensehandler "workshift-backend/lib/license"
	"workshift-backend/lib/utils/helpers"
	"workshift-backend/middleware"
	"workshift-backend/models"
	apimodels "workshift-backend/models/api"
	licenseapimodels "workshift-backend/models/api/license"

	"github.com/gofiber/fiber/v2"
)

type licenseApiController struct {
	controllers.BaseAPIController
	handler licensehandler.Provider
}

func InitLicenseApiRouters(app fiber.Router, handler licensehandler.Provider) {
	controller := licenseApiController{handler: handler}
	app.Route("licenses", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", controller.create)
		router.Get("by_date", controller.listByDate)
		router.Get("by_date/xlsx", controller.exportByDate)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
			idRoute.Put("document", controller.uploadDocument)
			idRoute.Get("document", controller.getDocument)
		})
	})
}

// @Summary Lista de licencias
// @Tags Licencias
// @Description Licencias del empleado; sin employee_id se devuelven las propias
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   employee_id			query		string	false	"employee ID"
// @Success 200 {object} apimodels.Response{data=[]licenseapimodels.LicenseView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/licenses [get]
func (c *licenseApiController) list(ctx *fiber.Ctx) error {
	list, err := c.handler.ListByEmployee(middleware.GetUserID(ctx), middleware.GetUserRole(ctx), ctx.Query("employee_id"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al obtener la lista de licencias")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Licencias vigentes en una fecha
// @Tags Licencias
// @Description Licencias aprobadas que cubren la fecha indicada
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   date				query		string	true	"AAAA-MM-DD"
// @Success 200 {object} apimodels.Response{data=[]licenseapimodels.LicenseView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/licenses/by_date [get]
func (c *licenseApiController) listByDate(ctx *fiber.Ctx) error {
	date, err := models.ParseDate(ctx.Query("date"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := c.handler.ListByDate(date)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al obtener las licencias de la fecha")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Exportar licencias vigentes en una fecha
// @Tags Licencias
// @Description Planilla xlsx con las licencias aprobadas que cubren la fecha
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   date				query		string	true	"AAAA-MM-DD"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/licenses/by_date/xlsx [get]
func (c *licenseApiController) exportByDate(ctx *fiber.Ctx) error {
	value := ctx.Query("date")
	date, err := models.ParseDate(value)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	buf, err := c.handler.ExportByDate(date)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al exportar las licencias")
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="licencias-%s.xlsx"`, value))
	return ctx.SendStream(buf, buf.Len())
}

// @Summary Alta de licencia
// @Tags Licencias
// @Description ORDINARIA queda PENDIENTE con su autorizacion; el resto queda APROBADA
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 licenseapimodels.LicenseCreate	true	"request body"
// @Success 200 {object} apimodels.Response{data=licenseapimodels.CreateResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/licenses [post]
func (c *licenseApiController) create(ctx *fiber.Ctx) error {
	var payload licenseapimodels.LicenseCreate
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := c.handler.Create(middleware.GetUserID(ctx), middleware.GetUserRole(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al crear la licencia")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Licencia
// @Tags Licencias
// @Description Licencia por ID
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  	    true         "license ID"
// @Success 200 {object} apimodels.Response{data=licenseapimodels.LicenseView}
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/licenses/{id} [get]
func (c *licenseApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := c.handler.Get(middleware.GetUserID(ctx), middleware.GetUserRole(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al obtener la licencia")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Modificar licencia
// @Tags Licencias
// @Description Modificacion de fechas y observaciones de una licencia pendiente
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  	    true         "license ID"
// @Param	body body	 licenseapimodels.LicenseEdit	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/licenses/{id} [put]
func (c *licenseApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload licenseapimodels.LicenseEdit
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = c.handler.Update(middleware.GetUserID(ctx), middleware.GetUserRole(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al modificar la licencia")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Baja de licencia
// @Tags Licencias
// @Description Baja de la licencia, su autorizacion y su documento
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  	    true         "license ID"
// @Success 200 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/licenses/{id} [delete]
func (c *licenseApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = c.handler.Delete(ctx.UserContext(), middleware.GetUserID(ctx), middleware.GetUserRole(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al eliminar la licencia")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Cargar documento
// @Tags Licencias
// @Description Carga del documento respaldatorio (multipart, campo file)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  	    true         "license ID"
// @Param   file				formData	file	true	"documento"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/licenses/{id}/document [put]
func (c *licenseApiController) uploadDocument(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	file, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("falta el archivo"))
	}
	reader, err := file.Open()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al leer el archivo")
	}
	defer reader.Close()
	doc := licensehandler.Document{
		FileName:    file.Filename,
		ContentType: helpers.GetFileContentType(file),
		Size:        file.Size,
		Reader:      reader,
	}
	err = c.handler.UploadDocument(ctx.UserContext(), middleware.GetUserID(ctx), middleware.GetUserRole(ctx), id, doc)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al cargar el documento")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Descargar documento
// @Tags Licencias
// @Description Descarga del documento respaldatorio
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  	    true         "license ID"
// @Success 200
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/licenses/{id}/document [get]
func (c *licenseApiController) getDocument(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	body, fileName, err := c.handler.GetDocument(ctx.UserContext(), middleware.GetUserID(ctx), middleware.GetUserRole(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error al descargar el documento")
	}
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, fileName))
	ctx.Type(filepath.Ext(fileName))
	return ctx.Send(body)
}
