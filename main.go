package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"
	apiv1 "workshift-backend/controllers/v1"
	"workshift-backend/fiberlog"
	"workshift-backend/initializers"
	"workshift-backend/middleware"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"
)

const jsonBodyLimit = 1024 * 1024

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	services, err := initializers.InitAllServices(ctx)
	if err != nil {
		log.WithError(err).Fatal("error al inicializar los servicios")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // 20MB, documentos de licencias
	})
	app.Use(fiberRecover.New())

	swaggerCfg := swagger.Config{
		Path:     "/swagger",
		FilePath: "./docs/swagger.json",
	}
	app.Use(swagger.New(swaggerCfg))

	//api
	apiV1 := fiber.New()
	apiV1.Use(fiberlog.New(*services.LoggerConfig))
	app.Mount("/api/v1", apiV1)
	apiV1.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, PUT",
	}))
	apiV1.Use(middleware.WithBodyLimit(jsonBodyLimit))
	apiV1.Use(middleware.ErrNotify(services.Mailer, services.Conf.Notify.ErrorEmail))

	authRequired := middleware.AuthorizationRequired(services.Conf.Auth.JWTSecret)
	apiv1.InitAuthApiRouters(apiV1, services.Employee, services.Rbac, authRequired)

	// rutas con token y control de acceso por rol
	secured := apiV1.Group("", authRequired, middleware.RbacMiddleware(services.Rbac))
	apiv1.InitEmployeeApiRouters(secured, services.Employee)
	apiv1.InitAuthorizationApiRouters(secured, services.Authorization)
	apiv1.InitLicenseApiRouters(secured, services.License)
	apiv1.InitSwapRequestApiRouters(secured, services.SwapRequest)
	apiv1.InitOfferApiRouters(secured, services.Offer)
	apiv1.InitSanctionApiRouters(secured, services.Sanction)

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-c
		log.Info("Apagando el servicio...")
		cancel()
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("Error al apagar el servicio")
		}
		time.Sleep(time.Second)
		log.Info("Servicio apagado")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", services.Conf.App.ListenAddr, services.Conf.App.Port)); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
	log.Info("Servidor HTTP detenido")
}
