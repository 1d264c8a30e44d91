package initializers

import (
	"context"
	"time"
	"workshift-backend/config"
	"workshift-backend/fiberlog"
	authorizationhandler "workshift-backend/lib/authorization"
	"workshift-backend/lib/eligibility"
	employeehandler "workshift-backend/lib/employee"
	licensehandler "workshift-backend/lib/license"
	offerhandler "workshift-backend/lib/offer"
	"workshift-backend/lib/rbac"
	sanctionhandler "workshift-backend/lib/sanction"
	sanctionworker "workshift-backend/lib/sanction/worker"
	"workshift-backend/lib/smtp"
	swaprequesthandler "workshift-backend/lib/swap-request"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Services struct {
	Conf          *config.Configuration
	LoggerConfig  *fiberlog.Config
	Mailer        smtp.Provider
	Rbac          rbac.Provider
	Employee      employeehandler.Provider
	Authorization authorizationhandler.Provider
	License       licensehandler.Provider
	SwapRequest   swaprequesthandler.Provider
	Offer         offerhandler.Provider
	Sanction      sanctionhandler.Provider
}

func InitAllServices(ctx context.Context) (*Services, error) {
	loggerConfig := InitLogger()
	conf, err := config.InitConfig()
	if err != nil {
		return nil, errors.Wrap(err, "error al leer la configuracion")
	}
	if conf.Auth.JWTSecret == "" {
		return nil, errors.New("falta la configuracion JWT_SECRET")
	}
	now, err := newClock(conf.App.Timezone)
	if err != nil {
		return nil, err
	}
	mode, err := eligibility.ParseCheckMode(conf.Eligibility.CheckMode)
	if err != nil {
		return nil, err
	}
	conn, err := InitDBConnection(conf)
	if err != nil {
		return nil, err
	}
	storage, err := InitS3(ctx, conf)
	if err != nil {
		return nil, err
	}
	mailer := InitSmtp(conf)

	checker := eligibility.NewHandler(conn, mode, now)
	authorization := authorizationhandler.NewHandler(conn, checker, mailer,
		authorizationhandler.Config{AtomicFanOut: *conf.Workflow.AtomicFanOut}, now)
	services := &Services{
		Conf:          conf,
		LoggerConfig:  loggerConfig,
		Mailer:        mailer,
		Rbac:          rbac.NewHandler(),
		Employee:      employeehandler.NewHandler(conn, mailer, employeehandler.AuthConfig{JWTSecret: conf.Auth.JWTSecret, JWTExpireInSec: conf.Auth.JWTExpireInSec}),
		Authorization: authorization,
		License:       licensehandler.NewHandler(conn, checker, authorization, storage),
		SwapRequest:   swaprequesthandler.NewHandler(conn, authorization, mailer),
		Offer:         offerhandler.NewHandler(conn, authorization, now),
		Sanction:      sanctionhandler.NewHandler(conn, mode, now),
	}
	log.
		WithField("check_mode", mode).
		WithField("atomic_fan_out", *conf.Workflow.AtomicFanOut).
		Info("servicios inicializados")

	initWorkers(ctx, services)
	return services, nil
}

func initWorkers(ctx context.Context, services *Services) {
	// finalizacion de sanciones vencidas
	sanctionworker.StartWorker(ctx, services.Sanction, time.Duration(services.Conf.Sanction.SweepIntervalSec)*time.Second)
}

// newClock hora actual en la zona horaria del servicio; de ella sale la fecha calendario "hoy"
func newClock(timezone string) (func() time.Time, error) {
	if timezone == "" {
		return time.Now, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, errors.Wrapf(err, "zona horaria invalida %q", timezone)
	}
	return func() time.Time {
		return time.Now().In(loc)
	}, nil
}
