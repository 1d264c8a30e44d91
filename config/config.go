package config

import (
	"github.com/gotify/configor"
)

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
		Timezone   string `default:"America/Argentina/Buenos_Aires" env:"APP_TIMEZONE"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"workshift" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Auth struct {
		JWTSecret      string `default:"" env:"JWT_SECRET"`
		JWTExpireInSec int    `default:"28800" env:"JWT_EXPIRE_IN_SEC"`
	}
	Admin struct {
		Email     string `default:"" env:"ADMIN_EMAIL"`
		Password  string `default:"" env:"ADMIN_PASSWORD"`
		FirstName string `default:"Administrador" env:"ADMIN_FIRST_NAME"`
		LastName  string `default:"" env:"ADMIN_LAST_NAME"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
	}
	S3 struct {
		Endpoint        string `default:"" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
		BucketName      string `default:"workshift-documents" env:"S3_BUCKET_NAME"`
	}
	Eligibility struct {
		// today: se evalua solo el dia actual; range: se evalua el rango solicitado
		CheckMode string `default:"today" env:"ELIGIBILITY_CHECK_MODE"`
	}
	Workflow struct {
		// resolucion y propagacion al origen en una unica transaccion
		AtomicFanOut *bool `default:"true" env:"WORKFLOW_ATOMIC_FAN_OUT"`
	}
	Notify struct {
		ErrorEmail string `default:"" env:"NOTIFY_ERROR_EMAIL"` // destinatario de los avisos de error 5xx
	}
	Sanction struct {
		SweepIntervalSec int `default:"0" env:"SANCTION_SWEEP_INTERVAL_SEC"` // 0 - tarea deshabilitada
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() (*Configuration, error) {
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		return nil, err
	}
	return conf, nil
}
