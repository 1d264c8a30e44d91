package initializers

import (
	"workshift-backend/config"
	"workshift-backend/lib/smtp"
)

func InitSmtp(conf *config.Configuration) smtp.Provider {
	return smtp.NewProvider(conf.Smtp.User, conf.Smtp.Password,
		conf.Smtp.Host, conf.Smtp.Port, *conf.Smtp.TLSEnabled)
}
