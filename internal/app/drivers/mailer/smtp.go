package mailer

import (
	"medconsult-service/internal/app/config"
	"net/smtp"
)

type SMTPClient struct {
	Host     string
	Port     int
	Username string
	Password string
	Auth     smtp.Auth
}

// NewSMTPClient returns nil when SMTP credentials are not configured.
func NewSMTPClient(driverConfig *config.DriverConfig) *SMTPClient {
	if driverConfig.SMTP.Host == "" || driverConfig.SMTP.Username == "" {
		return nil
	}
	auth := smtp.PlainAuth("", driverConfig.SMTP.Username, driverConfig.SMTP.Password, driverConfig.SMTP.Host)
	return &SMTPClient{
		Host:     driverConfig.SMTP.Host,
		Port:     driverConfig.SMTP.Port,
		Username: driverConfig.SMTP.Username,
		Password: driverConfig.SMTP.Password,
		Auth:     auth,
	}
}
