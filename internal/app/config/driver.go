package config

type (
	DriverConfig struct {
		Postgres Postgres
		MongoDB  MongoDB
		Redis    Redis
		Logger   Logger
		RabbitMQ RabbitMQ
		Minio    Minio
		SMTP     SMTP
	}
	Postgres struct {
		Host         string
		Port         string
		DBName       string
		Username     string
		Password     string
		SSLMode      string
		MaxOpenConns int
		MaxIdleConns int
	}
	MongoDB struct {
		Port     string
		Host     string
		Username string
		Password string
		DBName   string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
	// RabbitMQ is optional. An empty Host keeps outbound messages on the direct
	// SMTP / SMS API path.
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}
	Minio struct {
		Port     string
		Host     string
		Username string
		Password string
		UseSSL   bool
	}
	SMTP struct {
		Host     string
		Port     int
		Username string
		Password string
	}
)
