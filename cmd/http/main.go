package main

import (
	"context"
	"errors"
	"log"
	"medconsult-service/internal/app/config"
	"medconsult-service/internal/app/delivery/http/controllers"
	"medconsult-service/internal/app/delivery/http/middlewares"
	"medconsult-service/internal/app/delivery/http/routers"
	"medconsult-service/internal/app/drivers/database"
	"medconsult-service/internal/app/drivers/logger"
	"medconsult-service/internal/app/drivers/mailer"
	"medconsult-service/internal/app/drivers/messaging"
	"medconsult-service/internal/app/drivers/storage"
	"medconsult-service/internal/app/services/core/appointments"
	"medconsult-service/internal/app/services/core/auth"
	consultationServices "medconsult-service/internal/app/services/core/consultation_services"
	"medconsult-service/internal/app/services/core/doctors"
	"medconsult-service/internal/app/services/core/notifications"
	"medconsult-service/internal/app/services/core/otp"
	"medconsult-service/internal/app/services/core/payments"
	"medconsult-service/internal/app/services/core/roles"
	"medconsult-service/internal/app/services/core/users"
	"medconsult-service/internal/app/services/shared/jwtmanager"
	"medconsult-service/internal/app/services/shared/locker"
	mailerService "medconsult-service/internal/app/services/shared/mailer"
	paymentGateway "medconsult-service/internal/app/services/shared/payment_gateway"
	"medconsult-service/internal/app/services/shared/ratelimiter"
	"medconsult-service/internal/app/services/shared/redis"
	"medconsult-service/internal/app/services/shared/sms"
	storageService "medconsult-service/internal/app/services/shared/storage"
	"medconsult-service/internal/app/services/shared/transaction"
	"medconsult-service/internal/migration"
	"medconsult-service/internal/pkg/constvars"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	logger := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	postgresDB := database.NewPostgresDB(driverConfig)
	applied, err := migration.Up(postgresDB)
	if err != nil {
		log.Fatalf("Error executing migration: %v", err)
	}
	logger.Info("Database migrations applied", zap.Int(constvars.LoggingCountKey, applied))

	mongoClient := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQConnection := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		Postgres:       postgresDB,
		MongoClient:    mongoClient,
		MongoDB:        mongoClient.Database(driverConfig.MongoDB.DBName),
		Redis:          redisClient,
		Logger:         logger,
		RabbitMQ:       rabbitMQConnection,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}

	err = bootstrapingTheApp(bootstrap)
	if err != nil {
		log.Fatalf("Error bootstraping the app: %v", err)
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		logger.Info("Server started", zap.String("address", internalConfig.App.Port))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logger.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Error while shutting down drivers: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	logger := bootstrap.Logger
	internalConfig := bootstrap.InternalConfig
	dbName := bootstrap.DriverConfig.MongoDB.DBName

	// Shared infrastructure
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	transactionManager := transaction.NewTransactionManager(bootstrap.Postgres, logger)
	lockService := locker.NewLockService(redisRepository, logger)
	resourceLimiter := ratelimiter.NewResourceLimiter(redisRepository, logger)
	minioClient := storage.NewMinio(bootstrap.DriverConfig, internalConfig)
	evidenceStorage := storageService.NewMinioStorage(minioClient, internalConfig.Minio.BucketName)
	darajaService := paymentGateway.NewDarajaService(internalConfig, redisRepository, logger)

	tokenService, err := jwtmanager.NewJWTManager(internalConfig)
	if err != nil {
		return err
	}

	mailerSender, err := mailerService.NewMailerService(mailer.NewSMTPClient(bootstrap.DriverConfig), bootstrap.RabbitMQ, internalConfig, logger)
	if err != nil {
		return err
	}
	smsSender, err := sms.NewSMSService(bootstrap.RabbitMQ, internalConfig, logger)
	if err != nil {
		return err
	}

	// Repositories
	userRepository := users.NewUserPostgresRepository(bootstrap.Postgres, logger)
	passcodeRepository := otp.NewPasscodePostgresRepository(bootstrap.Postgres, logger)
	doctorRepository := doctors.NewDoctorPostgresRepository(bootstrap.Postgres, logger)
	appointmentRepository := appointments.NewAppointmentPostgresRepository(bootstrap.Postgres, logger)
	notificationRepository := notifications.NewNotificationPostgresRepository(bootstrap.Postgres, logger)
	consultationServiceRepository := consultationServices.NewConsultationServiceMongoRepository(bootstrap.MongoClient, dbName)
	paymentCallbackRepository := payments.NewPaymentCallbackMongoRepository(bootstrap.MongoClient, dbName)

	// Usecases
	otpDispatcher := otp.NewOTPDispatcher(mailerSender, smsSender, internalConfig)
	otpLedger := otp.NewOTPLedger(passcodeRepository, otpDispatcher, resourceLimiter, internalConfig, logger)
	authUsecase := auth.NewAuthUsecase(userRepository, doctorRepository, transactionManager, otpLedger, tokenService, redisRepository, logger)
	userUsecase := users.NewUserUsecase(userRepository, logger)
	notificationUsecase := notifications.NewNotificationUsecase(notificationRepository, userRepository, logger)
	consultationServiceUsecase := consultationServices.NewConsultationServiceUsecase(consultationServiceRepository, logger)
	doctorUsecase := doctors.NewDoctorUsecase(doctorRepository, evidenceStorage, notificationUsecase, logger)
	appointmentUsecase := appointments.NewAppointmentUsecase(appointmentRepository, doctorRepository, consultationServiceRepository, notificationUsecase, internalConfig, logger)
	paymentUsecase := payments.NewPaymentUsecase(appointmentRepository, paymentCallbackRepository, transactionManager, darajaService, lockService, notificationUsecase, internalConfig, logger)

	// Reconciliation only matters when settlement waits for the provider.
	if !internalConfig.Payment.IsOptimistic() {
		worker := payments.NewWorker(logger, internalConfig, lockService, paymentUsecase)
		worker.Start(context.Background())
		bootstrap.WorkerStop = worker.Stop
	}

	// Delivery
	mw := middlewares.NewMiddlewares(logger, authUsecase, roles.NewGuard(), internalConfig)
	routers.SetupRoutes(
		bootstrap.Router,
		internalConfig,
		mw,
		controllers.NewAuthController(logger, authUsecase, internalConfig),
		controllers.NewUserController(logger, userUsecase, internalConfig),
		controllers.NewConsultationServiceController(logger, consultationServiceUsecase, internalConfig),
		controllers.NewDoctorController(logger, doctorUsecase, internalConfig),
		controllers.NewAppointmentController(logger, appointmentUsecase, paymentUsecase, internalConfig),
		controllers.NewPaymentController(logger, paymentUsecase, internalConfig),
		controllers.NewNotificationController(logger, notificationUsecase, internalConfig),
	)
	return nil
}
