package main

import (
	"embtrack/cmd/internal/config"
	"embtrack/cmd/internal/domain/sqlite"
	"embtrack/cmd/internal/domain/sqlite/repository"
	"embtrack/cmd/internal/routes"
	"embtrack/cmd/internal/service"
	"embtrack/cmd/internal/utils/validators"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

func main() {
	validate := validator.New()
	registerValidators(validate)

	// Optional .env; the defaults in config.Load cover local use.
	if err := godotenv.Load(); err != nil {
		log.Infof("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	// Init SQLite
	db, err := sqlite.Init(cfg.DBPath)
	if err != nil {
		log.Fatal("failed to initialize database", err)
	}

	apptRepo := repository.NewAppointmentRepository(db)
	apptService := service.NewAppointmentService(apptRepo, validate)
	apptRoutes := routes.NewAppointmentDefault(apptService)

	e := echo.New()
	e.Use(middleware.CORS())

	// Appointments
	e.GET("/api/appointments", apptRoutes.GetAppointments)
	e.POST("/api/appointments", apptRoutes.CreateAppointment)
	e.PUT("/api/appointments/:id", apptRoutes.UpdateAppointment)
	e.DELETE("/api/appointments/:id", apptRoutes.DeleteAppointment)
	e.DELETE("/api/appointments", apptRoutes.DeleteAllAppointments)

	// Backup / restore
	e.GET("/api/appointments/export", apptRoutes.ExportCSV)
	e.POST("/api/appointments/restore", apptRoutes.RestoreCSV)

	err = e.Start(cfg.Addr())
	if err != nil {
		e.Logger.Fatal(err)
	}
}

func registerValidators(validate *validator.Validate) {
	_ = validate.RegisterValidation("isodate", validators.IsIsoDate)
}
