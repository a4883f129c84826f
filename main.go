package main

import (
	"net/http"
	"os"

	"event-registration/controllers"
	"event-registration/driver"
	"event-registration/mailer"
	"event-registration/reporting"
	"event-registration/storage"
	"event-registration/workflow"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if err := godotenv.Load(); err != nil {
		log.Warn("no .env file found, using environment as-is")
	}

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN variable is not set")
	}
	db, err := driver.ConnectDB(dsn)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	defer db.Close()

	if err := driver.Migrate(db, getEnv("MIGRATIONS_DIR", "migrations")); err != nil {
		log.WithError(err).Fatal("migrations failed")
	}

	catalog := storage.NewEventCatalog(db)
	store := storage.NewRegistrationStore(db)
	notifier := mailer.New(mailer.Config{
		Host:               os.Getenv("SMTP_HOST"),
		Port:               getEnv("SMTP_PORT", "587"),
		From:               os.Getenv("SMTP_FROM"),
		Username:           os.Getenv("SMTP_USERNAME"),
		Password:           os.Getenv("SMTP_PASSWORD"),
		AdminEmail:         os.Getenv("ADMIN_NOTIFICATION_EMAIL"),
		AdminNotifications: getEnv("ENABLE_ADMIN_NOTIFICATIONS", "true") != "false",
	}, log)
	wf := workflow.New(catalog, store, notifier, log)
	engine := reporting.NewEngine(store)

	eventController := controllers.EventController{}
	registrationController := controllers.RegistrationController{}
	adminController := controllers.AdminController{}

	router := mux.NewRouter()
	router.Use(controllers.RecoveryMiddleware(log))
	router.Use(controllers.LoggingMiddleware(log))

	router.HandleFunc("/events", eventController.CreateEvent(catalog)).Methods("POST")
	router.HandleFunc("/categories", eventController.GetCategories(catalog)).Methods("GET")
	router.HandleFunc("/event-dates", eventController.GetEventDates(catalog)).Methods("GET")
	router.HandleFunc("/event-names", eventController.GetEventNames(catalog)).Methods("GET")
	router.HandleFunc("/register", registrationController.Register(wf)).Methods("POST")

	router.HandleFunc("/admin/event-dates", adminController.GetEventDates(catalog)).Methods("GET")
	router.HandleFunc("/admin/event-names", adminController.GetEventNames(catalog)).Methods("GET")
	router.HandleFunc("/admin/registrations", adminController.GetRegistrations(engine)).Methods("GET")
	router.HandleFunc("/admin/registrations/export", adminController.ExportCSV(engine)).Methods("GET")

	port := getEnv("PORT", "8000")
	log.WithField("port", port).Info("server started")
	log.Fatal(http.ListenAndServe(":"+port, router))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
