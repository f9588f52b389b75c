package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sagarmamodia/RemediX/internal/delivery/http/handler"
	"github.com/sagarmamodia/RemediX/internal/delivery/http/middleware"
	"github.com/sagarmamodia/RemediX/pkg/metrics"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	doctorHandler       *handler.DoctorHandler
	patientHandler      *handler.PatientHandler
	bookingHandler      *handler.BookingHandler
	consultationHandler *handler.ConsultationHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
	metricsMiddleware   *middleware.MetricsMiddleware
	metrics             *metrics.Metrics
}

func NewRouter(
	authHandler *handler.AuthHandler,
	doctorHandler *handler.DoctorHandler,
	patientHandler *handler.PatientHandler,
	bookingHandler *handler.BookingHandler,
	consultationHandler *handler.ConsultationHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	metricsMiddleware *middleware.MetricsMiddleware,
	m *metrics.Metrics,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		doctorHandler:       doctorHandler,
		patientHandler:      patientHandler,
		bookingHandler:      bookingHandler,
		consultationHandler: consultationHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
		metricsMiddleware:   metricsMiddleware,
		metrics:             m,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check and metrics
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)
	r.router.Handle("/metrics", r.metrics.Handler()).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/patient", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/register/doctor", r.authHandler.RegisterDoctor).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Doctor directory (public)
	api.HandleFunc("/doctors", r.doctorHandler.ListDoctors).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)

	// Instant matching (protected - patient only)
	instant := api.PathPrefix("/doctors").Subrouter()
	instant.Use(r.authMiddleware.Authenticate)
	instant.Use(middleware.RequirePatient)
	instant.HandleFunc("/instant", r.doctorHandler.FindInstantDoctors).Methods(http.MethodPost)

	// Doctor self-service (protected - doctor only)
	doctor := api.PathPrefix("/doctor").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)
	doctor.HandleFunc("/profile", r.doctorHandler.UpdateProfile).Methods(http.MethodPut)
	doctor.HandleFunc("/availability", r.doctorHandler.SetAvailability).Methods(http.MethodPatch)
	doctor.HandleFunc("/consultations", r.consultationHandler.ListForDoctor).Methods(http.MethodGet)
	doctor.HandleFunc("/consultations/{id}", r.consultationHandler.GetForDoctor).Methods(http.MethodGet)
	doctor.HandleFunc("/consultations/{id}/complete", r.consultationHandler.Complete).Methods(http.MethodPost)
	doctor.HandleFunc("/consultations/{id}/prescription", r.consultationHandler.AttachPrescription).Methods(http.MethodPost)

	// Patient self-service (protected - patient only)
	patient := api.PathPrefix("/patient").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)
	patient.HandleFunc("/profile", r.patientHandler.GetProfile).Methods(http.MethodGet)
	patient.HandleFunc("/profile", r.patientHandler.UpdateProfile).Methods(http.MethodPut)
	patient.HandleFunc("/consultations", r.consultationHandler.ListForPatient).Methods(http.MethodGet)
	patient.HandleFunc("/consultations/{id}", r.consultationHandler.GetForPatient).Methods(http.MethodGet)
	patient.HandleFunc("/bookings", r.bookingHandler.BookSlot).Methods(http.MethodPost)
	patient.HandleFunc("/bookings/check", r.bookingHandler.CheckSlot).Methods(http.MethodPost)
	patient.HandleFunc("/bookings/{id}/reschedule", r.bookingHandler.Reschedule).Methods(http.MethodPut)

	// Room join (protected - either participant)
	consultations := api.PathPrefix("/consultations").Subrouter()
	consultations.Use(r.authMiddleware.Authenticate)
	consultations.HandleFunc("/{id}/join", r.consultationHandler.Join).Methods(http.MethodPost)

	// Cross-cutting middleware
	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(r.metricsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
