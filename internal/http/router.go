package http

import (
	"database/sql"
	"net/http"

	"github.com/aicare-lung/monitoring-service/internal/analytics"
	"github.com/aicare-lung/monitoring-service/internal/auth"
	"github.com/aicare-lung/monitoring-service/internal/education"
	"github.com/aicare-lung/monitoring-service/internal/intervention"
	"github.com/aicare-lung/monitoring-service/internal/messaging"
	"github.com/aicare-lung/monitoring-service/internal/patient"
	"github.com/aicare-lung/monitoring-service/internal/problem"
	"github.com/aicare-lung/monitoring-service/internal/report"
	"github.com/aicare-lung/monitoring-service/internal/schedule"
	"github.com/aicare-lung/monitoring-service/internal/telemetry"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

// SetupRouter initializes all routes for the application
func SetupRouter(db *sql.DB, verifier *auth.Verifier, perms auth.Permissions, publisher messaging.PublisherInterface, metrics *telemetry.Metrics) *mux.Router {
	// Initialize patient components
	patientRepo := patient.NewRepository(db)
	patientService := patient.NewService(patientRepo, publisher)
	patientHandler := patient.NewHandler(patientService)

	// Initialize symptom report components
	reportRepo := report.NewRepository(db)
	reportService := report.NewService(reportRepo, publisher, metrics)
	reportHandler := report.NewHandler(reportService)

	// Initialize intervention components
	interventionRepo := intervention.NewRepository(db)
	interventionService := intervention.NewService(interventionRepo, publisher)
	interventionHandler := intervention.NewHandler(interventionService)

	// Initialize follow-up schedule components
	scheduleRepo := schedule.NewRepository(db)
	scheduleService := schedule.NewService(scheduleRepo, publisher)
	scheduleHandler := schedule.NewHandler(scheduleService)

	// Initialize education push components
	educationRepo := education.NewRepository(db)
	educationService := education.NewService(educationRepo, publisher)
	educationHandler := education.NewHandler(educationService)

	// Initialize problem list components
	problemRepo := problem.NewRepository(db)
	problemService := problem.NewService(problemRepo, publisher)
	problemHandler := problem.NewHandler(problemService)

	// Analytics reads through the domain services so it sees the same
	// cached views the CRUD endpoints serve.
	analyticsService := analytics.NewService(patientService, reportService, interventionService, scheduleService, educationService)
	analyticsHandler := analytics.NewHandler(analyticsService)

	r := mux.NewRouter()
	r.Use(otelmux.Middleware("monitoring-service"))

	// Public health endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"monitoring-service"}`))
	}).Methods("GET")

	// Patient routes
	r.Handle("/patients",
		auth.Middleware(verifier)(
			auth.RequirePermission("patient:create", perms)(
				http.HandlerFunc(patientHandler.CreatePatient),
			),
		),
	).Methods("POST")

	r.Handle("/patients",
		auth.Middleware(verifier)(
			auth.RequirePermission("patient:view", perms)(
				http.HandlerFunc(patientHandler.ListPatients),
			),
		),
	).Methods("GET")

	r.Handle("/patients/{id}",
		auth.Middleware(verifier)(
			auth.RequirePermission("patient:view", perms)(
				http.HandlerFunc(patientHandler.GetPatient),
			),
		),
	).Methods("GET")

	r.Handle("/patients/{id}",
		auth.Middleware(verifier)(
			auth.RequirePermission("patient:update", perms)(
				http.HandlerFunc(patientHandler.UpdatePatient),
			),
		),
	).Methods("PUT")

	r.Handle("/patients/{id}",
		auth.Middleware(verifier)(
			auth.RequirePermission("patient:delete", perms)(
				http.HandlerFunc(patientHandler.DeletePatient),
			),
		),
	).Methods("DELETE")

	// Symptom report routes
	r.Handle("/reports",
		auth.Middleware(verifier)(
			auth.RequirePermission("report:create", perms)(
				http.HandlerFunc(reportHandler.IngestReport),
			),
		),
	).Methods("POST")

	r.Handle("/reports",
		auth.Middleware(verifier)(
			auth.RequirePermission("report:view", perms)(
				http.HandlerFunc(reportHandler.ListReports),
			),
		),
	).Methods("GET")

	r.Handle("/reports/{id}",
		auth.Middleware(verifier)(
			auth.RequirePermission("report:view", perms)(
				http.HandlerFunc(reportHandler.GetReport),
			),
		),
	).Methods("GET")

	// Alert queue routes
	r.Handle("/alerts",
		auth.Middleware(verifier)(
			auth.RequirePermission("alert:view", perms)(
				http.HandlerFunc(reportHandler.ListPendingAlerts),
			),
		),
	).Methods("GET")

	r.Handle("/alerts/{id}/handle",
		auth.Middleware(verifier)(
			auth.RequirePermission("alert:handle", perms)(
				http.HandlerFunc(reportHandler.HandleAlert),
			),
		),
	).Methods("POST")

	// Intervention routes
	r.Handle("/interventions",
		auth.Middleware(verifier)(
			auth.RequirePermission("intervention:create", perms)(
				http.HandlerFunc(interventionHandler.CreateIntervention),
			),
		),
	).Methods("POST")

	r.Handle("/interventions",
		auth.Middleware(verifier)(
			auth.RequirePermission("intervention:view", perms)(
				http.HandlerFunc(interventionHandler.ListInterventions),
			),
		),
	).Methods("GET")

	// Follow-up schedule routes
	r.Handle("/schedules",
		auth.Middleware(verifier)(
			auth.RequirePermission("schedule:create", perms)(
				http.HandlerFunc(scheduleHandler.CreateSchedule),
			),
		),
	).Methods("POST")

	r.Handle("/schedules",
		auth.Middleware(verifier)(
			auth.RequirePermission("schedule:view", perms)(
				http.HandlerFunc(scheduleHandler.ListSchedules),
			),
		),
	).Methods("GET")

	r.Handle("/schedules/{id}",
		auth.Middleware(verifier)(
			auth.RequirePermission("schedule:update", perms)(
				http.HandlerFunc(scheduleHandler.UpdateSchedule),
			),
		),
	).Methods("PUT")

	// Education push routes
	r.Handle("/education/materials",
		auth.Middleware(verifier)(
			auth.RequirePermission("education:view", perms)(
				http.HandlerFunc(educationHandler.ListMaterials),
			),
		),
	).Methods("GET")

	r.Handle("/education/pushes",
		auth.Middleware(verifier)(
			auth.RequirePermission("education:push", perms)(
				http.HandlerFunc(educationHandler.PushMaterial),
			),
		),
	).Methods("POST")

	r.Handle("/education/pushes",
		auth.Middleware(verifier)(
			auth.RequirePermission("education:view", perms)(
				http.HandlerFunc(educationHandler.ListPushes),
			),
		),
	).Methods("GET")

	r.Handle("/education/pushes/{id}/read",
		auth.Middleware(verifier)(
			auth.RequirePermission("education:push", perms)(
				http.HandlerFunc(educationHandler.MarkRead),
			),
		),
	).Methods("POST")

	// Problem list routes
	r.Handle("/problems",
		auth.Middleware(verifier)(
			auth.RequirePermission("problem:create", perms)(
				http.HandlerFunc(problemHandler.CreateProblem),
			),
		),
	).Methods("POST")

	r.Handle("/problems",
		auth.Middleware(verifier)(
			auth.RequirePermission("problem:view", perms)(
				http.HandlerFunc(problemHandler.ListProblems),
			),
		),
	).Methods("GET")

	r.Handle("/problems/{id}",
		auth.Middleware(verifier)(
			auth.RequirePermission("problem:update", perms)(
				http.HandlerFunc(problemHandler.UpdateProblem),
			),
		),
	).Methods("PUT")

	// Dashboard and analytics routes
	r.Handle("/dashboard/stats",
		auth.Middleware(verifier)(
			auth.RequirePermission("dashboard:view", perms)(
				http.HandlerFunc(analyticsHandler.DashboardStats),
			),
		),
	).Methods("GET")

	r.Handle("/analytics/trend",
		auth.Middleware(verifier)(
			auth.RequirePermission("analytics:view", perms)(
				http.HandlerFunc(analyticsHandler.DailyTrend),
			),
		),
	).Methods("GET")

	r.Handle("/analytics/adherence",
		auth.Middleware(verifier)(
			auth.RequirePermission("analytics:view", perms)(
				http.HandlerFunc(analyticsHandler.AdherenceTrend),
			),
		),
	).Methods("GET")

	r.Handle("/analytics/symptoms",
		auth.Middleware(verifier)(
			auth.RequirePermission("analytics:view", perms)(
				http.HandlerFunc(analyticsHandler.SymptomFrequency),
			),
		),
	).Methods("GET")

	r.Handle("/analytics/cohorts",
		auth.Middleware(verifier)(
			auth.RequirePermission("analytics:view", perms)(
				http.HandlerFunc(analyticsHandler.CohortStats),
			),
		),
	).Methods("GET")

	r.Handle("/analytics/agreement",
		auth.Middleware(verifier)(
			auth.RequirePermission("analytics:view", perms)(
				http.HandlerFunc(analyticsHandler.AgreementStats),
			),
		),
	).Methods("GET")

	r.Handle("/analytics/compliance/{patient_id}",
		auth.Middleware(verifier)(
			auth.RequirePermission("analytics:view", perms)(
				http.HandlerFunc(analyticsHandler.PatientCompliance),
			),
		),
	).Methods("GET")

	r.Handle("/analytics/high-alert",
		auth.Middleware(verifier)(
			auth.RequirePermission("analytics:view", perms)(
				http.HandlerFunc(analyticsHandler.HighAlertPatients),
			),
		),
	).Methods("GET")

	r.Handle("/analytics/not-reported",
		auth.Middleware(verifier)(
			auth.RequirePermission("analytics:view", perms)(
				http.HandlerFunc(analyticsHandler.NotReportedToday),
			),
		),
	).Methods("GET")

	r.Handle("/analytics/workload",
		auth.Middleware(verifier)(
			auth.RequirePermission("analytics:view", perms)(
				http.HandlerFunc(analyticsHandler.Workload),
			),
		),
	).Methods("GET")

	r.Handle("/analytics/alerts",
		auth.Middleware(verifier)(
			auth.RequirePermission("analytics:view", perms)(
				http.HandlerFunc(analyticsHandler.AlertDistribution),
			),
		),
	).Methods("GET")

	r.Handle("/analytics/education",
		auth.Middleware(verifier)(
			auth.RequirePermission("analytics:view", perms)(
				http.HandlerFunc(analyticsHandler.EducationStats),
			),
		),
	).Methods("GET")

	return r
}
