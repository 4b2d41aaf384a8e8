package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/aicare-lung/monitoring-service/internal/analytics"
	"github.com/aicare-lung/monitoring-service/internal/db"
	"github.com/aicare-lung/monitoring-service/internal/patient"
	"github.com/aicare-lung/monitoring-service/internal/report"
)

// Nightly job that recomputes per-patient check-in compliance and logs
// patients whose streak has broken, so case managers can follow up.
func main() {
	log.Println("Compliance Snapshot Job - Starting")

	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
		os.Exit(1)
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	patientRepo := patient.NewRepository(database)
	reportRepo := report.NewRepository(database)

	patients, err := patientRepo.ListPatients(ctx)
	if err != nil {
		log.Fatalf("Failed to list patients: %v", err)
		os.Exit(1)
	}

	now := time.Now().UTC()
	var active, lapsed int
	for _, p := range patients {
		if !patient.IsActiveStatus(p.Status) {
			continue
		}
		active++

		reports, err := reportRepo.ListPatientReports(ctx, p.ID)
		if err != nil {
			log.Printf("Warning: skipping patient %s: %v", p.ID, err)
			continue
		}

		stats := analytics.PatientCompliance(p, reports, now)
		if stats.CurrentStreak == 0 && stats.TotalDays > 0 {
			lapsed++
			log.Printf("patient %s lapsed: rate=%.1f%% completed=%d/%d",
				p.ID, stats.ComplianceRate, stats.TotalCompleted, stats.TotalDays)
		}
	}

	log.Printf("✓ Snapshot completed: %d active patients, %d lapsed", active, lapsed)
	log.Println("Compliance Snapshot Job - Finished")
}
