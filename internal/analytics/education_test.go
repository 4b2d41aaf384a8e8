package analytics

import (
	"testing"

	"github.com/aicare-lung/monitoring-service/internal/education"
)

func TestComputeEducationStats(t *testing.T) {
	pushes := []education.PushResponse{
		{PatientID: "p1", Category: "breathing", Status: education.StatusRead},
		{PatientID: "p1", Category: "breathing", Status: education.StatusSent},
		{PatientID: "p2", Category: "breathing", Status: education.StatusRead},
		{PatientID: "p2", Category: "wound_care", Status: education.StatusSent},
		{PatientID: "p3", Category: "", Status: education.StatusSent},
	}

	stats := ComputeEducationStats(pushes)

	if stats.TotalPushes != 5 || stats.ReadPushes != 2 {
		t.Errorf("pushes = %d read %d, want 5 total 2 read", stats.TotalPushes, stats.ReadPushes)
	}
	if stats.ReadRate != 40 {
		t.Errorf("read rate = %v, want 40", stats.ReadRate)
	}
	if stats.UniquePatients != 3 {
		t.Errorf("unique patients = %d, want 3", stats.UniquePatients)
	}

	if len(stats.Categories) != 3 {
		t.Fatalf("categories = %d, want 3", len(stats.Categories))
	}
	top := stats.Categories[0]
	if top.Category != "breathing" || top.Pushes != 3 || top.Reads != 2 {
		t.Errorf("top category = %+v, want breathing with 3 pushes, 2 reads", top)
	}
	if top.ReadRate != 66.7 {
		t.Errorf("breathing read rate = %v, want 66.7", top.ReadRate)
	}

	// Blank categories are grouped, not dropped.
	found := false
	for _, c := range stats.Categories {
		if c.Category == "uncategorized" && c.Pushes == 1 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an uncategorized bucket, got %+v", stats.Categories)
	}
}

func TestComputeEducationStats_Empty(t *testing.T) {
	stats := ComputeEducationStats(nil)
	if stats.TotalPushes != 0 || stats.ReadRate != 0 || stats.UniquePatients != 0 {
		t.Errorf("empty program stats = %+v, want zeros", stats)
	}
}
