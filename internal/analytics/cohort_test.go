package analytics

import (
	"testing"

	"github.com/aicare-lung/monitoring-service/internal/patient"
	"github.com/aicare-lung/monitoring-service/internal/report"
	"github.com/aicare-lung/monitoring-service/internal/triage"
)

func TestAgeBracket(t *testing.T) {
	cases := []struct {
		age  int
		want string
	}{
		{30, "<50"},
		{49, "<50"},
		{50, "50-59"},
		{59, "50-59"},
		{60, "60-69"},
		{69, "60-69"},
		{70, "70+"},
		{85, "70+"},
	}
	for _, tc := range cases {
		if got := AgeBracket(tc.age); got != tc.want {
			t.Errorf("AgeBracket(%d) = %s, want %s", tc.age, got, tc.want)
		}
	}
}

func TestPostOpPhase(t *testing.T) {
	cases := []struct {
		day  int
		want string
	}{
		{0, "D0-7"},
		{7, "D0-7"},
		{8, "D8-30"},
		{30, "D8-30"},
		{31, "D31-90"},
		{90, "D31-90"},
		{91, "D91+"},
	}
	for _, tc := range cases {
		if got := PostOpPhase(tc.day); got != tc.want {
			t.Errorf("PostOpPhase(%d) = %s, want %s", tc.day, got, tc.want)
		}
	}
}

func TestCohortStats_BySurgeryType(t *testing.T) {
	patients := []patient.PatientResponse{
		{ID: "p1", SurgeryType: "lobectomy"},
		{ID: "p2", SurgeryType: "lobectomy"},
		{ID: "p3", SurgeryType: "wedge_resection"},
	}
	reports := []report.SymptomReport{
		{PatientID: "p1", OverallScore: 4, AlertLevel: triage.LevelRed},
		{PatientID: "p1", OverallScore: 2, AlertLevel: triage.LevelGreen},
		{PatientID: "p2", OverallScore: 6, AlertLevel: triage.LevelYellow},
		{PatientID: "dangling", OverallScore: 9, AlertLevel: triage.LevelRed},
	}

	groups := CohortStats(patients, reports, GroupBySurgeryType, testNow)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	lob := groups[0]
	if lob.Group != "lobectomy" {
		t.Fatalf("first group = %s, want lobectomy", lob.Group)
	}
	if lob.PatientCount != 2 || lob.ReportCount != 3 {
		t.Errorf("lobectomy counts = %d patients / %d reports, want 2/3", lob.PatientCount, lob.ReportCount)
	}
	if lob.MeanScore != 4 {
		t.Errorf("lobectomy mean score = %v, want 4", lob.MeanScore)
	}
	if lob.RedRate != 33.3 {
		t.Errorf("lobectomy red rate = %v, want 33.3", lob.RedRate)
	}

	// The dangling report must not join any group.
	if groups[1].ReportCount != 0 {
		t.Errorf("wedge_resection report count = %d, want 0", groups[1].ReportCount)
	}
}

func TestCohortStats_ByAgeBracket(t *testing.T) {
	patients := []patient.PatientResponse{
		{ID: "p1", Age: 45},
		{ID: "p2", Age: 65},
		{ID: "p3", Age: 72},
	}

	groups := CohortStats(patients, nil, GroupByAgeBracket, testNow)
	if len(groups) != 4 {
		t.Fatalf("expected all 4 brackets, got %d", len(groups))
	}
	want := map[string]int{"<50": 1, "50-59": 0, "60-69": 1, "70+": 1}
	for _, g := range groups {
		if g.PatientCount != want[g.Group] {
			t.Errorf("bracket %s count = %d, want %d", g.Group, g.PatientCount, want[g.Group])
		}
	}
}

func TestCohortStats_ByPostOpPhase(t *testing.T) {
	patients := []patient.PatientResponse{
		{ID: "p1", SurgeryDate: testNow.AddDate(0, 0, -3).Format("2006-01-02")},
		{ID: "p2", SurgeryDate: testNow.AddDate(0, 0, -45).Format("2006-01-02")},
	}

	groups := CohortStats(patients, nil, GroupByPostOpPhase, testNow)
	counts := make(map[string]int)
	for _, g := range groups {
		counts[g.Group] = g.PatientCount
	}
	if counts["D0-7"] != 1 || counts["D31-90"] != 1 {
		t.Errorf("phase counts = %v, want one in D0-7 and one in D31-90", counts)
	}
}

func TestCohortStats_UnknownDimension(t *testing.T) {
	if got := CohortStats(nil, nil, "shoe_size", testNow); got != nil {
		t.Errorf("unknown dimension returned %+v, want nil", got)
	}
}
