package analytics

import (
	"errors"
	"math"
	"testing"

	"github.com/aicare-lung/monitoring-service/internal/report"
)

func TestComputeAgreement_InsufficientSample(t *testing.T) {
	pairs := []ScorePair{
		{Questionnaire: 3, AI: 4},
		{Questionnaire: 5, AI: 5},
		{Questionnaire: 7, AI: 6},
	}

	_, err := ComputeAgreement(pairs)
	if !errors.Is(err, ErrInsufficientSample) {
		t.Fatalf("3 pairs: got err %v, want ErrInsufficientSample", err)
	}
}

func TestComputeAgreement_PerfectCorrelation(t *testing.T) {
	var pairs []ScorePair
	for i := 0; i < 6; i++ {
		pairs = append(pairs, ScorePair{Questionnaire: float64(i), AI: float64(i)})
	}

	stats, err := ComputeAgreement(pairs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(stats.PearsonR-1) > 1e-9 {
		t.Errorf("pearson r = %v, want 1", stats.PearsonR)
	}
	if stats.PValue > 1e-6 {
		t.Errorf("p-value = %v, want ~0 for perfect correlation", stats.PValue)
	}
	if stats.MAE != 0 {
		t.Errorf("mae = %v, want 0", stats.MAE)
	}
	if stats.Bias != 0 || stats.LoAUpper != 0 || stats.LoALower != 0 {
		t.Errorf("bland-altman = bias %v loa [%v, %v], want all 0", stats.Bias, stats.LoALower, stats.LoAUpper)
	}
}

func TestComputeAgreement_ConstantOffset(t *testing.T) {
	// Questionnaire scores consistently 1 above AI, with enough spread
	// for a defined correlation.
	var pairs []ScorePair
	for _, ai := range []float64{1, 3, 5, 7, 9, 2} {
		pairs = append(pairs, ScorePair{Questionnaire: ai + 1, AI: ai})
	}

	stats, err := ComputeAgreement(pairs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(stats.Bias-1) > 1e-9 {
		t.Errorf("bias = %v, want 1 (questionnaire minus AI)", stats.Bias)
	}
	if math.Abs(stats.MAE-1) > 1e-9 {
		t.Errorf("mae = %v, want 1", stats.MAE)
	}
	// Zero spread of differences collapses the limits onto the bias.
	if stats.LoAUpper != stats.Bias || stats.LoALower != stats.Bias {
		t.Errorf("loa = [%v, %v], want both equal to bias", stats.LoALower, stats.LoAUpper)
	}
}

func TestComputeAgreement_ConstantScores(t *testing.T) {
	// A patient reporting the same AI score every day has zero variance
	// on that side, so Pearson r is undefined. The reducer must report
	// that instead of emitting NaN, which would break JSON rendering.
	var pairs []ScorePair
	for _, q := range []float64{1, 2, 3, 4, 5} {
		pairs = append(pairs, ScorePair{Questionnaire: q, AI: 5})
	}

	stats, err := ComputeAgreement(pairs)
	if !errors.Is(err, ErrUndefinedCorrelation) {
		t.Fatalf("constant AI scores: got err %v, want ErrUndefinedCorrelation", err)
	}
	if stats != nil {
		t.Errorf("expected nil stats, got %+v", stats)
	}

	for i := range pairs {
		pairs[i].Questionnaire = 3
		pairs[i].AI = float64(i)
	}
	if _, err := ComputeAgreement(pairs); !errors.Is(err, ErrUndefinedCorrelation) {
		t.Fatalf("constant questionnaire scores: got err %v, want ErrUndefinedCorrelation", err)
	}
}

func TestExtractPairs(t *testing.T) {
	reports := []report.SymptomReport{
		{PainScore: 6, QuestionnaireJSON: `{"pain": 5, "cough": 2}`},
		{PainScore: 3, QuestionnaireJSON: `{"pain": 4}`},
		{PainScore: 8, QuestionnaireJSON: `not json`},     // malformed, skipped
		{PainScore: 2, QuestionnaireJSON: ""},             // missing payload
		{PainScore: 1, QuestionnaireJSON: `{"cough": 3}`}, // no pain key
	}

	pairs := ExtractPairs(reports, "pain")
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}
	if pairs[0].Questionnaire != 5 || pairs[0].AI != 6 {
		t.Errorf("first pair = %+v, want q=5 ai=6", pairs[0])
	}
	if pairs[1].Questionnaire != 4 || pairs[1].AI != 3 {
		t.Errorf("second pair = %+v, want q=4 ai=3", pairs[1])
	}
}
