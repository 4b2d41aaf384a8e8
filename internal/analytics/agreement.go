package analytics

import (
	"encoding/json"
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/aicare-lung/monitoring-service/internal/report"
)

// MinAgreementSample is the minimum number of paired observations
// required before correlation statistics are meaningful.
const MinAgreementSample = 5

// ErrInsufficientSample means too few paired observations exist to
// compute agreement statistics.
var ErrInsufficientSample = errors.New("insufficient sample for agreement analysis")

// ErrUndefinedCorrelation means one side of the pairs has zero
// variance (e.g. a constant score), so Pearson r is undefined.
var ErrUndefinedCorrelation = errors.New("correlation undefined for constant scores")

// AgreementSymptoms are the sub-scores compared between the structured
// questionnaire and the AI-extracted values.
var AgreementSymptoms = []string{"pain", "dyspnea", "cough", "fatigue", "sleep", "appetite"}

// ExtractPairs collects paired questionnaire/AI observations for one
// symptom across reports. The questionnaire side comes from the raw
// questionnaire payload, the AI side from the structured sub-score.
// Reports with a missing or malformed payload are skipped for this
// computation only.
func ExtractPairs(reports []report.SymptomReport, symptom string) []ScorePair {
	var pairs []ScorePair
	for _, r := range reports {
		if r.QuestionnaireJSON == "" {
			continue
		}
		var payload map[string]json.Number
		if err := json.Unmarshal([]byte(r.QuestionnaireJSON), &payload); err != nil {
			continue
		}
		raw, ok := payload[symptom]
		if !ok {
			continue
		}
		q, err := raw.Float64()
		if err != nil {
			continue
		}

		var ai int
		switch symptom {
		case "pain":
			ai = r.PainScore
		case "dyspnea":
			ai = r.DyspneaScore
		case "cough":
			ai = r.CoughScore
		case "fatigue":
			ai = r.FatigueScore
		case "sleep":
			ai = r.SleepScore
		case "appetite":
			ai = r.AppetiteScore
		case "mood":
			ai = r.MoodScore
		default:
			continue
		}

		pairs = append(pairs, ScorePair{Questionnaire: q, AI: float64(ai)})
	}
	return pairs
}

// ComputeAgreement derives Pearson correlation (with a two-tailed
// Student's t p-value), mean absolute error, and Bland-Altman bias
// with 95% limits of agreement over paired observations. Differences
// are questionnaire minus AI. Fewer than MinAgreementSample pairs
// returns ErrInsufficientSample; a constant score series on either
// side returns ErrUndefinedCorrelation.
func ComputeAgreement(pairs []ScorePair) (*AgreementStats, error) {
	n := len(pairs)
	if n < MinAgreementSample {
		return nil, ErrInsufficientSample
	}

	q := make([]float64, n)
	ai := make([]float64, n)
	diffs := make([]float64, n)
	maeSum := 0.0
	for i, p := range pairs {
		q[i] = p.Questionnaire
		ai[i] = p.AI
		diffs[i] = p.Questionnaire - p.AI
		maeSum += math.Abs(p.Questionnaire - p.AI)
	}

	r := stat.Correlation(q, ai, nil)
	if math.IsNaN(r) {
		return nil, ErrUndefinedCorrelation
	}
	pValue := pearsonPValue(r, n)

	bias := stat.Mean(diffs, nil)
	stdDiff := stat.StdDev(diffs, nil)

	return &AgreementStats{
		SampleSize: n,
		PearsonR:   r,
		PValue:     pValue,
		MAE:        maeSum / float64(n),
		Bias:       bias,
		LoAUpper:   bias + 1.96*stdDiff,
		LoALower:   bias - 1.96*stdDiff,
	}, nil
}

// pearsonPValue is the two-tailed p-value of a Pearson correlation
// under the null hypothesis of no correlation, via the Student's t
// distribution with n-2 degrees of freedom.
func pearsonPValue(r float64, n int) float64 {
	if n <= 2 {
		return 1
	}
	denom := 1 - r*r
	if denom <= 0 {
		return 0
	}
	t := r * math.Sqrt(float64(n-2)/denom)
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 2)}
	return 2 * dist.Survival(math.Abs(t))
}
