package analytics

import (
	"sort"

	"github.com/aicare-lung/monitoring-service/internal/education"
)

// EducationStats summarizes push and read volume across the education
// program.
type EducationStats struct {
	TotalPushes    int                     `json:"total_pushes"`
	ReadPushes     int                     `json:"read_pushes"`
	ReadRate       float64                 `json:"read_rate"`
	UniquePatients int                     `json:"unique_patients"`
	Categories     []EducationCategoryStat `json:"categories"`
}

// EducationCategoryStat is the per-category push/read breakdown.
type EducationCategoryStat struct {
	Category string  `json:"category"`
	Pushes   int     `json:"pushes"`
	Reads    int     `json:"reads"`
	ReadRate float64 `json:"read_rate"`
}

// ComputeEducationStats reduces education pushes into program-level
// KPIs and a per-category breakdown, ordered by push volume.
func ComputeEducationStats(pushes []education.PushResponse) *EducationStats {
	stats := &EducationStats{}
	patients := make(map[string]struct{})
	type catCount struct{ pushes, reads int }
	categories := make(map[string]*catCount)

	for _, p := range pushes {
		stats.TotalPushes++
		patients[p.PatientID] = struct{}{}

		cat := p.Category
		if cat == "" {
			cat = "uncategorized"
		}
		cc, ok := categories[cat]
		if !ok {
			cc = &catCount{}
			categories[cat] = cc
		}
		cc.pushes++

		if p.Status == education.StatusRead {
			stats.ReadPushes++
			cc.reads++
		}
	}

	stats.UniquePatients = len(patients)
	if stats.TotalPushes > 0 {
		stats.ReadRate = round1(float64(stats.ReadPushes) / float64(stats.TotalPushes) * 100)
	}

	for cat, cc := range categories {
		entry := EducationCategoryStat{Category: cat, Pushes: cc.pushes, Reads: cc.reads}
		if cc.pushes > 0 {
			entry.ReadRate = round1(float64(cc.reads) / float64(cc.pushes) * 100)
		}
		stats.Categories = append(stats.Categories, entry)
	}
	sort.Slice(stats.Categories, func(i, j int) bool {
		if stats.Categories[i].Pushes != stats.Categories[j].Pushes {
			return stats.Categories[i].Pushes > stats.Categories[j].Pushes
		}
		return stats.Categories[i].Category < stats.Categories[j].Category
	})

	return stats
}
