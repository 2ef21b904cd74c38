package goal

import "math"

type Stats struct {
	TotalActive    int `json:"totalActive" yaml:"totalActive"`
	TotalCompleted int `json:"totalCompleted" yaml:"totalCompleted"`
	CompletionRate int `json:"completionRate" yaml:"completionRate"`
}

func ComputeStats(active, completed int) Stats {
	stats := Stats{TotalActive: active, TotalCompleted: completed}
	if total := active + completed; total > 0 {
		stats.CompletionRate = int(math.Round(float64(completed) * 100 / float64(total)))
	}
	return stats
}
