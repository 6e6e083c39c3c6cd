package view

import (
	"math"
	"sort"
	"time"

	"github.com/rpggio/sidetrack/internal/domain/project"
)

// StageCount is one slice of the stage distribution.
type StageCount struct {
	Stage project.Stage `json:"stage"`
	Count int           `json:"count"`
}

// MonthlyProgress is the rounded average progress of projects last updated in Month (YYYY-MM).
type MonthlyProgress struct {
	Month    string `json:"month"`
	Progress int    `json:"progress"`
	Projects int    `json:"projects"`
}

// Insights summarizes a collection for charts.
type Insights struct {
	Total           int               `json:"total"`
	Monetized       int               `json:"monetized"`
	Stages          []StageCount      `json:"stages"`
	ProgressByMonth []MonthlyProgress `json:"progressByMonth"`
}

// ComputeInsights counts projects per stage (unset counts as Idea) and
// averages progress per month of lastUpdated. Projects without a parseable
// lastUpdated or without progress are left out of the monthly series.
func ComputeInsights(projects []project.Project) Insights {
	out := Insights{
		Total:           len(projects),
		Stages:          []StageCount{},
		ProgressByMonth: []MonthlyProgress{},
	}

	stageCounts := make(map[project.Stage]int)
	type acc struct{ total, count int }
	months := make(map[string]*acc)

	for _, p := range projects {
		if p.IsMonetized {
			out.Monetized++
		}

		stage := p.Stage
		if stage == "" {
			stage = project.StageIdea
		}
		stageCounts[stage]++

		if p.LastUpdated == "" || p.Progress == nil {
			continue
		}
		day, err := time.Parse(time.DateOnly, p.LastUpdated)
		if err != nil {
			continue
		}
		key := day.Format("2006-01")
		a, ok := months[key]
		if !ok {
			a = &acc{}
			months[key] = a
		}
		a.total += *p.Progress
		a.count++
	}

	for _, stage := range project.Stages {
		if n := stageCounts[stage]; n > 0 {
			out.Stages = append(out.Stages, StageCount{Stage: stage, Count: n})
		}
	}

	keys := make([]string, 0, len(months))
	for k := range months {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		a := months[k]
		out.ProgressByMonth = append(out.ProgressByMonth, MonthlyProgress{
			Month:    k,
			Progress: int(math.Round(float64(a.total) / float64(a.count))),
			Projects: a.count,
		})
	}

	return out
}
