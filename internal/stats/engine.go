// Package stats derives the dashboard aggregates from the graduate roster.
package stats

import (
	"sort"

	"github.com/noah-isme/ppgee-dashboard-api/internal/models"
)

const monthsPerYear = 12

// Compute filters graduates with f and aggregates the result. The advisor
// list covers the whole roster so it can populate the advisor filter.
func Compute(graduates []models.Graduate, f models.StatsFilter) models.GraduateStats {
	filtered := Filter(graduates, f)

	out := models.GraduateStats{
		Filter:         f,
		Total:          len(filtered),
		DefensesByYear: []models.YearTally{},
		Advisors:       Advisors(graduates),
	}

	courseCounts := make(map[models.Course]int, len(models.Courses))
	statusCounts := make(map[models.GraduateStatus]int, len(models.GraduateStatuses))
	byYear := map[int]*models.YearTally{}
	var mastersMonths, doctorateMonths duration

	for _, g := range filtered {
		courseCounts[g.Course]++
		statusCounts[g.Status]++

		if g.Status != models.StatusDefended {
			continue
		}
		switch g.Course {
		case models.CourseMasters:
			out.MastersDefended++
		case models.CourseDoctorate:
			out.DoctorateDefended++
		}

		if g.DefenseYear == nil {
			continue
		}
		months := (*g.DefenseYear - g.EntryYear) * monthsPerYear
		tally, ok := byYear[*g.DefenseYear]
		if !ok {
			tally = &models.YearTally{Year: *g.DefenseYear}
			byYear[*g.DefenseYear] = tally
		}
		switch g.Course {
		case models.CourseMasters:
			tally.Masters++
			mastersMonths.add(months)
		case models.CourseDoctorate:
			tally.Doctorate++
			doctorateMonths.add(months)
		}
	}

	out.MastersDuration = mastersMonths.stat()
	out.DoctorateDuration = doctorateMonths.stat()

	for _, tally := range byYear {
		out.DefensesByYear = append(out.DefensesByYear, *tally)
	}
	sort.Slice(out.DefensesByYear, func(i, j int) bool {
		return out.DefensesByYear[i].Year < out.DefensesByYear[j].Year
	})

	out.CourseDistribution = make([]models.CountByLabel, 0, len(models.Courses))
	for _, c := range models.Courses {
		out.CourseDistribution = append(out.CourseDistribution, models.CountByLabel{Label: string(c), Count: courseCounts[c]})
	}
	out.StatusDistribution = make([]models.CountByLabel, 0, len(models.GraduateStatuses))
	for _, s := range models.GraduateStatuses {
		out.StatusDistribution = append(out.StatusDistribution, models.CountByLabel{Label: string(s), Count: statusCounts[s]})
	}
	return out
}

// Advisors returns the distinct advisor names, sorted.
func Advisors(graduates []models.Graduate) []string {
	seen := make(map[string]struct{}, len(graduates))
	out := make([]string, 0)
	for _, g := range graduates {
		if _, ok := seen[g.Advisor]; ok {
			continue
		}
		seen[g.Advisor] = struct{}{}
		out = append(out, g.Advisor)
	}
	sort.Strings(out)
	return out
}

type duration struct {
	total   int
	samples int
}

func (d *duration) add(months int) {
	d.total += months
	d.samples++
}

func (d duration) stat() models.DurationStat {
	if d.samples == 0 {
		return models.DurationStat{}
	}
	return models.DurationStat{AverageMonths: float64(d.total) / float64(d.samples), Samples: d.samples}
}
