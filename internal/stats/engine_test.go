package stats

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ppgee-dashboard-api/internal/models"
)

func intPtr(v int) *int { return &v }

func grad(id string, entry int, defense *int, course models.Course, status models.GraduateStatus, advisor string) models.Graduate {
	return models.Graduate{ID: id, Name: id, EntryYear: entry, DefenseYear: defense, Course: course, Status: status, Advisor: advisor}
}

func roster() []models.Graduate {
	return []models.Graduate{
		grad("a", 2016, intPtr(2018), models.CourseMasters, models.StatusDefended, "Prof. Lima"),
		grad("b", 2015, intPtr(2019), models.CourseDoctorate, models.StatusDefended, "Prof. Costa"),
		grad("c", 2017, intPtr(2019), models.CourseMasters, models.StatusDefended, "Prof. Lima"),
		grad("d", 2018, intPtr(2021), models.CourseMasters, models.StatusDefended, "Prof. Alves"),
		grad("e", 2020, nil, models.CourseDoctorate, models.StatusEnrolled, "Prof. Costa"),
		grad("f", 2019, intPtr(2022), models.CourseDoctorate, models.StatusEnrolled, "Prof. Alves"),
	}
}

func TestComputeScenario(t *testing.T) {
	graduates := []models.Graduate{
		grad("1", 2018, intPtr(2020), models.CourseMasters, models.StatusDefended, "Prof. Lima"),
		grad("2", 2019, nil, models.CourseDoctorate, models.StatusEnrolled, "Prof. Lima"),
	}

	s := Compute(graduates, models.StatsFilter{})

	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 1, s.MastersDefended)
	assert.Equal(t, 0, s.DoctorateDefended)
	assert.Equal(t, models.DurationStat{AverageMonths: 24, Samples: 1}, s.MastersDuration)
	assert.False(t, s.DoctorateDuration.Available())
	assert.Equal(t, 0.0, s.DoctorateDuration.AverageMonths)
	assert.Equal(t, []models.YearTally{{Year: 2020, Masters: 1, Doctorate: 0}}, s.DefensesByYear)
	assert.Equal(t, []models.CountByLabel{{Label: "Mestrado", Count: 1}, {Label: "Doutorado", Count: 1}}, s.CourseDistribution)
	assert.Equal(t, []models.CountByLabel{{Label: "Defendido", Count: 1}, {Label: "Cursando", Count: 1}}, s.StatusDistribution)
}

func TestComputeRoster(t *testing.T) {
	s := Compute(roster(), models.StatsFilter{})

	assert.Equal(t, 3, s.MastersDefended)
	assert.Equal(t, 1, s.DoctorateDefended)
	// (24 + 24 + 36) / 3
	assert.Equal(t, 28.0, s.MastersDuration.AverageMonths)
	assert.Equal(t, 3, s.MastersDuration.Samples)
	assert.Equal(t, 48.0, s.DoctorateDuration.AverageMonths)
	assert.Equal(t, []models.YearTally{
		{Year: 2018, Masters: 1},
		{Year: 2019, Masters: 1, Doctorate: 1},
		{Year: 2021, Masters: 1},
	}, s.DefensesByYear)
	assert.Equal(t, []string{"Prof. Alves", "Prof. Costa", "Prof. Lima"}, s.Advisors)
}

func TestComputeEmpty(t *testing.T) {
	s := Compute(nil, models.StatsFilter{})
	assert.Zero(t, s.Total)
	assert.NotNil(t, s.DefensesByYear)
	assert.Empty(t, s.DefensesByYear)
	assert.Equal(t, models.DurationStat{}, s.MastersDuration)
	assert.Len(t, s.CourseDistribution, 2)
	assert.Empty(t, s.Advisors)
}

func TestFilterYearBoundsOnlyConstrainDefended(t *testing.T) {
	f := models.StatsFilter{StartYear: intPtr(2019), EndYear: intPtr(2021)}
	got := Filter(roster(), f)

	ids := make([]string, 0, len(got))
	for _, g := range got {
		ids = append(ids, g.ID)
		if g.DefenseYear != nil {
			assert.GreaterOrEqual(t, *g.DefenseYear, 2019)
			assert.LessOrEqual(t, *g.DefenseYear, 2021)
		}
	}
	assert.Equal(t, []string{"b", "c", "d", "e"}, ids)
}

func TestFilterBoundsProperty(t *testing.T) {
	for lo := 2015; lo <= 2023; lo++ {
		for hi := lo; hi <= 2023; hi++ {
			for _, g := range Filter(roster(), models.StatsFilter{StartYear: intPtr(lo), EndYear: intPtr(hi)}) {
				if g.DefenseYear == nil {
					continue
				}
				require.True(t, *g.DefenseYear >= lo && *g.DefenseYear <= hi, "lo=%d hi=%d id=%s", lo, hi, g.ID)
			}
		}
	}
}

func TestFilterExactMatches(t *testing.T) {
	course := models.CourseDoctorate
	status := models.StatusEnrolled
	advisor := "Prof. Costa"

	got := Filter(roster(), models.StatsFilter{Course: &course, Status: &status, Advisor: &advisor})
	require.Len(t, got, 1)
	assert.Equal(t, "e", got[0].ID)

	s := Compute(roster(), models.StatsFilter{Course: &course})
	assert.Equal(t, 3, s.Total)
	assert.Len(t, s.Advisors, 3)
}

func TestDurationNonNegativeWhenDefenseAfterEntry(t *testing.T) {
	s := Compute([]models.Graduate{
		grad("x", 2020, intPtr(2020), models.CourseMasters, models.StatusDefended, ""),
		grad("y", 2019, intPtr(2023), models.CourseDoctorate, models.StatusDefended, ""),
	}, models.StatsFilter{})
	assert.GreaterOrEqual(t, s.MastersDuration.AverageMonths, 0.0)
	assert.Equal(t, 0.0, s.MastersDuration.AverageMonths)
	assert.Equal(t, 48.0, s.DoctorateDuration.AverageMonths)
}

func TestDefaultFilter(t *testing.T) {
	f := DefaultFilter(roster())
	require.NotNil(t, f.StartYear)
	assert.Equal(t, 2018, *f.StartYear)
	assert.Nil(t, f.EndYear)
	assert.Nil(t, f.Course)
	assert.Nil(t, f.Status)
	assert.Nil(t, f.Advisor)

	assert.Nil(t, DefaultFilter([]models.Graduate{grad("e", 2020, nil, models.CourseMasters, models.StatusEnrolled, "")}).StartYear)
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter(url.Values{
		"startYear": {"2019"},
		"endYear":   {""},
		"course":    {"all"},
		"status":    {"Defendido"},
		"advisor":   {"Prof. Lima"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2019, *f.StartYear)
	assert.Nil(t, f.EndYear)
	assert.Nil(t, f.Course)
	assert.Equal(t, models.StatusDefended, *f.Status)
	assert.Equal(t, "Prof. Lima", *f.Advisor)

	round, err := ParseFilter(Encode(f))
	require.NoError(t, err)
	assert.Equal(t, f, round)

	_, err = ParseFilter(url.Values{"startYear": {"dois mil"}})
	assert.Error(t, err)
	_, err = ParseFilter(url.Values{"course": {"Graduação"}})
	assert.Error(t, err)
}

func TestHasFilterParams(t *testing.T) {
	assert.False(t, HasFilterParams(url.Values{"page": {"1"}}))
	assert.True(t, HasFilterParams(url.Values{"course": {"all"}}))
}
