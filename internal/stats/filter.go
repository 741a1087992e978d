package stats

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/noah-isme/ppgee-dashboard-api/internal/models"
)

// Query parameter names understood by ParseFilter.
const (
	ParamStartYear = "startYear"
	ParamEndYear   = "endYear"
	ParamCourse    = "course"
	ParamStatus    = "status"
	ParamAdvisor   = "advisor"
)

const allSentinel = "all"

var filterParams = []string{ParamStartYear, ParamEndYear, ParamCourse, ParamStatus, ParamAdvisor}

// Matches reports whether g passes every active predicate of f.
func Matches(g models.Graduate, f models.StatsFilter) bool {
	if g.DefenseYear != nil {
		if f.StartYear != nil && *g.DefenseYear < *f.StartYear {
			return false
		}
		if f.EndYear != nil && *g.DefenseYear > *f.EndYear {
			return false
		}
	}
	if f.Course != nil && g.Course != *f.Course {
		return false
	}
	if f.Status != nil && g.Status != *f.Status {
		return false
	}
	if f.Advisor != nil && g.Advisor != *f.Advisor {
		return false
	}
	return true
}

// Filter returns the graduates passing f, preserving order.
func Filter(graduates []models.Graduate, f models.StatsFilter) []models.Graduate {
	out := make([]models.Graduate, 0, len(graduates))
	for _, g := range graduates {
		if Matches(g, f) {
			out = append(out, g)
		}
	}
	return out
}

// DefaultFilter starts at the earliest defense year on record; every other predicate is off.
func DefaultFilter(graduates []models.Graduate) models.StatsFilter {
	var f models.StatsFilter
	for _, g := range graduates {
		if g.DefenseYear == nil {
			continue
		}
		if f.StartYear == nil || *g.DefenseYear < *f.StartYear {
			year := *g.DefenseYear
			f.StartYear = &year
		}
	}
	return f
}

// HasFilterParams reports whether any filter parameter was supplied, even as "all".
func HasFilterParams(values url.Values) bool {
	for _, p := range filterParams {
		if _, ok := values[p]; ok {
			return true
		}
	}
	return false
}

// ParseFilter reads a filter from query values. Empty values and "all" disable a predicate.
func ParseFilter(values url.Values) (models.StatsFilter, error) {
	var f models.StatsFilter
	var err error

	if f.StartYear, err = parseYearParam(values, ParamStartYear); err != nil {
		return f, err
	}
	if f.EndYear, err = parseYearParam(values, ParamEndYear); err != nil {
		return f, err
	}

	if raw, ok := active(values, ParamCourse); ok {
		course := models.Course(raw)
		if course != models.CourseMasters && course != models.CourseDoctorate {
			return f, fmt.Errorf("%s must be %s or %s", ParamCourse, models.CourseMasters, models.CourseDoctorate)
		}
		f.Course = &course
	}
	if raw, ok := active(values, ParamStatus); ok {
		status := models.GraduateStatus(raw)
		if status != models.StatusDefended && status != models.StatusEnrolled {
			return f, fmt.Errorf("%s must be %s or %s", ParamStatus, models.StatusDefended, models.StatusEnrolled)
		}
		f.Status = &status
	}
	if raw, ok := active(values, ParamAdvisor); ok {
		f.Advisor = &raw
	}
	return f, nil
}

// Encode renders f as query values, the inverse of ParseFilter.
func Encode(f models.StatsFilter) url.Values {
	values := url.Values{}
	if f.StartYear != nil {
		values.Set(ParamStartYear, strconv.Itoa(*f.StartYear))
	}
	if f.EndYear != nil {
		values.Set(ParamEndYear, strconv.Itoa(*f.EndYear))
	}
	if f.Course != nil {
		values.Set(ParamCourse, string(*f.Course))
	}
	if f.Status != nil {
		values.Set(ParamStatus, string(*f.Status))
	}
	if f.Advisor != nil {
		values.Set(ParamAdvisor, *f.Advisor)
	}
	return values
}

func active(values url.Values, key string) (string, bool) {
	raw := values.Get(key)
	if raw == "" || strings.EqualFold(strings.TrimSpace(raw), allSentinel) {
		return "", false
	}
	return raw, true
}

func parseYearParam(values url.Values, key string) (*int, error) {
	raw, ok := active(values, key)
	if !ok {
		return nil, nil
	}
	year, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%s must be a year", key)
	}
	return &year, nil
}
