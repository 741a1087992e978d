package models

// StatsFilter is a conjunction of optional predicates over graduates; nil disables a predicate.
// Year bounds are inclusive and only constrain graduates that have a defense year.
type StatsFilter struct {
	StartYear *int            `json:"startYear,omitempty"`
	EndYear   *int            `json:"endYear,omitempty"`
	Course    *Course         `json:"course,omitempty"`
	Status    *GraduateStatus `json:"status,omitempty"`
	Advisor   *string         `json:"advisor,omitempty"`
}

// DurationStat is the mean months-to-degree over Samples graduates. Zero samples means not available.
type DurationStat struct {
	AverageMonths float64 `json:"averageMonths"`
	Samples       int     `json:"samples"`
}

// Available reports whether any graduate contributed to the average.
func (d DurationStat) Available() bool {
	return d.Samples > 0
}

// YearTally counts defenses per course in one year.
type YearTally struct {
	Year      int `json:"year"`
	Masters   int `json:"mestrado"`
	Doctorate int `json:"doutorado"`
}

// CountByLabel is one slice of a distribution.
type CountByLabel struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// GraduateStats is the aggregate view of the graduate roster under a filter.
type GraduateStats struct {
	Filter             StatsFilter    `json:"filter"`
	Total              int            `json:"total"`
	MastersDefended    int            `json:"mastersDefended"`
	DoctorateDefended  int            `json:"doctorateDefended"`
	MastersDuration    DurationStat   `json:"mastersDuration"`
	DoctorateDuration  DurationStat   `json:"doctorateDuration"`
	DefensesByYear     []YearTally    `json:"defensesByYear"`
	CourseDistribution []CountByLabel `json:"courseDistribution"`
	StatusDistribution []CountByLabel `json:"statusDistribution"`
	Advisors           []string       `json:"advisors"`
}
