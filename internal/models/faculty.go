package models

// Faculty records the category a faculty member held in a given year.
// The same person appears once per year because categories change annually.
type Faculty struct {
	ID       string `json:"id"`
	Name     string `json:"nome" validate:"required"`
	Category string `json:"categoria"`
	Year     int    `json:"ano" validate:"required,gte=1900,lte=2100"`
}

// FacultyFilter narrows faculty listings; zero values match everything.
type FacultyFilter struct {
	Year     *int
	Category string
	Search   string
}
