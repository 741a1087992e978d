package models

// Course is the degree a graduate is enrolled in.
type Course string

const (
	CourseMasters   Course = "Mestrado"
	CourseDoctorate Course = "Doutorado"
)

// Courses lists every course in display order.
var Courses = []Course{CourseMasters, CourseDoctorate}

// GraduateStatus tracks whether the thesis has been defended.
type GraduateStatus string

const (
	StatusDefended GraduateStatus = "Defendido"
	StatusEnrolled GraduateStatus = "Cursando"
)

// GraduateStatuses lists every status in display order.
var GraduateStatuses = []GraduateStatus{StatusDefended, StatusEnrolled}

// Graduate is a student who completed or is completing a degree.
// A Defendido graduate is expected to carry a DefenseYear; the rule is not enforced.
type Graduate struct {
	ID                 string         `json:"id"`
	Name               string         `json:"nome" validate:"required"`
	EntryYear          int            `json:"anoIngresso" validate:"required,gte=1900,lte=2100"`
	DefenseYear        *int           `json:"anoDefesa,omitempty" validate:"omitempty,gte=1900,lte=2100"`
	Advisor            string         `json:"orientador"`
	DefenseTitle       string         `json:"tituloDefesa"`
	Course             Course         `json:"curso" validate:"required,oneof=Mestrado Doutorado"`
	Status             GraduateStatus `json:"status" validate:"required,oneof=Defendido Cursando"`
	PursuingDoctorate  bool           `json:"cursandoDoutorado"`
	Employer           *string        `json:"trabalhando,omitempty"`
	EmployedOutOfState bool           `json:"trabalhandoOutroEstado"`
}

// HasDefenseYear reports whether the defense year is known.
func (g Graduate) HasDefenseYear() bool {
	return g.DefenseYear != nil
}
