// Package seed provides the built-in graduate roster used before any data is persisted.
package seed

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/noah-isme/ppgee-dashboard-api/internal/models"
)

//go:embed graduates.yaml
var graduatesYAML []byte

type graduateRecord struct {
	ID                 string  `yaml:"id"`
	Name               string  `yaml:"nome"`
	EntryYear          int     `yaml:"anoIngresso"`
	DefenseYear        *int    `yaml:"anoDefesa"`
	Advisor            string  `yaml:"orientador"`
	DefenseTitle       string  `yaml:"tituloDefesa"`
	Course             string  `yaml:"curso"`
	Status             string  `yaml:"status"`
	PursuingDoctorate  bool    `yaml:"cursandoDoutorado"`
	Employer           *string `yaml:"trabalhando"`
	EmployedOutOfState bool    `yaml:"trabalhandoOutroEstado"`
}

// Graduates decodes the embedded roster. Each call returns a fresh slice.
func Graduates() ([]models.Graduate, error) {
	return parseGraduates(graduatesYAML)
}

func parseGraduates(raw []byte) ([]models.Graduate, error) {
	var doc struct {
		Graduates []graduateRecord `yaml:"graduates"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode seed roster: %w", err)
	}

	out := make([]models.Graduate, 0, len(doc.Graduates))
	for i, r := range doc.Graduates {
		course := models.Course(r.Course)
		status := models.GraduateStatus(r.Status)
		if course != models.CourseMasters && course != models.CourseDoctorate {
			return nil, fmt.Errorf("seed graduate %d: unknown course %q", i, r.Course)
		}
		if status != models.StatusDefended && status != models.StatusEnrolled {
			return nil, fmt.Errorf("seed graduate %d: unknown status %q", i, r.Status)
		}
		out = append(out, models.Graduate{
			ID:                 r.ID,
			Name:               r.Name,
			EntryYear:          r.EntryYear,
			DefenseYear:        r.DefenseYear,
			Advisor:            r.Advisor,
			DefenseTitle:       r.DefenseTitle,
			Course:             course,
			Status:             status,
			PursuingDoctorate:  r.PursuingDoctorate,
			Employer:           r.Employer,
			EmployedOutOfState: r.EmployedOutOfState,
		})
	}
	return out, nil
}
