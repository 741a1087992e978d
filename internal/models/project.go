package models

// ProjectRole is the program's participation in a research project.
type ProjectRole string

const (
	ProjectRoleCoordinator ProjectRole = "Coordenador"
	ProjectRoleMember      ProjectRole = "Membro"
)

// Project is a research project the program takes part in. A nil EndYear means ongoing.
type Project struct {
	ID                       string      `json:"id"`
	Title                    string      `json:"titulo" validate:"required"`
	Nature                   string      `json:"natureza"`
	Coordinator              string      `json:"coordenador"`
	Funder                   string      `json:"financiador"`
	NonAcademicPartnership   string      `json:"colaboracaoNaoAcademica"`
	Summary                  string      `json:"resumo"`
	FundedAmount             float64     `json:"valorFinanciado" validate:"gte=0"`
	Role                     ProjectRole `json:"atuacao" validate:"required,oneof=Coordenador Membro"`
	MastersStudentsInvolved  int         `json:"alunosMestradoEnvolvidos" validate:"gte=0"`
	DoctoralStudentsInvolved int         `json:"alunosDoutoradoEnvolvidos" validate:"gte=0"`
	StartYear                int         `json:"anoInicio" validate:"required,gte=1900,lte=2100"`
	EndYear                  *int        `json:"anoFim,omitempty" validate:"omitempty,gte=1900,lte=2100,gtefield=StartYear"`
}

// Ongoing reports whether the project has no end year.
func (p Project) Ongoing() bool {
	return p.EndYear == nil
}

// ProjectFilter narrows project listings; nil fields match everything.
type ProjectFilter struct {
	Role    *ProjectRole
	Ongoing *bool
	Year    *int
}
