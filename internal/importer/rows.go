package importer

import (
	"strings"

	"github.com/noah-isme/ppgee-dashboard-api/internal/models"
)

// Graduate sheet headers.
const (
	HeaderStudentName        = "NOME DO ALUNO"
	HeaderEntryYear          = "ANO DE INGRESSO"
	HeaderDefenseYear        = "ANO DE DEFESA"
	HeaderAdvisor            = "ORIENTADOR"
	HeaderDefenseTitle       = "TÍTULO DE DEFESA"
	HeaderCourse             = "CURSO"
	HeaderStatus             = "Status"
	HeaderPursuingDoctorate  = "Está cursando doutorado como aluno regular?"
	HeaderEmployer           = "Encontra-se trabalhando? Se sim, onde?"
	HeaderEmployedOutOfState = "Está trabalhando em outro estado da federação?"
)

// Faculty sheet headers.
const (
	HeaderFacultyName     = "DOCENTE"
	HeaderFacultyCategory = "CATEGORIA"
	HeaderFacultyYear     = "ANO"
)

// Project sheet headers.
const (
	HeaderProjectTitle          = "Título do Projeto"
	HeaderProjectNature         = "Natureza"
	HeaderProjectCoordinator    = "Coordenador"
	HeaderProjectFunder         = "Financiador"
	HeaderProjectNonAcademic    = "Projetos estabelecidos com instituições que NÃO sejam acadêmicas e NÃO sejam de agências de fomento, que resultem em produtos tecnológicos ou impacto na formação de recurso humanos"
	HeaderProjectSummary        = "Resumo"
	HeaderProjectFundedAmount   = "Valor financiado"
	HeaderProjectRole           = "Atuação (ou Coordenador ou Membro)"
	HeaderProjectMastersCount   = "Quantidade de alunos de Mestrado do PPGEE envolvidos"
	HeaderProjectDoctorateCount = "Quantidade de alunos de Doutorado do PPGEE envolvidos"
	HeaderProjectStartYear      = "Ano de Início"
	HeaderProjectEndYear        = "Ano de Fim"
)

// Kind identifies which record type a sheet holds.
type Kind string

const (
	KindGraduates Kind = "graduates"
	KindFaculty   Kind = "faculty"
	KindProjects  Kind = "projects"
)

// ParseKind accepts the kind names used in import routes.
func ParseKind(raw string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(raw))) {
	case KindGraduates:
		return KindGraduates, true
	case KindFaculty:
		return KindFaculty, true
	case KindProjects:
		return KindProjects, true
	}
	return "", false
}

// RequiredHeaders lists the columns whose absence makes every row fail its gate.
func RequiredHeaders(kind Kind) []string {
	switch kind {
	case KindGraduates:
		return []string{HeaderEntryYear}
	case KindFaculty:
		return []string{HeaderFacultyName, HeaderFacultyYear}
	case KindProjects:
		return []string{HeaderProjectTitle, HeaderProjectStartYear}
	}
	return nil
}

// MissingHeaders returns the required headers not present in headers.
func MissingHeaders(kind Kind, headers []string) []string {
	present := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		present[h] = struct{}{}
	}
	var missing []string
	for _, h := range RequiredHeaders(kind) {
		if _, ok := present[h]; !ok {
			missing = append(missing, h)
		}
	}
	return missing
}

// GraduateFromRow maps a row; ok is false when the entry year is missing or invalid.
func GraduateFromRow(row Row, id string) (models.Graduate, bool) {
	entryYear, ok := ParseYear(row.Get(HeaderEntryYear))
	if !ok {
		return models.Graduate{}, false
	}

	g := models.Graduate{
		ID:                 id,
		Name:               Text(row.Get(HeaderStudentName), defaultName),
		EntryYear:          entryYear,
		Advisor:            Text(row.Get(HeaderAdvisor), defaultName),
		DefenseTitle:       Text(row.Get(HeaderDefenseTitle), ""),
		Course:             models.CourseMasters,
		Status:             models.StatusEnrolled,
		PursuingDoctorate:  Yes(row.Get(HeaderPursuingDoctorate)),
		Employer:           OptionalText(row.Get(HeaderEmployer)),
		EmployedOutOfState: Yes(row.Get(HeaderEmployedOutOfState)),
	}
	if defenseYear, ok := ParseYear(row.Get(HeaderDefenseYear)); ok {
		g.DefenseYear = &defenseYear
	}
	if row.Get(HeaderCourse).Text() == string(models.CourseDoctorate) {
		g.Course = models.CourseDoctorate
	}
	if row.Get(HeaderStatus).Text() == string(models.StatusDefended) {
		g.Status = models.StatusDefended
	}
	return g, true
}

// FacultyFromRow maps a row; ok is false without a name or a valid year.
func FacultyFromRow(row Row, id string) (models.Faculty, bool) {
	name := row.Get(HeaderFacultyName)
	year, ok := ParseYear(row.Get(HeaderFacultyYear))
	if name.Blank() || !ok {
		return models.Faculty{}, false
	}
	return models.Faculty{
		ID:       id,
		Name:     name.Text(),
		Category: Text(row.Get(HeaderFacultyCategory), defaultName),
		Year:     year,
	}, true
}

// ProjectFromRow maps a row; ok is false without a title or a valid start year.
func ProjectFromRow(row Row, id string) (models.Project, bool) {
	title := row.Get(HeaderProjectTitle)
	startYear, ok := ParseYear(row.Get(HeaderProjectStartYear))
	if title.Blank() || !ok {
		return models.Project{}, false
	}

	p := models.Project{
		ID:                       id,
		Title:                    title.Text(),
		Nature:                   Text(row.Get(HeaderProjectNature), ""),
		Coordinator:              Text(row.Get(HeaderProjectCoordinator), defaultName),
		Funder:                   Text(row.Get(HeaderProjectFunder), ""),
		NonAcademicPartnership:   Text(row.Get(HeaderProjectNonAcademic), ""),
		Summary:                  Text(row.Get(HeaderProjectSummary), ""),
		FundedAmount:             Amount(row.Get(HeaderProjectFundedAmount)),
		Role:                     models.ProjectRoleCoordinator,
		MastersStudentsInvolved:  Count(row.Get(HeaderProjectMastersCount)),
		DoctoralStudentsInvolved: Count(row.Get(HeaderProjectDoctorateCount)),
		StartYear:                startYear,
	}
	if strings.EqualFold(row.Get(HeaderProjectRole).Text(), "membro") {
		p.Role = models.ProjectRoleMember
	}
	if endYear, ok := ParseYear(row.Get(HeaderProjectEndYear)); ok {
		p.EndYear = &endYear
	}
	return p, true
}
