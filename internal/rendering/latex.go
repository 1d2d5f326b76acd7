package rendering

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/navinkumarg9/pro-resume-mentor/internal/types"
)

//go:embed templates/resume.tex.tmpl
var defaultLaTeXTemplate string

// LaTeXData represents the data structure passed to the LaTeX template.
// Every string is already escaped.
type LaTeXData struct {
	Name      string
	Contact   []string
	Summary   string
	Companies []CompanySection
	Education []string
	Skills    []SkillLine
	Projects  []ProjectLine
	Extras    []ExtraSection
}

// CompanySection represents a company with one or more roles
type CompanySection struct {
	Company string
	Roles   []RoleSection
}

// RoleSection represents a role within a company with merged date ranges
type RoleSection struct {
	Role       string
	DateRanges string // e.g., "2019-01 -- 2020-06, 2021-02 -- Present"
	Bullets    []string
}

// SkillLine is one skill category with its skills.
type SkillLine struct {
	Category string
	Skills   string
}

// ProjectLine is one project with its technologies.
type ProjectLine struct {
	Name         string
	Technologies string
	Description  string
}

// ExtraSection is a titled list used for certifications, languages, interests and custom sections.
type ExtraSection struct {
	Title string
	Items []string
}

// RenderLaTeX renders doc with the built-in LaTeX template.
func RenderLaTeX(doc types.Resume) (string, error) {
	tmpl, err := parseLaTeX("resume", defaultLaTeXTemplate)
	if err != nil {
		return "", err
	}
	return executeLaTeX(tmpl, doc)
}

// RenderLaTeXFile renders doc with the LaTeX template at templatePath.
func RenderLaTeXFile(doc types.Resume, templatePath string) (string, error) {
	content, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &TemplateError{
				Message: fmt.Sprintf("template file not found: %s", templatePath),
				Cause:   err,
			}
		}
		return "", &TemplateError{
			Message: fmt.Sprintf("failed to read template file: %s", templatePath),
			Cause:   err,
		}
	}

	tmpl, err := parseLaTeX(templatePath, string(content))
	if err != nil {
		return "", err
	}
	return executeLaTeX(tmpl, doc)
}

func parseLaTeX(name, content string) (*template.Template, error) {
	tmpl, err := template.New(name).Funcs(template.FuncMap{
		"escape": EscapeLaTeX,
	}).Parse(content)
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse template",
			Cause:   err,
		}
	}
	return tmpl, nil
}

func executeLaTeX(tmpl *template.Template, doc types.Resume) (string, error) {
	var result strings.Builder
	if err := tmpl.Execute(&result, buildLaTeXData(doc)); err != nil {
		return "", &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}
	return result.String(), nil
}

func buildLaTeXData(doc types.Resume) *LaTeXData {
	doc = doc.Clone()
	doc.Normalize()
	p := doc.PersonalInfo

	data := &LaTeXData{
		Name:      EscapeLaTeX(p.FullName),
		Summary:   EscapeLaTeX(p.Summary),
		Companies: groupByCompanyAndRole(doc.Experience),
	}
	if data.Name == "" {
		data.Name = NamePlaceholder
	}
	for _, v := range []string{p.Email, p.Phone, p.Location, p.Website, p.LinkedIn, p.GitHub} {
		if v != "" {
			data.Contact = append(data.Contact, EscapeLaTeX(v))
		}
	}

	for _, e := range doc.Education {
		line := e.Degree
		if e.Field != "" {
			line += " in " + e.Field
		}
		if e.Institution != "" {
			line += ", " + e.Institution
		}
		if dates := dateRange(e.StartDate, e.EndDate); dates != "" {
			line += " (" + dates + ")"
		}
		data.Education = append(data.Education, EscapeLaTeX(line))
	}

	for _, c := range types.SkillCategories() {
		skills := doc.SkillsByCategory(c)
		if len(skills) == 0 {
			continue
		}
		names := make([]string, len(skills))
		for i, s := range skills {
			names[i] = s.Name
		}
		data.Skills = append(data.Skills, SkillLine{
			Category: EscapeLaTeX(string(c)),
			Skills:   EscapeLaTeX(strings.Join(names, ", ")),
		})
	}

	for _, pr := range doc.Projects {
		data.Projects = append(data.Projects, ProjectLine{
			Name:         EscapeLaTeX(pr.Name),
			Technologies: EscapeLaTeX(strings.Join(nonBlank(pr.Technologies), ", ")),
			Description:  EscapeLaTeX(pr.Description),
		})
	}

	data.Extras = extraSections(doc)
	return data
}

func extraSections(doc types.Resume) []ExtraSection {
	var extras []ExtraSection
	add := func(title string, items []string) {
		if len(items) > 0 {
			for i := range items {
				items[i] = EscapeLaTeX(items[i])
			}
			extras = append(extras, ExtraSection{Title: EscapeLaTeX(title), Items: items})
		}
	}

	var certs []string
	for _, c := range doc.Certifications {
		line := c.Name
		if c.Issuer != "" {
			line += ", " + c.Issuer
		}
		if c.Date != "" {
			line += " (" + c.Date + ")"
		}
		certs = append(certs, line)
	}
	add("Certifications", certs)

	var langs []string
	for _, l := range doc.Languages {
		line := l.Name
		if l.Proficiency != "" {
			line += " (" + string(l.Proficiency) + ")"
		}
		langs = append(langs, line)
	}
	add("Languages", langs)

	var interests []string
	for _, i := range doc.Interests {
		interests = append(interests, i.Name)
	}
	add("Interests", interests)

	for _, cs := range doc.CustomSections {
		items := listItems(cs.Content)
		if cs.Type != types.SectionList {
			items = []string{strings.Join(items, " ")}
			if items[0] == "" {
				items = nil
			}
		}
		add(cs.Title, items)
	}
	return extras
}

// roleKey is used for grouping experience entries by company and position
type roleKey struct {
	Company string
	Role    string
}

// groupByCompanyAndRole groups entries by company, then by position, merging date ranges.
// Companies and roles keep the order in which they first appear.
func groupByCompanyAndRole(entries []types.ExperienceEntry) []CompanySection {
	companyOrder := []string{}
	companyRoleOrder := make(map[string][]string)
	roleEntries := make(map[roleKey][]types.ExperienceEntry)

	for _, e := range entries {
		key := roleKey{Company: e.Company, Role: e.Position}
		if _, seen := companyRoleOrder[e.Company]; !seen {
			companyOrder = append(companyOrder, e.Company)
		}
		if _, seen := roleEntries[key]; !seen {
			companyRoleOrder[e.Company] = append(companyRoleOrder[e.Company], e.Position)
		}
		roleEntries[key] = append(roleEntries[key], e)
	}

	companies := make([]CompanySection, 0, len(companyOrder))
	for _, company := range companyOrder {
		section := CompanySection{Company: EscapeLaTeX(company)}
		for _, role := range companyRoleOrder[company] {
			grouped := roleEntries[roleKey{Company: company, Role: role}]

			var bullets []string
			for _, e := range grouped {
				for _, a := range nonBlank(e.Achievements) {
					bullets = append(bullets, EscapeLaTeX(a))
				}
				if len(e.Achievements) == 0 && e.Description != "" {
					bullets = append(bullets, EscapeLaTeX(e.Description))
				}
			}

			section.Roles = append(section.Roles, RoleSection{
				Role:       EscapeLaTeX(role),
				DateRanges: mergeDateRanges(grouped),
				Bullets:    bullets,
			})
		}
		companies = append(companies, section)
	}
	return companies
}

// mergeDateRanges collects unique date ranges, in entry order, and formats them comma-separated
func mergeDateRanges(entries []types.ExperienceEntry) string {
	seen := make(map[string]bool)
	var parts []string
	for _, e := range entries {
		end := e.DisplayEndDate()
		if e.StartDate == "" && end == "" {
			continue
		}
		key := e.StartDate + "|" + end
		if seen[key] {
			continue
		}
		seen[key] = true
		parts = append(parts, EscapeLaTeX(e.StartDate)+" -- "+EscapeLaTeX(end))
	}
	return strings.Join(parts, ", ")
}
