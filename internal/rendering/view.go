package rendering

import (
	"html/template"
	"strings"

	"github.com/navinkumarg9/pro-resume-mentor/internal/types"
)

// NamePlaceholder is shown in the header while the full name is empty.
const NamePlaceholder = "Your Name"

// pageData is the view of a resume handed to the HTML templates. Empty sections are
// left empty so the templates can omit them.
type pageData struct {
	Template       Template
	Vars           template.CSS
	Title          string
	Name           string
	Photo          template.URL
	Contact        []contactItem
	Summary        string
	Experience     []experienceView
	Education      []educationView
	SkillGroups    []skillGroup
	Projects       []projectView
	Certifications []certificationView
	Languages      []types.LanguageEntry
	Interests      []types.InterestEntry
	CustomSections []customView
}

type contactItem struct {
	Label string
	Value string
	Href  string
}

type experienceView struct {
	Position     string
	Company      string
	Dates        string
	Description  string
	Achievements []string
}

type educationView struct {
	Degree       string
	Field        string
	Institution  string
	Dates        string
	GPA          string
	Achievements []string
}

type skillGroup struct {
	Category string
	Skills   []types.SkillEntry
}

type projectView struct {
	Name         string
	Description  string
	Technologies []string
	Link         string
	GitHub       string
	Dates        string
}

type certificationView struct {
	Name         string
	Issuer       string
	Date         string
	CredentialID string
	URL          string
}

type customView struct {
	Title string
	Text  template.HTML
	Items []string
}

func buildPage(doc types.Resume, tmpl Template) pageData {
	doc = doc.Clone()
	doc.Normalize()
	p := doc.PersonalInfo

	data := pageData{
		Template:  tmpl,
		Vars:      cssVars(tmpl),
		Title:     p.FullName,
		Name:      p.FullName,
		Photo:     photoURL(p.ProfilePhoto),
		Summary:   p.Summary,
		Languages: doc.Languages,
		Interests: doc.Interests,
	}
	if data.Name == "" {
		data.Name = NamePlaceholder
		data.Title = "Resume"
	}

	data.Contact = contactItems(p)

	for _, e := range doc.Experience {
		data.Experience = append(data.Experience, experienceView{
			Position:     e.Position,
			Company:      e.Company,
			Dates:        dateRange(e.StartDate, e.DisplayEndDate()),
			Description:  e.Description,
			Achievements: nonBlank(e.Achievements),
		})
	}

	for _, e := range doc.Education {
		data.Education = append(data.Education, educationView{
			Degree:       e.Degree,
			Field:        e.Field,
			Institution:  e.Institution,
			Dates:        dateRange(e.StartDate, e.EndDate),
			GPA:          e.GPA,
			Achievements: nonBlank(e.Achievements),
		})
	}

	for _, c := range types.SkillCategories() {
		if skills := doc.SkillsByCategory(c); len(skills) > 0 {
			data.SkillGroups = append(data.SkillGroups, skillGroup{Category: string(c), Skills: skills})
		}
	}
	// Skills with a category outside the known set still get rendered.
	var other []types.SkillEntry
	for _, s := range doc.Skills {
		if !s.Category.Valid() {
			other = append(other, s)
		}
	}
	if len(other) > 0 {
		data.SkillGroups = append(data.SkillGroups, skillGroup{Category: string(types.CategoryOther), Skills: other})
	}

	for _, pr := range doc.Projects {
		data.Projects = append(data.Projects, projectView{
			Name:         pr.Name,
			Description:  pr.Description,
			Technologies: nonBlank(pr.Technologies),
			Link:         pr.Link,
			GitHub:       pr.GitHub,
			Dates:        dateRange(pr.StartDate, pr.EndDate),
		})
	}

	for _, c := range doc.Certifications {
		data.Certifications = append(data.Certifications, certificationView{
			Name:         c.Name,
			Issuer:       c.Issuer,
			Date:         c.Date,
			CredentialID: c.CredentialID,
			URL:          c.URL,
		})
	}

	for _, cs := range doc.CustomSections {
		data.CustomSections = append(data.CustomSections, customSection(cs))
	}

	return data
}

func cssVars(t Template) template.CSS {
	//nolint:gosec // registry values only
	return template.CSS("--accent:" + t.Palette.Accent +
		";--soft:" + t.Palette.Soft +
		";--ink:" + t.Palette.Text +
		";--font:" + t.Font + ";")
}

func contactItems(p types.PersonalInfo) []contactItem {
	var items []contactItem
	add := func(label, value, href string) {
		if value != "" {
			items = append(items, contactItem{Label: label, Value: value, Href: href})
		}
	}
	add("Email", p.Email, "mailto:"+p.Email)
	add("Phone", p.Phone, "")
	add("Location", p.Location, "")
	add("Website", p.Website, linkHref(p.Website))
	add("LinkedIn", p.LinkedIn, linkHref(p.LinkedIn))
	add("GitHub", p.GitHub, linkHref(p.GitHub))
	return items
}

// linkHref turns a bare host/path into an https link.
func linkHref(v string) string {
	if v == "" {
		return ""
	}
	lower := strings.ToLower(v)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return v
	}
	return "https://" + v
}

func dateRange(start, end string) string {
	switch {
	case start == "" && end == "":
		return ""
	case start == "":
		return end
	case end == "":
		return start
	}
	return start + " - " + end
}

func customSection(cs types.CustomSectionEntry) customView {
	v := customView{Title: cs.Title}
	if cs.Type == types.SectionList {
		v.Items = listItems(cs.Content)
		return v
	}
	v.Text = sanitizeHTML(cs.Content)
	return v
}

// listItems splits list content into one item per line, dropping bullets and blank lines.
func listItems(content string) []string {
	var items []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*•")
		line = strings.TrimSpace(line)
		if line != "" {
			items = append(items, line)
		}
	}
	return items
}

func nonBlank(list []string) []string {
	var out []string
	for _, s := range list {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
