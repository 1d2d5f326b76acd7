// Package types provides type definitions for the resume document edited, scored, rendered
// and exported by pro-resume-mentor.
//
//nolint:revive // types is a standard Go package name pattern
package types

// DefaultTemplateID is the template every new document starts with. It is always registered.
const DefaultTemplateID = "modern"

// PresentLabel is displayed instead of the end date of an ongoing experience entry.
const PresentLabel = "Present"

// PersonalInfo holds the contact block and summary of a resume. It has no lifecycle of its own.
type PersonalInfo struct {
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Location     string `json:"location"`
	Website      string `json:"website,omitempty"`
	LinkedIn     string `json:"linkedin,omitempty"`
	GitHub       string `json:"github,omitempty"`
	ProfilePhoto string `json:"profilePhoto,omitempty"` // Opaque image reference (data URL or http(s) URL)
	Summary      string `json:"summary"`
}

// ExperienceEntry represents one position held.
// When Current is true the entry is ongoing; EndDate is kept as stored but not displayed.
type ExperienceEntry struct {
	ID           string   `json:"id"`
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Current      bool     `json:"current"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
}

// DisplayEndDate returns the end date as it should be shown to a reader.
func (e ExperienceEntry) DisplayEndDate() string {
	if e.Current {
		return PresentLabel
	}
	return e.EndDate
}

// EducationEntry represents one degree or course of study.
type EducationEntry struct {
	ID           string   `json:"id"`
	Institution  string   `json:"institution"`
	Degree       string   `json:"degree"`
	Field        string   `json:"field"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	GPA          string   `json:"gpa,omitempty"`
	Achievements []string `json:"achievements"`
}

// SkillEntry represents a single skill with a self-assessed level.
type SkillEntry struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Level    SkillLevel    `json:"level"`
	Category SkillCategory `json:"category"`
}

// ProjectEntry represents a personal or professional project.
type ProjectEntry struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Link         string   `json:"link,omitempty"`
	GitHub       string   `json:"github,omitempty"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
}

// CertificationEntry represents a certification or license.
type CertificationEntry struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Issuer       string `json:"issuer"`
	Date         string `json:"date"`
	CredentialID string `json:"credentialId,omitempty"`
	URL          string `json:"url,omitempty"`
}

// LanguageEntry represents a spoken language.
type LanguageEntry struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Proficiency LanguageProficiency `json:"proficiency"`
}

// InterestEntry represents a hobby or interest.
type InterestEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CustomSectionEntry is a free-form section with a user supplied title.
type CustomSectionEntry struct {
	ID      string            `json:"id"`
	Title   string            `json:"title"`
	Content string            `json:"content"`
	Type    CustomSectionType `json:"type"`
}

// Resume is the aggregate root: the sole unit of persistence, export and scoring.
// The optional collections are always present as (possibly empty) lists after Normalize.
type Resume struct {
	PersonalInfo   PersonalInfo         `json:"personalInfo"`
	Experience     []ExperienceEntry    `json:"experience"`
	Education      []EducationEntry     `json:"education"`
	Skills         []SkillEntry         `json:"skills"`
	Projects       []ProjectEntry       `json:"projects"`
	Certifications []CertificationEntry `json:"certifications"`
	Languages      []LanguageEntry      `json:"languages"`
	Interests      []InterestEntry      `json:"interests"`
	CustomSections []CustomSectionEntry `json:"customSections"`
	TemplateID     string               `json:"templateId"`
}

// NewResume returns the initial document: every field blank, every list empty,
// and the default template selected.
func NewResume() Resume {
	r := Resume{TemplateID: DefaultTemplateID}
	r.Normalize()
	return r
}

// Normalize replaces nil lists with empty ones, including the lists nested in entries.
// A blank template id is set to the default.
func (r *Resume) Normalize() {
	if r.TemplateID == "" {
		r.TemplateID = DefaultTemplateID
	}
	r.Experience = nonNil(r.Experience)
	for i := range r.Experience {
		r.Experience[i].Achievements = nonNil(r.Experience[i].Achievements)
	}
	r.Education = nonNil(r.Education)
	for i := range r.Education {
		r.Education[i].Achievements = nonNil(r.Education[i].Achievements)
	}
	r.Skills = nonNil(r.Skills)
	r.Projects = nonNil(r.Projects)
	for i := range r.Projects {
		r.Projects[i].Technologies = nonNil(r.Projects[i].Technologies)
	}
	r.Certifications = nonNil(r.Certifications)
	r.Languages = nonNil(r.Languages)
	r.Interests = nonNil(r.Interests)
	r.CustomSections = nonNil(r.CustomSections)
}

// Clone returns a deep copy of the resume that shares no mutable state with r.
func (r Resume) Clone() Resume {
	out := r
	out.Experience = cloneSlice(r.Experience)
	for i := range out.Experience {
		out.Experience[i].Achievements = cloneSlice(r.Experience[i].Achievements)
	}
	out.Education = cloneSlice(r.Education)
	for i := range out.Education {
		out.Education[i].Achievements = cloneSlice(r.Education[i].Achievements)
	}
	out.Skills = cloneSlice(r.Skills)
	out.Projects = cloneSlice(r.Projects)
	for i := range out.Projects {
		out.Projects[i].Technologies = cloneSlice(r.Projects[i].Technologies)
	}
	out.Certifications = cloneSlice(r.Certifications)
	out.Languages = cloneSlice(r.Languages)
	out.Interests = cloneSlice(r.Interests)
	out.CustomSections = cloneSlice(r.CustomSections)
	return out
}

// SkillsByCategory returns the skills of the given category in insertion order.
func (r Resume) SkillsByCategory(category SkillCategory) []SkillEntry {
	var out []SkillEntry
	for _, s := range r.Skills {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// cloneSlice copies s, preserving nil-ness.
func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
