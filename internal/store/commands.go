package store

import "github.com/navinkumarg9/pro-resume-mentor/internal/types"

// Command type names. They match the action names of the browser editor so recorded
// edit sessions can be replayed unchanged.
const (
	TypeUpdatePersonalInfo  = "UPDATE_PERSONAL_INFO"
	TypeAddExperience       = "ADD_EXPERIENCE"
	TypeUpdateExperience    = "UPDATE_EXPERIENCE"
	TypeDeleteExperience    = "DELETE_EXPERIENCE"
	TypeAddEducation        = "ADD_EDUCATION"
	TypeUpdateEducation     = "UPDATE_EDUCATION"
	TypeDeleteEducation     = "DELETE_EDUCATION"
	TypeAddSkill            = "ADD_SKILL"
	TypeUpdateSkill         = "UPDATE_SKILL"
	TypeDeleteSkill         = "DELETE_SKILL"
	TypeAddProject          = "ADD_PROJECT"
	TypeUpdateProject       = "UPDATE_PROJECT"
	TypeDeleteProject       = "DELETE_PROJECT"
	TypeAddCertification    = "ADD_CERTIFICATION"
	TypeUpdateCertification = "UPDATE_CERTIFICATION"
	TypeDeleteCertification = "DELETE_CERTIFICATION"
	TypeAddLanguage         = "ADD_LANGUAGE"
	TypeUpdateLanguage      = "UPDATE_LANGUAGE"
	TypeDeleteLanguage      = "DELETE_LANGUAGE"
	TypeAddInterest         = "ADD_INTEREST"
	TypeUpdateInterest      = "UPDATE_INTEREST"
	TypeDeleteInterest      = "DELETE_INTEREST"
	TypeAddCustomSection    = "ADD_CUSTOM_SECTION"
	TypeUpdateCustomSection = "UPDATE_CUSTOM_SECTION"
	TypeDeleteCustomSection = "DELETE_CUSTOM_SECTION"
	TypeChangeTemplate      = "CHANGE_TEMPLATE"
	TypeSetAnalysis         = "SET_ANALYSIS"
	TypeLoadResume          = "LOAD_RESUME"
	TypeResetResume         = "RESET_RESUME"
)

// Command is one edit of the live document. The set is closed: only this package can
// implement it. apply mutates the working copy and reports whether the document changed.
type Command interface {
	Type() string
	apply(st *State, newID func() string) bool
}

// UpdatePersonalInfo merges the given fields into PersonalInfo.
type UpdatePersonalInfo struct{ Patch types.PersonalInfoPatch }

func (UpdatePersonalInfo) Type() string { return TypeUpdatePersonalInfo }

func (c UpdatePersonalInfo) apply(st *State, _ func() string) bool {
	st.Resume.PersonalInfo = c.Patch.Apply(st.Resume.PersonalInfo)
	return true
}

// AddExperience appends an experience entry.
type AddExperience struct{ Entry types.ExperienceEntry }

func (AddExperience) Type() string { return TypeAddExperience }

func (c AddExperience) apply(st *State, newID func() string) bool {
	e := c.Entry
	e.Achievements = cloneStrings(e.Achievements)
	e.ID = assignID(e.ID, st.Resume.Experience, experienceID, newID)
	st.Resume.Experience = append(st.Resume.Experience, e)
	return true
}

// UpdateExperience patches the experience entry with the given id.
type UpdateExperience struct {
	ID    string
	Patch types.ExperiencePatch
}

func (UpdateExperience) Type() string { return TypeUpdateExperience }

func (c UpdateExperience) apply(st *State, _ func() string) bool {
	return updateEntry(st.Resume.Experience, c.ID, experienceID, c.Patch.Apply)
}

// DeleteExperience removes the experience entry with the given id.
type DeleteExperience struct{ ID string }

func (DeleteExperience) Type() string { return TypeDeleteExperience }

func (c DeleteExperience) apply(st *State, _ func() string) bool {
	var ok bool
	st.Resume.Experience, ok = deleteEntry(st.Resume.Experience, c.ID, experienceID)
	return ok
}

// AddEducation appends an education entry.
type AddEducation struct{ Entry types.EducationEntry }

func (AddEducation) Type() string { return TypeAddEducation }

func (c AddEducation) apply(st *State, newID func() string) bool {
	e := c.Entry
	e.Achievements = cloneStrings(e.Achievements)
	e.ID = assignID(e.ID, st.Resume.Education, educationID, newID)
	st.Resume.Education = append(st.Resume.Education, e)
	return true
}

// UpdateEducation patches the education entry with the given id.
type UpdateEducation struct {
	ID    string
	Patch types.EducationPatch
}

func (UpdateEducation) Type() string { return TypeUpdateEducation }

func (c UpdateEducation) apply(st *State, _ func() string) bool {
	return updateEntry(st.Resume.Education, c.ID, educationID, c.Patch.Apply)
}

// DeleteEducation removes the education entry with the given id.
type DeleteEducation struct{ ID string }

func (DeleteEducation) Type() string { return TypeDeleteEducation }

func (c DeleteEducation) apply(st *State, _ func() string) bool {
	var ok bool
	st.Resume.Education, ok = deleteEntry(st.Resume.Education, c.ID, educationID)
	return ok
}

// AddSkill appends a skill entry.
type AddSkill struct{ Entry types.SkillEntry }

func (AddSkill) Type() string { return TypeAddSkill }

func (c AddSkill) apply(st *State, newID func() string) bool {
	c.Entry.ID = assignID(c.Entry.ID, st.Resume.Skills, skillID, newID)
	st.Resume.Skills = append(st.Resume.Skills, c.Entry)
	return true
}

// UpdateSkill patches the skill entry with the given id.
type UpdateSkill struct {
	ID    string
	Patch types.SkillPatch
}

func (UpdateSkill) Type() string { return TypeUpdateSkill }

func (c UpdateSkill) apply(st *State, _ func() string) bool {
	return updateEntry(st.Resume.Skills, c.ID, skillID, c.Patch.Apply)
}

// DeleteSkill removes the skill entry with the given id.
type DeleteSkill struct{ ID string }

func (DeleteSkill) Type() string { return TypeDeleteSkill }

func (c DeleteSkill) apply(st *State, _ func() string) bool {
	var ok bool
	st.Resume.Skills, ok = deleteEntry(st.Resume.Skills, c.ID, skillID)
	return ok
}

// AddProject appends a project entry.
type AddProject struct{ Entry types.ProjectEntry }

func (AddProject) Type() string { return TypeAddProject }

func (c AddProject) apply(st *State, newID func() string) bool {
	p := c.Entry
	p.Technologies = cloneStrings(p.Technologies)
	p.ID = assignID(p.ID, st.Resume.Projects, projectID, newID)
	st.Resume.Projects = append(st.Resume.Projects, p)
	return true
}

// UpdateProject patches the project entry with the given id.
type UpdateProject struct {
	ID    string
	Patch types.ProjectPatch
}

func (UpdateProject) Type() string { return TypeUpdateProject }

func (c UpdateProject) apply(st *State, _ func() string) bool {
	return updateEntry(st.Resume.Projects, c.ID, projectID, c.Patch.Apply)
}

// DeleteProject removes the project entry with the given id.
type DeleteProject struct{ ID string }

func (DeleteProject) Type() string { return TypeDeleteProject }

func (c DeleteProject) apply(st *State, _ func() string) bool {
	var ok bool
	st.Resume.Projects, ok = deleteEntry(st.Resume.Projects, c.ID, projectID)
	return ok
}

// AddCertification appends a certification entry.
type AddCertification struct{ Entry types.CertificationEntry }

func (AddCertification) Type() string { return TypeAddCertification }

func (c AddCertification) apply(st *State, newID func() string) bool {
	c.Entry.ID = assignID(c.Entry.ID, st.Resume.Certifications, certificationID, newID)
	st.Resume.Certifications = append(st.Resume.Certifications, c.Entry)
	return true
}

// UpdateCertification patches the certification entry with the given id.
type UpdateCertification struct {
	ID    string
	Patch types.CertificationPatch
}

func (UpdateCertification) Type() string { return TypeUpdateCertification }

func (c UpdateCertification) apply(st *State, _ func() string) bool {
	return updateEntry(st.Resume.Certifications, c.ID, certificationID, c.Patch.Apply)
}

// DeleteCertification removes the certification entry with the given id.
type DeleteCertification struct{ ID string }

func (DeleteCertification) Type() string { return TypeDeleteCertification }

func (c DeleteCertification) apply(st *State, _ func() string) bool {
	var ok bool
	st.Resume.Certifications, ok = deleteEntry(st.Resume.Certifications, c.ID, certificationID)
	return ok
}

// AddLanguage appends a language entry.
type AddLanguage struct{ Entry types.LanguageEntry }

func (AddLanguage) Type() string { return TypeAddLanguage }

func (c AddLanguage) apply(st *State, newID func() string) bool {
	c.Entry.ID = assignID(c.Entry.ID, st.Resume.Languages, languageID, newID)
	st.Resume.Languages = append(st.Resume.Languages, c.Entry)
	return true
}

// UpdateLanguage patches the language entry with the given id.
type UpdateLanguage struct {
	ID    string
	Patch types.LanguagePatch
}

func (UpdateLanguage) Type() string { return TypeUpdateLanguage }

func (c UpdateLanguage) apply(st *State, _ func() string) bool {
	return updateEntry(st.Resume.Languages, c.ID, languageID, c.Patch.Apply)
}

// DeleteLanguage removes the language entry with the given id.
type DeleteLanguage struct{ ID string }

func (DeleteLanguage) Type() string { return TypeDeleteLanguage }

func (c DeleteLanguage) apply(st *State, _ func() string) bool {
	var ok bool
	st.Resume.Languages, ok = deleteEntry(st.Resume.Languages, c.ID, languageID)
	return ok
}

// AddInterest appends an interest entry.
type AddInterest struct{ Entry types.InterestEntry }

func (AddInterest) Type() string { return TypeAddInterest }

func (c AddInterest) apply(st *State, newID func() string) bool {
	c.Entry.ID = assignID(c.Entry.ID, st.Resume.Interests, interestID, newID)
	st.Resume.Interests = append(st.Resume.Interests, c.Entry)
	return true
}

// UpdateInterest patches the interest entry with the given id.
type UpdateInterest struct {
	ID    string
	Patch types.InterestPatch
}

func (UpdateInterest) Type() string { return TypeUpdateInterest }

func (c UpdateInterest) apply(st *State, _ func() string) bool {
	return updateEntry(st.Resume.Interests, c.ID, interestID, c.Patch.Apply)
}

// DeleteInterest removes the interest entry with the given id.
type DeleteInterest struct{ ID string }

func (DeleteInterest) Type() string { return TypeDeleteInterest }

func (c DeleteInterest) apply(st *State, _ func() string) bool {
	var ok bool
	st.Resume.Interests, ok = deleteEntry(st.Resume.Interests, c.ID, interestID)
	return ok
}

// AddCustomSection appends a custom section.
type AddCustomSection struct{ Entry types.CustomSectionEntry }

func (AddCustomSection) Type() string { return TypeAddCustomSection }

func (c AddCustomSection) apply(st *State, newID func() string) bool {
	c.Entry.ID = assignID(c.Entry.ID, st.Resume.CustomSections, customSectionID, newID)
	st.Resume.CustomSections = append(st.Resume.CustomSections, c.Entry)
	return true
}

// UpdateCustomSection patches the custom section with the given id.
type UpdateCustomSection struct {
	ID    string
	Patch types.CustomSectionPatch
}

func (UpdateCustomSection) Type() string { return TypeUpdateCustomSection }

func (c UpdateCustomSection) apply(st *State, _ func() string) bool {
	return updateEntry(st.Resume.CustomSections, c.ID, customSectionID, c.Patch.Apply)
}

// DeleteCustomSection removes the custom section with the given id.
type DeleteCustomSection struct{ ID string }

func (DeleteCustomSection) Type() string { return TypeDeleteCustomSection }

func (c DeleteCustomSection) apply(st *State, _ func() string) bool {
	var ok bool
	st.Resume.CustomSections, ok = deleteEntry(st.Resume.CustomSections, c.ID, customSectionID)
	return ok
}

// ChangeTemplate replaces the template id. Unknown ids are accepted; the renderer falls back.
type ChangeTemplate struct{ TemplateID string }

func (ChangeTemplate) Type() string { return TypeChangeTemplate }

func (c ChangeTemplate) apply(st *State, _ func() string) bool {
	st.Resume.TemplateID = c.TemplateID
	return true
}

// SetAnalysis replaces the analysis wholesale. When DocumentVersion is set and differs from
// the current document version the result is stored but stays stale.
type SetAnalysis struct {
	Result          types.AnalysisResult
	DocumentVersion uint64
}

func (SetAnalysis) Type() string { return TypeSetAnalysis }

func (c SetAnalysis) apply(st *State, _ func() string) bool {
	st.Analysis = c.Result.Clone()
	st.AnalysisStale = c.DocumentVersion != 0 && c.DocumentVersion != st.DocumentVersion
	return false
}

// LoadResume replaces the whole document, e.g. with a saved library entry.
type LoadResume struct{ Resume types.Resume }

func (LoadResume) Type() string { return TypeLoadResume }

func (c LoadResume) apply(st *State, _ func() string) bool {
	r := c.Resume.Clone()
	r.Normalize()
	st.Resume = r
	return true
}

// ResetResume replaces the document with a blank one.
type ResetResume struct{}

func (ResetResume) Type() string { return TypeResetResume }

func (ResetResume) apply(st *State, _ func() string) bool {
	st.Resume = types.NewResume()
	return true
}

func experienceID(e types.ExperienceEntry) string {
	return e.ID
}

func educationID(e types.EducationEntry) string {
	return e.ID
}

func skillID(s types.SkillEntry) string {
	return s.ID
}

func projectID(p types.ProjectEntry) string {
	return p.ID
}

func certificationID(c types.CertificationEntry) string {
	return c.ID
}

func languageID(l types.LanguageEntry) string {
	return l.ID
}

func interestID(i types.InterestEntry) string {
	return i.ID
}

func customSectionID(c types.CustomSectionEntry) string {
	return c.ID
}
