package types

// Patch types carry partial updates. A nil field is left unchanged; an empty patch is the identity.
// Apply always returns a merged copy and never modifies its argument.

// PersonalInfoPatch is a partial update of PersonalInfo.
type PersonalInfoPatch struct {
	FullName     *string `json:"fullName,omitempty"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Location     *string `json:"location,omitempty"`
	Website      *string `json:"website,omitempty"`
	LinkedIn     *string `json:"linkedin,omitempty"`
	GitHub       *string `json:"github,omitempty"`
	ProfilePhoto *string `json:"profilePhoto,omitempty"`
	Summary      *string `json:"summary,omitempty"`
}

// Apply merges the patch into p.
func (pt PersonalInfoPatch) Apply(p PersonalInfo) PersonalInfo {
	set(&p.FullName, pt.FullName)
	set(&p.Email, pt.Email)
	set(&p.Phone, pt.Phone)
	set(&p.Location, pt.Location)
	set(&p.Website, pt.Website)
	set(&p.LinkedIn, pt.LinkedIn)
	set(&p.GitHub, pt.GitHub)
	set(&p.ProfilePhoto, pt.ProfilePhoto)
	set(&p.Summary, pt.Summary)
	return p
}

// ExperiencePatch is a partial update of an ExperienceEntry. The id cannot be patched.
type ExperiencePatch struct {
	Company      *string   `json:"company,omitempty"`
	Position     *string   `json:"position,omitempty"`
	StartDate    *string   `json:"startDate,omitempty"`
	EndDate      *string   `json:"endDate,omitempty"`
	Current      *bool     `json:"current,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Achievements *[]string `json:"achievements,omitempty"`
}

// Apply merges the patch into e.
func (pt ExperiencePatch) Apply(e ExperienceEntry) ExperienceEntry {
	set(&e.Company, pt.Company)
	set(&e.Position, pt.Position)
	set(&e.StartDate, pt.StartDate)
	set(&e.EndDate, pt.EndDate)
	set(&e.Current, pt.Current)
	set(&e.Description, pt.Description)
	setList(&e.Achievements, pt.Achievements)
	return e
}

// EducationPatch is a partial update of an EducationEntry.
type EducationPatch struct {
	Institution  *string   `json:"institution,omitempty"`
	Degree       *string   `json:"degree,omitempty"`
	Field        *string   `json:"field,omitempty"`
	StartDate    *string   `json:"startDate,omitempty"`
	EndDate      *string   `json:"endDate,omitempty"`
	GPA          *string   `json:"gpa,omitempty"`
	Achievements *[]string `json:"achievements,omitempty"`
}

// Apply merges the patch into e.
func (pt EducationPatch) Apply(e EducationEntry) EducationEntry {
	set(&e.Institution, pt.Institution)
	set(&e.Degree, pt.Degree)
	set(&e.Field, pt.Field)
	set(&e.StartDate, pt.StartDate)
	set(&e.EndDate, pt.EndDate)
	set(&e.GPA, pt.GPA)
	setList(&e.Achievements, pt.Achievements)
	return e
}

// SkillPatch is a partial update of a SkillEntry.
type SkillPatch struct {
	Name     *string        `json:"name,omitempty"`
	Level    *SkillLevel    `json:"level,omitempty"`
	Category *SkillCategory `json:"category,omitempty"`
}

// Apply merges the patch into s.
func (pt SkillPatch) Apply(s SkillEntry) SkillEntry {
	set(&s.Name, pt.Name)
	set(&s.Level, pt.Level)
	set(&s.Category, pt.Category)
	return s
}

// ProjectPatch is a partial update of a ProjectEntry.
type ProjectPatch struct {
	Name         *string   `json:"name,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Technologies *[]string `json:"technologies,omitempty"`
	Link         *string   `json:"link,omitempty"`
	GitHub       *string   `json:"github,omitempty"`
	StartDate    *string   `json:"startDate,omitempty"`
	EndDate      *string   `json:"endDate,omitempty"`
}

// Apply merges the patch into p.
func (pt ProjectPatch) Apply(p ProjectEntry) ProjectEntry {
	set(&p.Name, pt.Name)
	set(&p.Description, pt.Description)
	setList(&p.Technologies, pt.Technologies)
	set(&p.Link, pt.Link)
	set(&p.GitHub, pt.GitHub)
	set(&p.StartDate, pt.StartDate)
	set(&p.EndDate, pt.EndDate)
	return p
}

// CertificationPatch is a partial update of a CertificationEntry.
type CertificationPatch struct {
	Name         *string `json:"name,omitempty"`
	Issuer       *string `json:"issuer,omitempty"`
	Date         *string `json:"date,omitempty"`
	CredentialID *string `json:"credentialId,omitempty"`
	URL          *string `json:"url,omitempty"`
}

// Apply merges the patch into c.
func (pt CertificationPatch) Apply(c CertificationEntry) CertificationEntry {
	set(&c.Name, pt.Name)
	set(&c.Issuer, pt.Issuer)
	set(&c.Date, pt.Date)
	set(&c.CredentialID, pt.CredentialID)
	set(&c.URL, pt.URL)
	return c
}

// LanguagePatch is a partial update of a LanguageEntry.
type LanguagePatch struct {
	Name        *string              `json:"name,omitempty"`
	Proficiency *LanguageProficiency `json:"proficiency,omitempty"`
}

// Apply merges the patch into l.
func (pt LanguagePatch) Apply(l LanguageEntry) LanguageEntry {
	set(&l.Name, pt.Name)
	set(&l.Proficiency, pt.Proficiency)
	return l
}

// InterestPatch is a partial update of an InterestEntry.
type InterestPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Apply merges the patch into i.
func (pt InterestPatch) Apply(i InterestEntry) InterestEntry {
	set(&i.Name, pt.Name)
	set(&i.Description, pt.Description)
	return i
}

// CustomSectionPatch is a partial update of a CustomSectionEntry.
type CustomSectionPatch struct {
	Title   *string            `json:"title,omitempty"`
	Content *string            `json:"content,omitempty"`
	Type    *CustomSectionType `json:"type,omitempty"`
}

// Apply merges the patch into c.
func (pt CustomSectionPatch) Apply(c CustomSectionEntry) CustomSectionEntry {
	set(&c.Title, pt.Title)
	set(&c.Content, pt.Content)
	set(&c.Type, pt.Type)
	return c
}

// Ptr returns a pointer to v. Handy for building patches.
func Ptr[T any](v T) *T {
	return &v
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// setList copies the patched list so the entry never aliases the caller's slice.
func setList(dst *[]string, v *[]string) {
	if v == nil {
		return
	}
	out := make([]string, len(*v))
	copy(out, *v)
	*dst = out
}
