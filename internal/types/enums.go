package types

// SkillLevel is the self-assessed proficiency of a skill.
type SkillLevel string

// Skill levels
const (
	SkillBeginner     SkillLevel = "Beginner"
	SkillIntermediate SkillLevel = "Intermediate"
	SkillAdvanced     SkillLevel = "Advanced"
	SkillExpert       SkillLevel = "Expert"
)

// Valid reports whether l is one of the known skill levels.
func (l SkillLevel) Valid() bool {
	switch l {
	case SkillBeginner, SkillIntermediate, SkillAdvanced, SkillExpert:
		return true
	}
	return false
}

// SkillCategory groups skills in rendered output.
type SkillCategory string

// Skill categories
const (
	CategoryTechnical SkillCategory = "Technical"
	CategorySoft      SkillCategory = "Soft"
	CategoryLanguage  SkillCategory = "Language"
	CategoryOther     SkillCategory = "Other"
)

// Valid reports whether c is one of the known skill categories.
func (c SkillCategory) Valid() bool {
	switch c {
	case CategoryTechnical, CategorySoft, CategoryLanguage, CategoryOther:
		return true
	}
	return false
}

// SkillCategories returns every category in display order.
func SkillCategories() []SkillCategory {
	return []SkillCategory{CategoryTechnical, CategorySoft, CategoryLanguage, CategoryOther}
}

// LanguageProficiency is the spoken proficiency of a language entry.
type LanguageProficiency string

// Language proficiencies
const (
	ProficiencyNative       LanguageProficiency = "Native"
	ProficiencyFluent       LanguageProficiency = "Fluent"
	ProficiencyAdvanced     LanguageProficiency = "Advanced"
	ProficiencyIntermediate LanguageProficiency = "Intermediate"
	ProficiencyBeginner     LanguageProficiency = "Beginner"
)

// Valid reports whether p is one of the known proficiencies.
func (p LanguageProficiency) Valid() bool {
	switch p {
	case ProficiencyNative, ProficiencyFluent, ProficiencyAdvanced, ProficiencyIntermediate, ProficiencyBeginner:
		return true
	}
	return false
}

// CustomSectionType controls how custom section content is laid out.
type CustomSectionType string

// Custom section types
const (
	SectionText CustomSectionType = "text"
	SectionList CustomSectionType = "list"
)

// Valid reports whether t is a known section type.
func (t CustomSectionType) Valid() bool {
	return t == SectionText || t == SectionList
}
