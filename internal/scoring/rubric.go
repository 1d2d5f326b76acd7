// Package scoring computes the completeness score of a resume and the suggestions that go with it.
package scoring

import (
	"unicode/utf8"

	"github.com/navinkumarg9/pro-resume-mentor/internal/types"
)

// Suggestions, emitted in rubric order.
const (
	SuggestSummary      = "Add a compelling professional summary"
	SuggestExperience   = "Add your work experience"
	SuggestAchievements = "Add specific achievements to your work experience"
	SuggestEducation    = "Add your educational background"
	SuggestSkills       = "Add relevant skills to showcase your capabilities"
)

// Rubric limits.
const (
	// MinSummaryLength is exclusive: the summary must be longer than this.
	MinSummaryLength = 50
	FullSkillsCount  = 5
	// MaxScore is the highest reachable score, base 100 plus 10 bonus. Scores are not clamped.
	MaxScore = 110
)

// Category names.
const (
	CategoryName         = "name"
	CategoryEmail        = "email"
	CategoryPhone        = "phone"
	CategoryLocation     = "location"
	CategorySummary      = "summary"
	CategoryExperience   = "experience"
	CategoryAchievements = "achievements"
	CategoryEducation    = "education"
	CategorySkills       = "skills"
	CategoryProjects     = "projects"
	CategoryLinkedIn     = "linkedin"
	CategoryGitHub       = "github"
	CategoryWebsite      = "website"
)

// CategoryScore is one row of the rubric as applied to a document.
type CategoryScore struct {
	Category   string `json:"category"`
	Awarded    int    `json:"awarded"`
	Max        int    `json:"max"`
	Bonus      bool   `json:"bonus,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Breakdown applies the rubric to r and returns one row per category in rubric order.
func Breakdown(r types.Resume) []CategoryScore {
	p := r.PersonalInfo

	rows := []CategoryScore{
		present(CategoryName, p.FullName != "", 5),
		present(CategoryEmail, p.Email != "", 5),
		present(CategoryPhone, p.Phone != "", 5),
		present(CategoryLocation, p.Location != "", 5),
	}

	summary := present(CategorySummary, utf8.RuneCountInString(p.Summary) > MinSummaryLength, 10)
	if summary.Awarded == 0 {
		summary.Suggestion = SuggestSummary
	}
	rows = append(rows, summary)

	experience := present(CategoryExperience, len(r.Experience) > 0, 20)
	achievements := present(CategoryAchievements, hasAchievements(r.Experience), 20)
	switch {
	case experience.Awarded == 0:
		experience.Suggestion = SuggestExperience
	case achievements.Awarded == 0:
		achievements.Suggestion = SuggestAchievements
	}
	rows = append(rows, experience, achievements)

	education := present(CategoryEducation, len(r.Education) > 0, 15)
	if education.Awarded == 0 {
		education.Suggestion = SuggestEducation
	}
	rows = append(rows, education)

	skills := CategoryScore{Category: CategorySkills, Max: 15}
	switch n := len(r.Skills); {
	case n >= FullSkillsCount:
		skills.Awarded = 15
	case n > 0:
		skills.Awarded = 7
	default:
		skills.Suggestion = SuggestSkills
	}
	rows = append(rows, skills)

	return append(rows,
		bonus(CategoryProjects, len(r.Projects) > 0, 5),
		bonus(CategoryLinkedIn, p.LinkedIn != "", 2),
		bonus(CategoryGitHub, p.GitHub != "", 2),
		bonus(CategoryWebsite, p.Website != "", 1),
	)
}

// Analyze scores r. It is pure: the same document always yields the same result.
func Analyze(r types.Resume) types.AnalysisResult {
	return Summarize(Breakdown(r))
}

// Summarize folds breakdown rows into an AnalysisResult.
func Summarize(rows []CategoryScore) types.AnalysisResult {
	res := types.AnalysisResult{Suggestions: []string{}}
	for _, row := range rows {
		res.Score += row.Awarded
		if row.Suggestion != "" {
			res.Suggestions = append(res.Suggestions, row.Suggestion)
		}
	}
	return res
}

// Label maps a score to the wording shown next to it.
func Label(score int) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Fair"
	default:
		return "Needs Improvement"
	}
}

func hasAchievements(entries []types.ExperienceEntry) bool {
	for _, e := range entries {
		if len(e.Achievements) > 0 {
			return true
		}
	}
	return false
}

func present(category string, ok bool, points int) CategoryScore {
	row := CategoryScore{Category: category, Max: points}
	if ok {
		row.Awarded = points
	}
	return row
}

func bonus(category string, ok bool, points int) CategoryScore {
	row := present(category, ok, points)
	row.Bonus = true
	return row
}
