package rendering

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/navinkumarg9/pro-resume-mentor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResume() types.Resume {
	r := types.NewResume()
	r.PersonalInfo = types.PersonalInfo{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "555-1234",
		Location: "NYC",
		LinkedIn: "linkedin.com/in/jane",
		Summary:  "Backend engineer focused on reliable distributed systems.",
	}
	r.Experience = []types.ExperienceEntry{
		{ID: "e1", Company: "Acme & Co", Position: "Senior Engineer", StartDate: "2021-01", EndDate: "2022-01", Current: true,
			Achievements: []string{"Cut p99 latency by 40%"}},
		{ID: "e2", Company: "Acme & Co", Position: "Engineer", StartDate: "2019-01", EndDate: "2020-12", Achievements: []string{}},
		{ID: "e3", Company: "Initech", Position: "Intern", StartDate: "2018-06", EndDate: "2018-09", Achievements: []string{}},
	}
	r.Education = []types.EducationEntry{
		{ID: "ed1", Institution: "MIT", Degree: "BSc", Field: "Computer Science", StartDate: "2014", EndDate: "2018", GPA: "3.9", Achievements: []string{}},
	}
	r.Skills = []types.SkillEntry{
		{ID: "s1", Name: "Go", Level: types.SkillExpert, Category: types.CategoryTechnical},
		{ID: "s2", Name: "Mentoring", Level: types.SkillAdvanced, Category: types.CategorySoft},
		{ID: "s3", Name: "PostgreSQL", Level: types.SkillAdvanced, Category: types.CategoryTechnical},
	}
	r.Languages = []types.LanguageEntry{{ID: "l1", Name: "French", Proficiency: types.ProficiencyFluent}}
	return r
}

func parse(t *testing.T, page string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

func TestRenderHTML_Sections(t *testing.T) {
	page, err := RenderHTML(sampleResume(), "classic")
	require.NoError(t, err)
	doc := parse(t, page)

	assert.Equal(t, "classic", doc.Find(".page").AttrOr("data-template", ""))
	assert.Equal(t, "Jane Doe", doc.Find("header h1").Text())
	assert.Equal(t, "Jane Doe", doc.Find("title").Text())
	assert.Equal(t, 3, doc.Find("#experience .entry").Length())
	assert.Equal(t, "Senior Engineer", doc.Find("#experience .entry h3").First().Text())
	assert.Equal(t, "Acme & Co", doc.Find("#experience .sub").First().Text())
	assert.Equal(t, "2021-01 - Present", doc.Find("#experience .dates").First().Text())
	assert.Equal(t, "BSc in Computer Science", doc.Find("#education h3").Text())
	assert.Equal(t, "https://linkedin.com/in/jane", doc.Find(".contact-LinkedIn a").AttrOr("href", ""))
	assert.Equal(t, "mailto:jane@example.com", doc.Find(".contact-Email a").AttrOr("href", ""))
	assert.Equal(t, "French", doc.Find("#languages td").First().Text())
}

func TestRenderHTML_OmitsEmptySections(t *testing.T) {
	page, err := RenderHTML(types.NewResume(), types.DefaultTemplateID)
	require.NoError(t, err)
	doc := parse(t, page)

	assert.Equal(t, NamePlaceholder, doc.Find("header h1").Text())
	assert.Equal(t, "Resume", doc.Find("title").Text())
	for _, id := range []string{"#summary", "#experience", "#education", "#skills", "#projects", "#certifications", "#languages", "#interests"} {
		assert.Zero(t, doc.Find(id).Length(), id)
	}
	assert.Zero(t, doc.Find(".contact").Length())
	assert.Zero(t, doc.Find("img").Length())
}

func TestRenderHTML_SkillsGroupedByCategory(t *testing.T) {
	r := sampleResume()
	r.Skills = append(r.Skills, types.SkillEntry{ID: "s4", Name: "Juggling", Category: "Circus"})

	page, err := RenderHTML(r, "modern")
	require.NoError(t, err)
	doc := parse(t, page)

	var groups []string
	doc.Find("#skills .skill-group h3").Each(func(_ int, s *goquery.Selection) {
		groups = append(groups, s.Text())
	})
	assert.Equal(t, []string{"Technical Skills", "Soft Skills", "Other Skills"}, groups)

	var technical []string
	doc.Find("#skills .skill-group").First().Find(".name").Each(func(_ int, s *goquery.Selection) {
		technical = append(technical, s.Text())
	})
	assert.Equal(t, []string{"Go", "PostgreSQL"}, technical)
}

func TestRenderHTML_UnknownTemplateFallsBack(t *testing.T) {
	r := sampleResume()
	r.TemplateID = "nonexistent-id"

	got, err := RenderDocument(r)
	require.NoError(t, err)

	r.TemplateID = types.DefaultTemplateID
	want, err := RenderDocument(r)
	require.NoError(t, err)

	assert.Equal(t, want, got)
	assert.Equal(t, types.DefaultTemplateID, parse(t, got).Find(".page").AttrOr("data-template", ""))
}

func TestRenderHTML_EveryTemplateRenders(t *testing.T) {
	for _, tmpl := range Templates() {
		t.Run(tmpl.ID, func(t *testing.T) {
			page, err := RenderHTML(sampleResume(), tmpl.ID)
			require.NoError(t, err)
			doc := parse(t, page)
			assert.Equal(t, tmpl.ID, doc.Find(".page").AttrOr("data-template", ""))
			assert.True(t, doc.Find(".page").HasClass("layout-"+string(tmpl.Layout)))
			assert.Equal(t, "Jane Doe", doc.Find("header h1").Text())
		})
	}
}

func TestRenderHTML_DoesNotModifyDocument(t *testing.T) {
	r := sampleResume()
	r.Projects = nil
	before := r.Clone()

	_, err := RenderHTML(r, "startup")
	require.NoError(t, err)

	assert.Equal(t, before, r)
	assert.Nil(t, r.Projects)
}

func TestRenderHTML_EscapesUserText(t *testing.T) {
	r := sampleResume()
	r.PersonalInfo.FullName = `<script>alert(1)</script>`
	r.Projects = []types.ProjectEntry{{ID: "p1", Name: "Tool", Link: "javascript:alert(1)", Technologies: []string{}}}

	page, err := RenderHTML(r, "modern")
	require.NoError(t, err)

	assert.NotContains(t, page, "<script>")
	assert.NotContains(t, page, `href="javascript:`)
}

func TestRenderHTML_CustomSections(t *testing.T) {
	r := types.NewResume()
	r.CustomSections = []types.CustomSectionEntry{
		{ID: "c1", Title: "Volunteering", Type: types.SectionText, Content: `Food bank <b>lead</b><script>alert(1)</script>`},
		{ID: "c2", Title: "Awards", Type: types.SectionList, Content: "- Best paper\n\n• Hackathon winner\n"},
	}

	page, err := RenderHTML(r, "minimal")
	require.NoError(t, err)
	doc := parse(t, page)

	sections := doc.Find(".custom-section")
	require.Equal(t, 2, sections.Length())

	text := sections.First().Find(".text")
	assert.Equal(t, 1, text.Find("b").Length())
	assert.Zero(t, text.Find("script").Length())

	var items []string
	sections.Last().Find("li").Each(func(_ int, s *goquery.Selection) { items = append(items, s.Text()) })
	assert.Equal(t, []string{"Best paper", "Hackathon winner"}, items)
}

func TestPhotoURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"data:image/png;base64,iVBORw0KGgo=", "data:image/png;base64,iVBORw0KGgo="},
		{"https://cdn.example.com/me.jpg", "https://cdn.example.com/me.jpg"},
		{"javascript:alert(1)", ""},
		{"data:text/html;base64,PHNjcmlwdD4=", ""},
		{`data:image/png;base64,"onerror="x`, ""},
		{"/placeholder.svg", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, string(photoURL(tt.in)), tt.in)
	}
}

func TestRenderHTML_Photo(t *testing.T) {
	r := sampleResume()
	r.PersonalInfo.ProfilePhoto = "data:image/png;base64,iVBORw0KGgo="

	page, err := RenderHTML(r, "modern")
	require.NoError(t, err)

	assert.Equal(t, "data:image/png;base64,iVBORw0KGgo=", parse(t, page).Find("img.photo").AttrOr("src", ""))
}

func TestDateRange(t *testing.T) {
	assert.Equal(t, "", dateRange("", ""))
	assert.Equal(t, "2020", dateRange("2020", ""))
	assert.Equal(t, "Present", dateRange("", "Present"))
	assert.Equal(t, "2020 - 2021", dateRange("2020", "2021"))
}
