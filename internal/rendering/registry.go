package rendering

import (
	"github.com/navinkumarg9/pro-resume-mentor/internal/types"
)

// Layout is the structural variant a template renders with.
type Layout string

// Layouts
const (
	// LayoutSidebar puts experience and projects in a main column, education and skills beside them.
	LayoutSidebar Layout = "sidebar"
	// LayoutClassic is a single column with a centred header.
	LayoutClassic Layout = "classic"
	// LayoutBanner is a single column under a full-width coloured header.
	LayoutBanner Layout = "banner"
)

// Palette holds the colours of a template.
type Palette struct {
	Accent string `json:"accent"`
	Soft   string `json:"soft"`
	Text   string `json:"text"`
}

// Template describes one entry of the registry.
type Template struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Layout      Layout  `json:"layout"`
	Font        string  `json:"font"`
	Palette     Palette `json:"palette"`
}

const (
	fontSans  = "Inter, 'Helvetica Neue', Arial, sans-serif"
	fontSerif = "Georgia, 'Times New Roman', serif"
)

var registry = []Template{
	{types.DefaultTemplateID, "Modern", "Clean and professional for tech roles", LayoutSidebar, fontSans, Palette{"#1d4ed8", "#dbeafe", "#111827"}},
	{"classic", "Classic", "Traditional format for conservative industries", LayoutClassic, fontSerif, Palette{"#1f2937", "#e5e7eb", "#111827"}},
	{"minimal", "Minimal", "Clean and simple design with focus on content", LayoutClassic, fontSans, Palette{"#374151", "#f3f4f6", "#111827"}},
	{"professional", "Professional", "Corporate-friendly layout with structured sections", LayoutBanner, fontSans, Palette{"#1e3a8a", "#e0e7ff", "#111827"}},
	{"creative", "Creative", "Colorful and unique for creative roles", LayoutSidebar, fontSans, Palette{"#9333ea", "#f3e8ff", "#1f2937"}},
	{"executive", "Executive", "Sophisticated layout for senior positions", LayoutBanner, fontSerif, Palette{"#111827", "#e5e7eb", "#111827"}},
	{"elegant", "Elegant", "Refined and elegant design with subtle styling", LayoutClassic, fontSerif, Palette{"#6b7280", "#f3f4f6", "#1f2937"}},
	{"corporate", "Corporate", "Professional corporate design with clean structure", LayoutBanner, fontSans, Palette{"#1e40af", "#dbeafe", "#111827"}},
	{"legal", "Legal", "Conservative template for legal and finance professionals", LayoutClassic, fontSerif, Palette{"#0f172a", "#e2e8f0", "#0f172a"}},
	{"healthcare", "Healthcare", "Professional template for medical professionals", LayoutSidebar, fontSans, Palette{"#0e7490", "#cffafe", "#111827"}},
	{"contemporary", "Contemporary", "Modern design with fresh styling elements", LayoutSidebar, fontSans, Palette{"#059669", "#d1fae5", "#111827"}},
	{"academic", "Academic", "Scholarly format for academic and research positions", LayoutClassic, fontSerif, Palette{"#7c2d12", "#ffedd5", "#1c1917"}},
	{"sales", "Sales", "Dynamic orange design for sales and marketing professionals", LayoutBanner, fontSans, Palette{"#ea580c", "#ffedd5", "#1f2937"}},
	{"finance", "Finance", "Professional teal design for finance and banking roles", LayoutBanner, fontSans, Palette{"#0d9488", "#ccfbf1", "#111827"}},
	{"engineering", "Engineering", "Technical slate design for engineering professionals", LayoutSidebar, fontSans, Palette{"#475569", "#e2e8f0", "#0f172a"}},
	{"design", "Design Portfolio", "Vibrant multi-color template for designers and creatives", LayoutSidebar, fontSans, Palette{"#db2777", "#fce7f3", "#1f2937"}},
	{"consulting", "Consulting", "Professional gray/blue template for consultants", LayoutBanner, fontSans, Palette{"#334155", "#e0f2fe", "#111827"}},
	{"education", "Education", "Warm template for educators and trainers", LayoutClassic, fontSans, Palette{"#b45309", "#fef3c7", "#1f2937"}},
	{"nonprofit", "Nonprofit", "Earth-tone template for nonprofit sector", LayoutClassic, fontSans, Palette{"#4d7c0f", "#ecfccb", "#1c1917"}},
	{"realestate", "Real Estate", "Luxurious gold template for real estate professionals", LayoutBanner, fontSerif, Palette{"#a16207", "#fef9c3", "#1c1917"}},
	{"hospitality", "Hospitality", "Elegant burgundy template for hospitality industry", LayoutBanner, fontSerif, Palette{"#881337", "#ffe4e6", "#1f2937"}},
	{"media", "Media", "Bold colorful template for media and entertainment", LayoutSidebar, fontSans, Palette{"#c026d3", "#fae8ff", "#111827"}},
	{"startup", "Startup", "Modern gradient template for startup environments", LayoutBanner, fontSans, Palette{"#6366f1", "#e0e7ff", "#111827"}},
	{"datascience", "Data Science", "Tech-focused template for data scientists and analysts", LayoutSidebar, fontSans, Palette{"#2563eb", "#dbeafe", "#0f172a"}},
}

var byID = func() map[string]Template {
	m := make(map[string]Template, len(registry))
	for _, t := range registry {
		m[t.ID] = t
	}
	return m
}()

// Templates returns every registered template in display order.
func Templates() []Template {
	out := make([]Template, len(registry))
	copy(out, registry)
	return out
}

// Lookup returns the template registered under id.
func Lookup(id string) (Template, bool) {
	t, ok := byID[id]
	return t, ok
}

// Resolve returns the template registered under id, or the default template with
// resolved=false when id is unknown.
func Resolve(id string) (tmpl Template, resolved bool) {
	if t, ok := byID[id]; ok {
		return t, true
	}
	return byID[types.DefaultTemplateID], false
}

// Known reports whether id is registered.
func Known(id string) bool {
	_, ok := byID[id]
	return ok
}

// IDs returns every registered template id in display order.
func IDs() []string {
	ids := make([]string, len(registry))
	for i, t := range registry {
		ids[i] = t.ID
	}
	return ids
}
