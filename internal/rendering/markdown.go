package rendering

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"

	"github.com/navinkumarg9/pro-resume-mentor/internal/types"
)

var mdConverter = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
		table.NewTablePlugin(),
	),
)

// RenderMarkdown renders doc as Markdown. The layout of the template does not survive the
// conversion but the section order does.
func RenderMarkdown(doc types.Resume, templateID string) (string, error) {
	page, err := RenderHTML(doc, templateID)
	if err != nil {
		return "", err
	}

	body, err := pageBody(page)
	if err != nil {
		return "", &RenderError{Message: "failed to read rendered page", Cause: err}
	}

	md, err := mdConverter.ConvertString(body)
	if err != nil {
		return "", &RenderError{Message: "failed to convert page to markdown", Cause: err}
	}
	return strings.TrimSpace(md) + "\n", nil
}

// pageBody returns the inner HTML of the page container without the photo.
func pageBody(page string) (string, error) {
	dom, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", err
	}
	dom.Find("style, img.photo").Remove()
	return dom.Find(".page").Html()
}
