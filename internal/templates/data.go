package templates

import "git.home.luguber.info/inful/issuebuilder/internal/catalog"

// Site is exposed to every page as .Site.
type Site struct {
	Title       string
	Description string
	BaseURL     string
	Logo        string
}

// Layout carries the values shared by all pages. Root is the relative path
// from the rendered page back to the output root ("" or "../").
type Layout struct {
	Site Site
	Root string
}

// IssueData is the input of issue.html.
type IssueData struct {
	Layout
	Issue string
	Pages []catalog.Page
	Title string
	Arc   string
	Cycle string
}

// IssueSummary is one entry of the site index.
type IssueSummary struct {
	ID    string
	Title string
	Cover string
	Arc   string
	Cycle string
}

// IndexData is the input of index.html. IndexAspect is the CSS aspect ratio
// of the cover placeholders, empty when no cover could be measured.
type IndexData struct {
	Layout
	Issues      []IssueSummary
	IndexAspect string
}

// AboutData is the input of about.html. About is the decoded about document,
// nil when there is none.
type AboutData struct {
	Layout
	About any
}
