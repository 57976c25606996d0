package catalog

// Issue is one published unit: a source directory of page images.
type Issue struct {
	ID    string // directory name
	Dir   string // absolute or config-relative source directory
	Pages []Page
	Title Title
	// Cover is the site-relative path of the first page's thumbnail; empty
	// when the issue has no pages.
	Cover string
	// CoverAspect is "W / H" of the first page, set only on the issue the
	// index aspect ratio was taken from.
	CoverAspect string
}

// Page is one source image and the artifacts generated for it. Paths are
// relative to the issue's output directory.
type Page struct {
	File      string // source file name, also the copied original
	Base      string // File without its image extension
	Thumb     string // thumbs/<File>
	Optimized string // optimized/<Base>.<ext>
}

// Title holds the narrative metadata read from title.txt.
type Title struct {
	Arc     string
	Cycle   string
	Display string
}
