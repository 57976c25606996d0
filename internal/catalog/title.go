package catalog

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	ferrors "git.home.luguber.info/inful/issuebuilder/internal/foundation/errors"
)

// TitleFile is the optional per-issue metadata file: arc on line one, cycle on line two.
const TitleFile = "title.txt"

// TitleSeparator joins arc and cycle in the display title.
const TitleSeparator = " — "

var lineBreak = regexp.MustCompile(`\r?\n`)

// ReadTitle derives the issue title from dir/title.txt. Without the file the
// arc and display title are the issue id.
func ReadTitle(dir, id string) (Title, error) {
	raw, err := os.ReadFile(filepath.Join(dir, TitleFile))
	if err != nil {
		if os.IsNotExist(err) {
			return Title{Arc: id, Display: id}, nil
		}
		return Title{}, ferrors.FileSystemError("read title file").WithCause(err).
			WithContext("issue", id).Build()
	}
	return ParseTitle(string(raw), id), nil
}

// ParseTitle splits raw into trimmed non-empty lines. Line one is the arc
// (falling back to id), line two the cycle; further lines are ignored.
func ParseTitle(raw, id string) Title {
	raw = strings.TrimPrefix(raw, "\ufeff")

	var lines []string
	for _, l := range lineBreak.Split(raw, -1) {
		l = strings.TrimSpace(norm.NFC.String(l))
		if l != "" {
			lines = append(lines, l)
		}
	}

	t := Title{Arc: id}
	if len(lines) > 0 {
		t.Arc = lines[0]
	}
	if len(lines) > 1 {
		t.Cycle = lines[1]
	}
	t.Display = t.Arc
	if t.Cycle != "" {
		t.Display = t.Arc + TitleSeparator + t.Cycle
	}
	return t
}
