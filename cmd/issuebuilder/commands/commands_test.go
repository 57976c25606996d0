package commands

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/issuebuilder/internal/catalog"
	"git.home.luguber.info/inful/issuebuilder/internal/foundation/errors"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("issuebuilder"),
		kong.Vars{"version": "test"},
		kong.Exit(func(int) { t.Fatalf("unexpected exit for %v", args) }),
	)
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return ctx.Run(&Global{}, &cli)
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.NRGBA{R: uint8(x * 3), G: uint8(y * 3), B: 40, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func TestInitThenBuild(t *testing.T) {
	t.Chdir(t.TempDir())

	require.NoError(t, run(t, "init"))
	assert.FileExists(t, "issuebuilder.yaml")
	assert.FileExists(t, filepath.Join("templates", "issue.html"))
	assert.FileExists(t, filepath.Join("templates", "theme.js"))

	require.Error(t, run(t, "init"), "existing configuration must not be overwritten")
	require.NoError(t, run(t, "init", "--force", "--no-templates"))

	writePNG(t, filepath.Join("issues", "001", "01.png"), 64, 96)
	require.NoError(t, os.WriteFile(filepath.Join("issues", "001", "title.txt"), []byte("Dawn\nBook One\n"), 0o644))

	require.NoError(t, run(t, "build"))
	assert.FileExists(t, filepath.Join("public", "index.html"))
	assert.FileExists(t, filepath.Join("public", "001", "index.html"))
	assert.FileExists(t, filepath.Join("public", "001", "thumbs", "01.png"))
	assert.FileExists(t, filepath.Join("public", "001", "optimized", "01.webp"))
	assert.FileExists(t, "build-report.json")

	require.NoError(t, run(t, "build", "-o", "elsewhere"))
	assert.FileExists(t, filepath.Join("elsewhere", "001", "index.html"))
}

func TestBuild_DefaultsWithoutConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	writePNG(t, filepath.Join("issues", "007", "a.png"), 30, 30)

	require.NoError(t, run(t, "build"))
	assert.FileExists(t, filepath.Join("public", "007", "index.html"))
	assert.FileExists(t, filepath.Join("public", "styles.css"))
}

func TestBuild_ExitCodes(t *testing.T) {
	t.Chdir(t.TempDir())
	adapter := errors.NewCLIErrorAdapter(false, slog.Default())

	err := run(t, "build")
	require.Error(t, err)
	assert.Equal(t, 3, adapter.ExitCodeFor(err), "missing issues root")

	err = run(t, "--config", "missing.yaml", "build")
	require.Error(t, err)
	assert.Equal(t, 7, adapter.ExitCodeFor(err), "explicit config must exist")

	require.NoError(t, os.MkdirAll(filepath.Join("issues", "001"), 0o755))
	err = run(t, "build", "-o", "issues")
	require.Error(t, err)
	assert.Equal(t, 2, adapter.ExitCodeFor(err), "output must not replace a source directory")
	assert.DirExists(t, filepath.Join("issues", "001"))

	require.NoError(t, os.WriteFile("bad.yaml", []byte("images:\n  optimized_quality: 400\n"), 0o644))
	err = run(t, "-c", "bad.yaml", "build")
	require.Error(t, err)
	assert.Equal(t, 2, adapter.ExitCodeFor(err))
}

func TestPrintIssues(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printIssues(&buf, []catalog.Issue{
		{ID: "001", Pages: make([]catalog.Page, 3), Title: catalog.Title{Display: "Dawn - Book One"}},
		{ID: "002", Pages: make([]catalog.Page, 1), Title: catalog.Title{Display: "002"}},
	}))

	out := buf.String()
	assert.Contains(t, out, "ISSUE")
	assert.Regexp(t, `001\s+3\s+Dawn - Book One`, out)
	assert.Regexp(t, `002\s+1\s+002`, out)
	assert.Contains(t, out, "2 issues, 4 pages")
}

func TestScan(t *testing.T) {
	t.Chdir(t.TempDir())
	writePNG(t, filepath.Join("issues", "001", "01.png"), 10, 10)
	require.NoError(t, run(t, "scan"))
	assert.NoDirExists(t, "public")
}
