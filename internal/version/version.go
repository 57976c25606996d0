package version

// Version is the issuebuilder release, set at build time:
// go build -ldflags "-X git.home.luguber.info/inful/issuebuilder/internal/version.Version=v1.2.0".
var Version = "dev"

// Build metadata, also set through ldflags.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by --version.
func String() string {
	s := Version
	if GitCommit != "unknown" && GitCommit != "" {
		s += " (" + GitCommit + ")"
	}
	if BuildTime != "unknown" && BuildTime != "" {
		s += " built " + BuildTime
	}
	return s
}
