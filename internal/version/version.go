package version

// Set at release time via -ldflags "-X .../internal/version.Version=..."
// and friends; the defaults mark an ad-hoc local build.
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = ""
	Dirty     = "false"
)

// Info reports the build metadata as a flat map, ready for JSON.
func Info() map[string]string {
	return map[string]string{
		"version": Version,
		"commit":  Commit,
		"date":    BuildDate,
		"dirty":   Dirty,
	}
}
