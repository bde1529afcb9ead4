package version

// Value is overridden at build time with -ldflags "-X jobtrack/internal/version.Value=...".
var Value = "dev"
