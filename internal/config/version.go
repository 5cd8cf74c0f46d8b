package config

// Version is the cinedex binary version.
// Set at build time via: -ldflags "-X github.com/persistorai/cinedex/internal/config.Version=<tag>"
// Defaults to "dev" when built without ldflags.
var Version = "dev"
