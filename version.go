package labscript

// Version is the release version, overridable at build time via
// -ldflags "-X github.com/labscript-ai/labscript.Version=...".
var Version = "0.3.0"
