package antoine

// Version is the release of the module, reported by the CLI and /info.
var Version = "0.1.0"
