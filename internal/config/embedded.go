package config

// Values injected at build time via ldflags.
// EmbeddedTMDBKey is the last fallback after the config file and environment.
//
// Build with:
//   go build -ldflags "-X 'github.com/slipstream/filmography/internal/config.EmbeddedTMDBKey=xxx' \
//                      -X 'github.com/slipstream/filmography/internal/config.Version=1.2.0'"
var (
	EmbeddedTMDBKey string
	Version         = "1.0.0"
)
