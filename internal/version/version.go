// Package version carries build information injected with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/doeshing/baseconv/internal/version.Version=1.2.0"
package version

var (
	Version   = "dev"
	Commit    = ""
	BuildDate = ""
)
