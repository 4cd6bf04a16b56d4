// Package assets embeds the files baseconv ships inside its binary.
package assets

import (
	_ "embed"
)

// DefaultConfigYAML is written to ~/.baseconv/config.yaml on first run and
// restored by `baseconv config reset`.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte

// AboutText is the description printed by `baseconv about`.
//
//go:embed defaults/about.txt
var AboutText string
