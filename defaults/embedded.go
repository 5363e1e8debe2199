package defaults

import _ "embed"

//go:embed texelgfx.json
var systemConfig []byte

// SystemConfig returns the embedded default config JSON.
func SystemConfig() []byte {
	return systemConfig
}
