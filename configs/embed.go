// Package configs embeds the default runtime files written by the installer
// and used when the runtime directory lacks them.
package configs

import "embed"

//go:embed personas.yaml llm.yaml services.yaml prompts/*.md
var FS embed.FS
