// Package assets embeds the default icon sheets.
package assets

import "embed"

// BlipSheet is the path of the default blip sheet within FS.
const BlipSheet = "map_blips.rsi"

//go:embed map_blips.rsi
var FS embed.FS
