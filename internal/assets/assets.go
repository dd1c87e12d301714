// Package assets embeds the static files shipped inside the binary.
//
// LayersCSS is the path of the cascade-layer declaration inside FS.  Its
// layer names and order are shared with every stylesheet of the site, so
// edit it only together with those.
package assets

import "embed"

//go:embed style
var FS embed.FS

const LayersCSS = "style/layers.css"
