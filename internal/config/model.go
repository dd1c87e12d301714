// internal/config/model.go
//
// Typed configuration model for the docsite server.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                           – dotenv values,
//   • `conf/global.yaml`                        – primary static file,
//   • `DOCSITE_`-prefixed environment overrides – highest precedence.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • Oxford commas, two spaces after periods.  No em-dash.

package config

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

//
// Site section
//

// Site holds documentation-site metadata handed to page rendering.  Dev
// turns on verbose error pages that print configuration hints.
type Site struct {
	Title  string `koanf:"title"  validate:"required"`
	Locale string `koanf:"locale" validate:"omitempty,bcp47_language_tag"`
	Dev    bool   `koanf:"dev"`
}

//
// Assets section
//

// Assets lets operators replace the embedded layer declaration with a file
// on disk.  Empty means "use the embedded style/layers.css".
type Assets struct {
	LayersFile string `koanf:"layers_file" validate:"omitempty,file"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime, never set in YAML or env.
type Paths struct {
	Root string // DOCSITE_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the aggregate returned by Load().  Treat it as read-only once
// loaded.
type Config struct {
	HTTP   HTTP   `koanf:"http"`
	Site   Site   `koanf:"site"`
	Assets Assets `koanf:"assets"`
	Paths  Paths  `koanf:"-"` // not loaded from config files
}
