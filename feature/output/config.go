package output

// Config holds configuration for the output file store.
type Config struct {
	// Dir is the base directory generated files are written under.
	// Date-bucket subdirectories are created inside it as needed.
	Dir string `mapstructure:"dir" default:"outputs/files"`
	// ServeBase is the base URL of the static file server that exposes Dir.
	ServeBase string `mapstructure:"serve_base" default:"http://127.0.0.1:8888/files/"`
}
