package app

// Config captures the settings the web server needs.
type Config struct {
	// HTTPAddr is the listen address.
	HTTPAddr string
	// ContentBaseURL is the content repository's base URL.
	ContentBaseURL string
	// StoragePath is the SQLite database path for visitor preferences.
	// Empty disables persistence; language selection then falls back to
	// Accept-Language and the default.
	StoragePath string
}
