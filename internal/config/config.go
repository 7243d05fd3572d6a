package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field
// corresponds to an environment variable.  Grid dimensions default to
// the canonical 5x8 hall when unspecified.
type Config struct {
	Env             string // application environment (e.g. "dev", "prod")
	Port            string // HTTP port to listen on
	BackendURL      string // base URL of the ticketing backend
	VisitSecret     string // secret used to sign visit tokens
	VisitTTLMin     int    // visit token time-to-live in minutes
	GridRows        int    // seat grid rows
	GridCols        int    // seat grid columns
	RateLimitPerMin int    // finalize/visit requests allowed per minute per client, 0 disables
}

// Load reads configuration values from environment variables and
// returns a Config.  Required variables are enforced by must() and
// missing values cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:             must("APP_ENV"),                   // environment (dev/test/prod)
		Port:            must("APP_PORT"),                  // port to bind the HTTP server
		BackendURL:      must("BACKEND_URL"),               // ticketing backend base URL
		VisitSecret:     must("VISIT_TOKEN_SECRET"),        // secret for signing visit tokens
		VisitTTLMin:     intDefault("VISIT_TOKEN_TTL_MIN", 120), // visit tokens outlive slow checkouts
		GridRows:        intDefault("GRID_ROWS", 5),        // canonical hall is 5 rows
		GridCols:        intDefault("GRID_COLS", 8),        // of 8 seats each
		RateLimitPerMin: intDefault("RATE_LIMIT_PER_MIN", 30),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// intDefault reads an optional integer variable, falling back to def
// when unset.  A value that fails to parse is fatal rather than
// silently ignored.
func intDefault(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
