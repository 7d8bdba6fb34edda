package database

// Options selects and locates the database
type Options struct {
	// Type is "sqlite" or "postgres"
	Type string
	// Path is the sqlite file, ":memory:" for a throwaway database
	Path string
	// DSN is the postgres connection string
	DSN string
}
