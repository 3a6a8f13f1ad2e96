package dynamo

import "github.com/jacentio/vitae/internal/shard"

// DefaultTable is the table name used when none is configured.
const DefaultTable = "resumes"

// Config holds configuration for the DynamoDB Store.
type Config struct {
	// Table is the name of the resume table. Its partition key must be the
	// string attribute "id".
	// Default: "resumes"
	Table string

	// ScanSegments is the number of parallel segments used by Size, Clear and
	// AllSorted. Larger tables scan faster at the cost of more concurrent
	// requests.
	// Default: 1 (single sequential scan)
	// Max: 16
	ScanSegments int
}

// DefaultConfig returns sensible defaults for small tables.
func DefaultConfig() Config {
	return Config{
		Table:        DefaultTable,
		ScanSegments: 1,
	}
}

// validate ensures config values are within acceptable bounds.
func (c *Config) validate() {
	if c.Table == "" {
		c.Table = DefaultTable
	}
	c.ScanSegments = shard.Clamp(c.ScanSegments)
}
