// Package dynamo provides a DynamoDB backend for the resume storage contract.
//
// A [Store] keeps one item per resume in a single table whose partition key
// is the string attribute "id". Besides the resume attributes (full_name,
// location, contacts, sections) every item carries store-managed fields:
//
//   - version - 1 on Save, incremented by every Update
//   - created_at - RFC 3339 timestamp of the Save
//   - updated_at - RFC 3339 timestamp of the last write
//
// # Consistency
//
// Save, Update and Delete are single conditional writes, so the
// Absent/Stored transitions of the contract hold under concurrent callers
// without extra locking:
//
//   - Save uses attribute_not_exists(id)
//   - Update and Delete use attribute_exists(id)
//
// Load and every scan read with ConsistentRead.
//
// # Configuration
//
// Use [DefaultConfig] for small tables (one sequential scan). Increase
// ScanSegments to parallelize Size, Clear and AllSorted:
//
//	cfg := dynamo.DefaultConfig()
//	cfg.ScanSegments = 8
//	s := dynamo.New(dynamodb.NewFromConfig(awsCfg), cfg)
//
// # Errors
//
// Condition failures map to the storage sentinels ([store.ErrDuplicateID],
// [store.ErrNotFound]). The package adds:
//
//   - [ErrMalformedItem] - a table item does not decode into a valid resume
//   - [ErrUnprocessed] - Clear could not delete every item after retries
//
// Other SDK errors are wrapped with the operation and returned unchanged.
package dynamo
