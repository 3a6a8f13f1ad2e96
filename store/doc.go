// Package store provides the resume storage contract and its in-memory
// backends.
//
// Every backend implements [Store], keyed by the resume id:
//
//	type Store interface {
//	    Save(ctx, r) error
//	    Load(ctx, id) (*resume.Resume, error)
//	    Update(ctx, r) error
//	    Delete(ctx, id) error
//	    Clear(ctx) error
//	    Size(ctx) (int, error)
//	    AllSorted(ctx) ([]*resume.Resume, error)
//	}
//
// Per id, a resume moves Absent -> Stored on Save, stays Stored on Update and
// returns to Absent on Delete. Save while Stored, or Update/Delete while
// Absent, is an error rather than a silent transition.
//
// # Backends
//
//   - [ArrayStore] - capacity-bounded, linear scans, swap-with-last delete
//   - [MapStore] - unbounded, keyed lookups
//   - store/dynamo - DynamoDB, same contract against durable media
//
// The in-memory backends never block and ignore the context. They are not
// safe for concurrent use; wrap them with [Synchronized] when operations come
// from several goroutines.
//
// # Configuration
//
// Build a [Config] once at startup and pass it to [New]:
//
//	cfg := store.DefaultConfig() // ARRAY, capacity 100
//	cfg.Backend = store.BackendMap
//	s, err := store.New(cfg)
//
// # Errors
//
// The package defines storage errors, matched with errors.Is:
//
//   - [ErrDuplicateID] - Save of an id already stored
//   - [ErrNotFound] - Load, Update or Delete of an absent id
//   - [ErrCapacityExceeded] - Save into a full ArrayStore
//   - [ErrNilResume] - nil resume passed to Save or Update
//   - [ErrUnknownBackend] - unrecognised backend name
package store
