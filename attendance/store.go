/*
store.go - Persistence interface

PURPOSE:
  The engine persists the whole state synchronously after every mutating
  operation and loads it once at startup. Implementations live under store/
  (JSON files matching the historical on-disk layout, and SQLite).

  Load returns an empty-but-usable state when nothing has been persisted yet.
  Legacy shape normalization (older attendance files storing a single object
  per entry instead of a list) happens inside Load; the engine only ever sees
  the canonical State.
*/
package attendance

import "context"

// Store persists and restores the full Directory + Ledger state.
type Store interface {
	Load(ctx context.Context) (*State, error)
	Save(ctx context.Context, state *State) error
}
