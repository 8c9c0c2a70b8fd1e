// Package store tracks which recommendations the user has dismissed.
// Dismissals are kept out of sqlite: they expire on their own and losing
// them only means a suggestion reappears.
package store

import "context"

// Dismissals is the dismissed-recommendation set.
type Dismissals interface {
	Dismiss(ctx context.Context, id string) error
	IsDismissed(ctx context.Context, id string) (bool, error)
}
