// Package session provides the durable key-value storage behind the
// session store: two independent slots (token, serialized user) in a local
// SQLite table.
package session

import "context"

// Slot names used by the session store.
const (
	SlotToken = "token"
	SlotUser  = "user"
)

type Repository interface {
	Get(ctx context.Context, slot string) ([]byte, error)
	Set(ctx context.Context, slot string, value []byte) error
	Delete(ctx context.Context, slot string) error
	Clear(ctx context.Context) error
}
