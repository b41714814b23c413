package cache

import "context"

// Level identifies a tier position in the lookup chain.
type Level int

const (
	L1 Level = iota + 1
	L2
	L3
)

func (l Level) String() string {
	switch l {
	case L1:
		return "l1"
	case L2:
		return "l2"
	case L3:
		return "l3"
	}
	return "unknown"
}

// Tier is the storage contract shared by every cache level. Get reports a
// miss as (nil, nil). Entries must be written atomically per key: a
// concurrent reader observes either the previous entry or the new one, never
// a torn record. Implementations own defensive copies; callers may mutate
// what Get returns.
type Tier interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, key string) error
	Len(ctx context.Context) (int, error)
	SizeBytes(ctx context.Context) (int64, error)
	Clear(ctx context.Context) error
	Close() error
}
