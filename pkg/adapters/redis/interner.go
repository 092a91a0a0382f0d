package redis

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/latword/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// fieldPrefix keeps the epsilon field non-empty.
const fieldPrefix = "s:"

// internScript assigns the next id to an unseen sequence. It runs
// atomically on the server, so concurrent workers in different processes
// agree on every id. The first call on an empty space reserves id 0 for
// the empty sequence.
var internScript = backend.NewScript(`
if redis.call("HLEN", KEYS[1]) == 0 then
	redis.call("HSET", KEYS[1], ARGV[2], 0)
	redis.call("RPUSH", KEYS[2], ARGV[2])
end
local id = redis.call("HGET", KEYS[1], ARGV[1])
if id then
	return tonumber(id)
end
id = redis.call("HLEN", KEYS[1])
redis.call("HSET", KEYS[1], ARGV[1], id)
redis.call("RPUSH", KEYS[2], ARGV[1])
return id
`)

// Interner implements ports.Interner on a Redis hash (sequence to id) and a
// list (id to sequence).
type Interner struct {
	client *backend.Client
	prefix string
	owned  bool
}

// Option configures an Interner.
type Option func(*Interner)

// WithPrefix sets the key prefix of the symbol space.
func WithPrefix(prefix string) Option {
	return func(i *Interner) {
		i.prefix = prefix
	}
}

// New creates an interner with its own client.
func New(address, password string, db int, opts ...Option) *Interner {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	in := NewFromClient(rdb, opts...)
	in.owned = true
	return in
}

// NewFromClient creates an interner from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Interner {
	in := &Interner{
		client: client,
		prefix: "latword:",
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

func (i *Interner) idsKey() string {
	return i.prefix + "symbols:ids"
}

func (i *Interner) seqsKey() string {
	return i.prefix + "symbols:seqs"
}

// Intern returns the id of seq, assigning the next free one if needed.
func (i *Interner) Intern(ctx context.Context, seq domain.LabelSequence) (domain.Label, error) {
	id, err := internScript.Run(ctx, i.client,
		[]string{i.idsKey(), i.seqsKey()},
		fieldPrefix+seq.Key(), fieldPrefix,
	).Int64()
	if err != nil {
		return 0, fmt.Errorf("failed to intern %q in redis: %w", seq.Name(), err)
	}
	return domain.Label(id), nil
}

// Reset empties the symbol space and reserves id 0 for the empty sequence.
func (i *Interner) Reset(ctx context.Context) error {
	pipe := i.client.TxPipeline()
	pipe.Del(ctx, i.idsKey(), i.seqsKey())
	pipe.HSet(ctx, i.idsKey(), fieldPrefix, 0)
	pipe.RPush(ctx, i.seqsKey(), fieldPrefix)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to reset redis symbols: %w", err)
	}
	return nil
}

// Entries returns every interned sequence in id order.
func (i *Interner) Entries(ctx context.Context) ([]domain.SymbolEntry, error) {
	fields, err := i.client.LRange(ctx, i.seqsKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list redis symbols: %w", err)
	}
	out := make([]domain.SymbolEntry, 0, len(fields))
	for id, f := range fields {
		key, ok := strings.CutPrefix(f, fieldPrefix)
		if !ok {
			return nil, fmt.Errorf("%w: malformed field %q", domain.ErrInconsistentTable, f)
		}
		seq, err := domain.ParseSequenceKey(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInconsistentTable, err)
		}
		out = append(out, domain.SymbolEntry{Label: domain.Label(id), Sequence: seq})
	}
	return out, nil
}

// Close releases the client if the interner created it.
func (i *Interner) Close() error {
	if i.owned {
		return i.client.Close()
	}
	return nil
}
