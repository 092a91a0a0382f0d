package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/latword/internal/config"
	"github.com/aretw0/latword/pkg/adapters/redis"
	"github.com/aretw0/latword/pkg/domain"
	"github.com/aretw0/latword/pkg/ports"
	"github.com/aretw0/latword/pkg/symbols"
	backend "github.com/redis/go-redis/v9"
)

// lockKey names the lock guarding a shared symbol space.
const lockKey = "symbols"

// symbolSpace is the interner used by a command, either in memory or shared
// through Redis.
type symbolSpace struct {
	ports.Interner
	locker ports.DistributedLocker
	client *backend.Client
	cfg    config.Redis
	logger *slog.Logger
}

func openSymbolSpace(cfg config.Config, logger *slog.Logger) *symbolSpace {
	if cfg.Redis.Addr == "" {
		return &symbolSpace{Interner: symbols.NewTable(), logger: logger}
	}
	client := backend.NewClient(&backend.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	prefix := strings.TrimSuffix(cfg.Redis.Prefix, ":") + ":"
	return &symbolSpace{
		Interner: redis.NewFromClient(client, redis.WithPrefix(prefix)),
		locker:   redis.NewLocker(client, prefix),
		client:   client,
		cfg:      cfg.Redis,
		logger:   logger,
	}
}

func (s *symbolSpace) shared() bool {
	return s.client != nil
}

// exclusive runs fn while holding the symbol space lock. In-memory spaces
// need no lock.
func (s *symbolSpace) exclusive(ctx context.Context, fn func(context.Context) error) error {
	if s.locker == nil {
		return fn(ctx)
	}
	unlock, err := s.locker.Lock(ctx, lockKey, s.cfg.LockTTL)
	if err != nil {
		return fmt.Errorf("failed to lock symbol space: %w", err)
	}
	err = fn(ctx)
	if uerr := unlock(context.WithoutCancel(ctx)); uerr != nil {
		if errors.Is(uerr, redis.ErrLockLost) {
			s.logger.Warn("symbol space lock expired before release", "ttl", s.cfg.LockTTL)
		} else {
			err = errors.Join(err, uerr)
		}
	}
	return err
}

// table builds the symbol table of the space.
func (s *symbolSpace) table(ctx context.Context) ([]domain.Symbol, error) {
	return symbols.BuildFrom(ctx, s.Interner)
}

func (s *symbolSpace) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}
