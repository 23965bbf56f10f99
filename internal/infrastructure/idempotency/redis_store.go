package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/jhoicas/taller-erp/internal/application/ports"
	"github.com/jhoicas/taller-erp/pkg/config"
)

var _ ports.IdempotencyStore = (*RedisStore)(nil)

// RedisStore deduplica reintentos de createSale: clave del caller → ID de la
// venta ya creada. Las claves expiran con TTL; pasada la ventana un reintento
// tardío crea una venta nueva, que es el comportamiento documentado.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore conecta al Redis configurado y verifica con ping.
func NewRedisStore(ctx context.Context, cfg config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	ttl := time.Duration(cfg.IdempotencyTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

func storeKey(companyID, key string) string {
	return "idem:sale:" + companyID + ":" + key
}

// Get retorna el ID de la venta ya creada para la clave ("" si no existe).
func (s *RedisStore) Get(ctx context.Context, companyID, key string) (string, error) {
	val, err := s.client.Get(ctx, storeKey(companyID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get idempotency key: %w", err)
	}
	return val, nil
}

// Put registra la venta creada para la clave. SetNX: si otro request ganó la
// carrera, la primera venta registrada queda como la canónica.
func (s *RedisStore) Put(ctx context.Context, companyID, key, saleID string) error {
	if err := s.client.SetNX(ctx, storeKey(companyID, key), saleID, s.ttl).Err(); err != nil {
		return fmt.Errorf("put idempotency key: %w", err)
	}
	return nil
}

// Close libera la conexión.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
