// Package redis implementa el almacén de sesiones de carrito/checkout sobre
// Redis. Cada sesión se serializa como JSON bajo la clave cart:session:<id>
// con TTL; cada escritura renueva el TTL, así una sesión activa no expira.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/KwikEMart-api/internal/domain/checkout"
	"github.com/jhoicas/KwikEMart-api/internal/domain/repository"
	"github.com/jhoicas/KwikEMart-api/pkg/config"
)

const sessionKeyPrefix = "cart:session:"

var _ repository.SessionRepository = (*SessionRepo)(nil)

// NewClient crea el cliente Redis a partir de la configuración y verifica la
// conexión con un ping.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	var opts *goredis.Options
	if cfg.URL != "" {
		parsed, err := goredis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		opts = parsed
	} else {
		opts = &goredis.Options{
			Addr:     cfg.Addr(),
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// SessionRepo implementación del puerto SessionRepository sobre Redis.
type SessionRepo struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewSessionRepository construye el almacén de sesiones con el TTL configurado.
func NewSessionRepository(client *goredis.Client, cfg config.RedisConfig) *SessionRepo {
	return &SessionRepo{
		client: client,
		ttl:    time.Duration(cfg.SessionTTL) * time.Minute,
	}
}

// Get devuelve la sesión o nil si no existe o expiró.
func (r *SessionRepo) Get(ctx context.Context, id string) (*checkout.Session, error) {
	data, err := r.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	var s checkout.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &s, nil
}

// Save persiste la sesión y renueva su TTL.
func (r *SessionRepo) Save(ctx context.Context, s *checkout.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := r.client.Set(ctx, sessionKeyPrefix+s.ID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Delete elimina la sesión. Borrar una sesión inexistente no es error.
func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
