package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/agendafacil/agenda-saas/internal/config"
)

const permissionTTL = 5 * time.Minute

// PermissionCache guarda o conjunto de permissões resolvido por usuário;
// invalidado quando as permissões do usuário mudam
type PermissionCache struct {
	rdb *redis.Client
}

func NewPermissionCache(cfg *config.Config) *PermissionCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	return &PermissionCache{rdb: rdb}
}

func permissionKey(tenantID, userID uint) string {
	return fmt.Sprintf("perm:%d:%d", tenantID, userID)
}

// Get retorna (nil, nil) em cache miss ou redis fora do ar — quem chama
// sempre consegue resolver pelo banco
func (c *PermissionCache) Get(ctx context.Context, tenantID, userID uint) ([]string, error) {
	val, err := c.rdb.Get(ctx, permissionKey(tenantID, userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, nil
	}

	var keys []string
	if err := json.Unmarshal([]byte(val), &keys); err != nil {
		return nil, nil
	}
	return keys, nil
}

func (c *PermissionCache) Set(ctx context.Context, tenantID, userID uint, keys []string) {
	b, err := json.Marshal(keys)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, permissionKey(tenantID, userID), b, permissionTTL)
}

func (c *PermissionCache) Invalidate(ctx context.Context, tenantID, userID uint) {
	c.rdb.Del(ctx, permissionKey(tenantID, userID))
}
