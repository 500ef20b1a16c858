package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendafacil/agenda-saas/internal/cache"
	"github.com/agendafacil/agenda-saas/internal/models"
)

const RoleAdmin = "admin"

// PermissionResolver resolve o conjunto de permissões do usuário no
// tenant, com cache em redis na frente do banco
type PermissionResolver struct {
	db    *gorm.DB
	cache *cache.PermissionCache
}

func NewPermissionResolver(db *gorm.DB, c *cache.PermissionCache) *PermissionResolver {
	return &PermissionResolver{db: db, cache: c}
}

func (r *PermissionResolver) Resolve(ctx context.Context, tenantID, userID uint) ([]string, error) {
	if keys, _ := r.cache.Get(ctx, tenantID, userID); keys != nil {
		return keys, nil
	}

	var keys []string
	err := r.db.WithContext(ctx).
		Model(&models.UserPermission{}).
		Joins("JOIN permissions ON permissions.id = user_permissions.permission_id").
		Where("user_permissions.tenant_id = ? AND user_permissions.user_id = ?", tenantID, userID).
		Pluck("permissions.key", &keys).Error
	if err != nil {
		return nil, err
	}

	r.cache.Set(ctx, tenantID, userID, keys)
	return keys, nil
}

func (r *PermissionResolver) Invalidate(ctx context.Context, tenantID, userID uint) {
	r.cache.Invalidate(ctx, tenantID, userID)
}

// RequirePermission barra a rota quando o usuário não tem a permissão;
// admin passa direto
func RequirePermission(resolver *PermissionResolver, key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.MustGet(ContextUserRole).(string)
		if role == RoleAdmin {
			c.Next()
			return
		}

		tenantID := c.MustGet(ContextTenantID).(uint)
		userID := c.MustGet(ContextUserID).(uint)

		keys, err := resolver.Resolve(c.Request.Context(), tenantID, userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed_to_resolve_permissions"})
			return
		}

		for _, k := range keys {
			if k == key {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "permission_denied"})
	}
}

// RequireAdmin protege as rotas administrativas (tenants, módulos)
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.MustGet(ContextUserRole).(string)
		if role != RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin_only"})
			return
		}
		c.Next()
	}
}
