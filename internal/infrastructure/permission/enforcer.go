// Package permission stores group membership in casbin's gorm adapter.
package permission

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"tickettracker/internal/shared/authorization"
	"tickettracker/internal/shared/logger"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// Enforcer keeps "user:<id> belongs to <group>" rules in casbin_rule.
type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
	logger   logger.Interface
}

func NewEnforcer(db *gorm.DB, log logger.Interface) (*Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}

	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	return &Enforcer{enforcer: enforcer, logger: log}, nil
}

func subject(userID uint) string {
	return "user:" + strconv.FormatUint(uint64(userID), 10)
}

// GroupsOf reloads the stored rules before answering so membership changes
// made by other processes are seen on the next request.
func (e *Enforcer) GroupsOf(_ context.Context, userID uint) ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load group rules: %w", err)
	}
	groups, err := e.enforcer.GetRolesForUser(subject(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get groups for user: %w", err)
	}
	return groups, nil
}

func (e *Enforcer) AddToGroup(_ context.Context, userID uint, group string) error {
	group = strings.TrimSpace(group)
	if group == "" {
		return fmt.Errorf("group name is required")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.AddRoleForUser(subject(userID), group); err != nil {
		e.logger.Errorw("failed to add user to group", "error", err, "user_id", userID, "group", group)
		return fmt.Errorf("failed to add user to group: %w", err)
	}
	e.logger.Infow("user added to group", "user_id", userID, "group", group)
	return nil
}

func (e *Enforcer) RemoveFromGroup(_ context.Context, userID uint, group string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.DeleteRoleForUser(subject(userID), group); err != nil {
		e.logger.Errorw("failed to remove user from group", "error", err, "user_id", userID, "group", group)
		return fmt.Errorf("failed to remove user from group: %w", err)
	}
	e.logger.Infow("user removed from group", "user_id", userID, "group", group)
	return nil
}

// GrantAdmin is shorthand for adding the user to the admin group.
func (e *Enforcer) GrantAdmin(ctx context.Context, userID uint) error {
	return e.AddToGroup(ctx, userID, authorization.GroupAdmin)
}

func (e *Enforcer) RevokeAdmin(ctx context.Context, userID uint) error {
	return e.RemoveFromGroup(ctx, userID, authorization.GroupAdmin)
}
