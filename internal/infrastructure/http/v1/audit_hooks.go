package v1

import (
	"context"
	"encoding/json"

	"posadmin/internal/core/entity"
	"posadmin/internal/core/id"
	"posadmin/internal/domain"
	"posadmin/internal/infrastructure/storage/postgres"
)

// auditable is satisfied by all catalog entities via entity.BaseEntity.
type auditable interface {
	entity.Validatable
	GetID() id.ID
}

// registerAuditHooks wires change logging for one catalog. Hooks run
// after commit, so a failed audit write never rolls back the change;
// it is logged by the hook runner instead.
func registerAuditHooks[T auditable](
	hooks *domain.HookRegistry[T],
	audit *postgres.AuditService,
	entityType string,
) {
	if audit == nil {
		return
	}

	hooks.OnAfterCreate(func(ctx context.Context, e T) error {
		return audit.LogChange(ctx, entityType, e.GetID(), postgres.AuditActionCreate, snapshot(e))
	})
	hooks.OnAfterUpdate(func(ctx context.Context, e T) error {
		return audit.LogChange(ctx, entityType, e.GetID(), postgres.AuditActionUpdate, snapshot(e))
	})
	hooks.OnAfterDelete(func(ctx context.Context, e T) error {
		return audit.LogChange(ctx, entityType, e.GetID(), postgres.AuditActionDelete, snapshot(e))
	})
}

// snapshot renders the committed entity state as a field map.
func snapshot(e any) map[string]any {
	raw, err := json.Marshal(e)
	if err != nil {
		return map[string]any{"_marshal_error": err.Error()}
	}

	var state map[string]any
	if err := json.Unmarshal(raw, &state); err != nil {
		return map[string]any{"_marshal_error": err.Error()}
	}
	return state
}
