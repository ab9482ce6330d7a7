package fieldmap

import (
	"sync"

	"tripbuilder/internal/ghl"
	"tripbuilder/internal/models"
)

// Registry answers "which local column does this CRM field land in"
// and the reverse "which field key does this column push to". Inbound
// resolution joins on the CRM's opaque field id; the human-readable
// field key is only a fallback, since CRM admins can rename keys.
type Registry struct {
	mu sync.RWMutex

	// static tables, compiled once: table -> field key -> mapping
	staticByKey map[string]map[string]Mapping
	// outbound: table -> column -> field key
	outbound map[string]map[string]string
	// live bindings from the last rebuild: table -> CRM field id -> mapping
	boundByID map[string]map[string]Mapping
}

// NewRegistry compiles the static mapping tables. Inbound resolution
// by field id returns nothing until Rebuild or LoadPersisted binds
// live CRM field ids.
func NewRegistry() *Registry {
	r := &Registry{
		staticByKey: map[string]map[string]Mapping{
			TableTrips:      {},
			TablePassengers: {},
		},
		outbound: map[string]map[string]string{
			TableTrips:      {},
			TablePassengers: {},
		},
		boundByID: map[string]map[string]Mapping{
			TableTrips:      {},
			TablePassengers: {},
		},
	}
	for _, m := range tripMappings {
		r.staticByKey[TableTrips][m.FieldKey] = m
		r.outbound[TableTrips][m.Column] = m.FieldKey
	}
	for _, m := range passengerMappings {
		r.staticByKey[TablePassengers][m.FieldKey] = m
		r.outbound[TablePassengers][m.Column] = m.FieldKey
	}
	return r
}

// ResolveInbound looks up a mapping by CRM field id for one target
// table. The second return is false for unmapped fields; callers skip
// those without error.
func (r *Registry) ResolveInbound(table, fieldID string) (Mapping, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.boundByID[table][fieldID]
	return m, ok
}

// ResolveInboundKey looks up a mapping by field key. Used when a wire
// entry carries a key but its id has not been bound yet.
func (r *Registry) ResolveInboundKey(table, fieldKey string) (Mapping, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.staticByKey[table][fieldKey]
	return m, ok
}

// ResolveOutbound returns the CRM field key a local column pushes to.
// Columns without an outbound mapping are local-only.
func (r *Registry) ResolveOutbound(table, column string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	key, ok := r.outbound[table][column]
	return key, ok
}

// Rebuild re-binds live CRM field ids to the static tables. Only
// descriptors whose field key appears in a static table produce a
// mapping row; the rest come back as unmapped for operator review.
// The registry never invents mappings for unapproved fields, so a new
// CRM field can never silently route data into a local column.
// Rebuilding twice with the same descriptors yields the same rows.
func (r *Registry) Rebuild(defs []*ghl.CustomFieldDefinition) (rows []models.FieldMapping, unmapped []*ghl.CustomFieldDefinition) {
	bound := map[string]map[string]Mapping{
		TableTrips:      {},
		TablePassengers: {},
	}

	for _, def := range defs {
		matched := false
		for _, table := range []string{TableTrips, TablePassengers} {
			m, ok := r.staticByKey[table][def.FieldKey]
			if !ok {
				continue
			}
			bound[table][def.ID] = m
			rows = append(rows, models.FieldMapping{
				GHLFieldID: def.ID,
				FieldKey:   def.FieldKey,
				TableName:  table,
				ColumnName: m.Column,
				ValueType:  string(m.Type),
			})
			matched = true
		}
		if !matched {
			unmapped = append(unmapped, def)
		}
	}

	r.mu.Lock()
	r.boundByID = bound
	r.mu.Unlock()

	return rows, unmapped
}

// LoadPersisted hydrates the id bindings from previously materialized
// mapping rows, so inbound resolution works before the first field
// sync of a process. Rows whose field key no longer exists in the
// static tables are ignored.
func (r *Registry) LoadPersisted(rows []models.FieldMapping) {
	bound := map[string]map[string]Mapping{
		TableTrips:      {},
		TablePassengers: {},
	}
	for _, row := range rows {
		m, ok := r.staticByKey[row.TableName][row.FieldKey]
		if !ok {
			continue
		}
		bound[row.TableName][row.GHLFieldID] = m
	}

	r.mu.Lock()
	r.boundByID = bound
	r.mu.Unlock()
}
