package repositories

import (
	"context"

	"tripbuilder/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CustomFieldRepository struct {
	DB *pgxpool.Pool
}

func NewCustomFieldRepository(db *pgxpool.Pool) *CustomFieldRepository {
	return &CustomFieldRepository{DB: db}
}

func (r *CustomFieldRepository) UpsertGroup(ctx context.Context, g *models.CustomFieldGroup) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO custom_field_groups(id, name, model, pipeline_id)
		 VALUES($1,$2,$3,$4)
		 ON CONFLICT (id) DO UPDATE SET
			name=EXCLUDED.name, model=EXCLUDED.model, pipeline_id=EXCLUDED.pipeline_id`,
		g.ID, g.Name, g.Model, g.PipelineID)
	return err
}

func (r *CustomFieldRepository) Upsert(ctx context.Context, f *models.CustomField) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO custom_fields(ghl_field_id, name, field_key, data_type, model,
			placeholder, options, position, custom_field_group_id)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 ON CONFLICT (ghl_field_id) DO UPDATE SET
			name=EXCLUDED.name, field_key=EXCLUDED.field_key,
			data_type=EXCLUDED.data_type, model=EXCLUDED.model,
			placeholder=EXCLUDED.placeholder, options=EXCLUDED.options,
			position=EXCLUDED.position,
			custom_field_group_id=EXCLUDED.custom_field_group_id`,
		f.GHLFieldID, f.Name, f.FieldKey, f.DataType, f.Model,
		f.Placeholder, f.Options, f.Position, f.GroupID)
	return err
}

func (r *CustomFieldRepository) GetByKey(ctx context.Context, fieldKey string) (*models.CustomField, error) {
	var f models.CustomField
	err := r.DB.QueryRow(ctx,
		`SELECT id, ghl_field_id, name, field_key, data_type, model,
			placeholder, options, position, custom_field_group_id
		 FROM custom_fields WHERE field_key=$1`, fieldKey).Scan(
		&f.ID, &f.GHLFieldID, &f.Name, &f.FieldKey, &f.DataType, &f.Model,
		&f.Placeholder, &f.Options, &f.Position, &f.GroupID)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *CustomFieldRepository) ListByModel(ctx context.Context, model string) ([]*models.CustomField, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, ghl_field_id, name, field_key, data_type, model,
			placeholder, options, position, custom_field_group_id
		 FROM custom_fields WHERE model=$1 ORDER BY position, field_key`, model)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fields []*models.CustomField
	for rows.Next() {
		var f models.CustomField
		if err := rows.Scan(&f.ID, &f.GHLFieldID, &f.Name, &f.FieldKey, &f.DataType, &f.Model,
			&f.Placeholder, &f.Options, &f.Position, &f.GroupID); err != nil {
			return nil, err
		}
		fields = append(fields, &f)
	}
	return fields, rows.Err()
}

// SaveDropdownOptions refreshes the cached option list for a dropdown
// field. Options are stored as JSONB.
func (r *CustomFieldRepository) SaveDropdownOptions(ctx context.Context, fieldKey string, options []string) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO dropdown_cache(field_key, options, last_synced)
		 VALUES($1,$2,CURRENT_TIMESTAMP)
		 ON CONFLICT (field_key) DO UPDATE SET
			options=EXCLUDED.options, last_synced=CURRENT_TIMESTAMP`,
		fieldKey, options)
	return err
}

func (r *CustomFieldRepository) GetDropdownOptions(ctx context.Context, fieldKey string) (*models.DropdownCache, error) {
	var c models.DropdownCache
	err := r.DB.QueryRow(ctx,
		`SELECT id, field_key, options, last_synced FROM dropdown_cache WHERE field_key=$1`,
		fieldKey).Scan(&c.ID, &c.FieldKey, &c.Options, &c.LastSynced)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
