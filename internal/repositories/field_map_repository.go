package repositories

import (
	"context"

	"tripbuilder/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type FieldMapRepository struct {
	DB *pgxpool.Pool
}

func NewFieldMapRepository(db *pgxpool.Pool) *FieldMapRepository {
	return &FieldMapRepository{DB: db}
}

// ReplaceAll swaps the persisted mapping set atomically. The registry
// rebuild produces the complete set each time, so a wipe and reinsert
// keeps deleted CRM fields from lingering.
func (r *FieldMapRepository) ReplaceAll(ctx context.Context, mappings []models.FieldMapping) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM field_mappings`); err != nil {
		return err
	}
	for _, m := range mappings {
		_, err := tx.Exec(ctx,
			`INSERT INTO field_mappings(ghl_field_id, field_key, table_name, column_name, value_type)
			 VALUES($1,$2,$3,$4,$5)`,
			m.GHLFieldID, m.FieldKey, m.TableName, m.ColumnName, m.ValueType)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *FieldMapRepository) ListAll(ctx context.Context) ([]models.FieldMapping, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, ghl_field_id, field_key, table_name, column_name, value_type
		 FROM field_mappings ORDER BY table_name, field_key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mappings []models.FieldMapping
	for rows.Next() {
		var m models.FieldMapping
		if err := rows.Scan(&m.ID, &m.GHLFieldID, &m.FieldKey, &m.TableName, &m.ColumnName, &m.ValueType); err != nil {
			return nil, err
		}
		mappings = append(mappings, m)
	}
	return mappings, rows.Err()
}
