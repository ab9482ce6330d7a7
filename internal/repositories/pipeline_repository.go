package repositories

import (
	"context"

	"tripbuilder/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PipelineRepository struct {
	DB *pgxpool.Pool
}

func NewPipelineRepository(db *pgxpool.Pool) *PipelineRepository {
	return &PipelineRepository{DB: db}
}

// Upsert replaces the pipeline and its stage set with what GHL
// currently reports. Stages removed in the CRM are removed here too.
func (r *PipelineRepository) Upsert(ctx context.Context, p *models.Pipeline) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO pipelines(id, name) VALUES($1,$2)
		 ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name`,
		p.ID, p.Name)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `DELETE FROM pipeline_stages WHERE pipeline_id=$1`, p.ID)
	if err != nil {
		return err
	}
	for i, s := range p.Stages {
		_, err = tx.Exec(ctx,
			`INSERT INTO pipeline_stages(id, name, position, pipeline_id) VALUES($1,$2,$3,$4)`,
			s.ID, s.Name, i, p.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PipelineRepository) Get(ctx context.Context, id string) (*models.Pipeline, error) {
	var p models.Pipeline
	err := r.DB.QueryRow(ctx,
		`SELECT id, name FROM pipelines WHERE id=$1`, id).Scan(&p.ID, &p.Name)
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx,
		`SELECT id, name, position, pipeline_id FROM pipeline_stages
		 WHERE pipeline_id=$1 ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var s models.PipelineStage
		if err := rows.Scan(&s.ID, &s.Name, &s.Position, &s.PipelineID); err != nil {
			return nil, err
		}
		p.Stages = append(p.Stages, &s)
	}
	return &p, rows.Err()
}

func (r *PipelineRepository) List(ctx context.Context) ([]*models.Pipeline, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, name FROM pipelines ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pipelines []*models.Pipeline
	for rows.Next() {
		var p models.Pipeline
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		pipelines = append(pipelines, &p)
	}
	return pipelines, rows.Err()
}
