package repositories

import (
	"context"

	"tripbuilder/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SyncLogRepository struct {
	DB *pgxpool.Pool
}

func NewSyncLogRepository(db *pgxpool.Pool) *SyncLogRepository {
	return &SyncLogRepository{DB: db}
}

// Start opens a sync log entry in the in_progress state and returns
// its id for the later Finish call.
func (r *SyncLogRepository) Start(ctx context.Context, syncType string) (int, error) {
	var id int
	err := r.DB.QueryRow(ctx,
		`INSERT INTO sync_logs(sync_type, status) VALUES($1,$2) RETURNING id`,
		syncType, models.SyncStatusInProgress).Scan(&id)
	return id, err
}

func (r *SyncLogRepository) Finish(ctx context.Context, id int, status string, recordsSynced int, errs []string) error {
	if errs == nil {
		errs = []string{}
	}
	_, err := r.DB.Exec(ctx,
		`UPDATE sync_logs SET status=$1, records_synced=$2, errors=$3,
			completed_at=CURRENT_TIMESTAMP WHERE id=$4`,
		status, recordsSynced, errs, id)
	return err
}

func (r *SyncLogRepository) List(ctx context.Context, limit int) ([]*models.SyncLog, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, sync_type, status, records_synced, errors, started_at, completed_at
		 FROM sync_logs ORDER BY started_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.SyncLog
	for rows.Next() {
		var l models.SyncLog
		if err := rows.Scan(&l.ID, &l.SyncType, &l.Status, &l.RecordsSynced, &l.Errors,
			&l.StartedAt, &l.CompletedAt); err != nil {
			return nil, err
		}
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}
