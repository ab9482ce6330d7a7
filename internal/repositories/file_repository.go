package repositories

import (
	"context"

	"tripbuilder/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

const fileColumns = `id, filename, s3_key, file_type, content_type, file_size,
	COALESCE(is_public, FALSE), opportunity_type, trip_id, passenger_id, uploaded_at, uploaded_by`

type FileRepository struct {
	DB *pgxpool.Pool
}

func NewFileRepository(db *pgxpool.Pool) *FileRepository {
	return &FileRepository{DB: db}
}

func (r *FileRepository) Create(ctx context.Context, f *models.File) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO files(filename, s3_key, file_type, content_type, file_size,
			is_public, opportunity_type, trip_id, passenger_id, uploaded_by)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		 RETURNING id, uploaded_at`,
		f.Filename, f.S3Key, f.FileType, f.ContentType, f.FileSize,
		f.IsPublic, f.OpportunityType, f.TripID, f.PassengerID, f.UploadedBy).Scan(
		&f.ID, &f.UploadedAt)
}

func (r *FileRepository) Get(ctx context.Context, id int) (*models.File, error) {
	var f models.File
	err := r.DB.QueryRow(ctx,
		`SELECT `+fileColumns+` FROM files WHERE id=$1`, id).Scan(
		&f.ID, &f.Filename, &f.S3Key, &f.FileType, &f.ContentType, &f.FileSize,
		&f.IsPublic, &f.OpportunityType, &f.TripID, &f.PassengerID, &f.UploadedAt, &f.UploadedBy)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FileRepository) ListByTrip(ctx context.Context, tripID int) ([]*models.File, error) {
	return r.list(ctx, `SELECT `+fileColumns+` FROM files WHERE trip_id=$1 ORDER BY uploaded_at DESC`, tripID)
}

func (r *FileRepository) ListByPassenger(ctx context.Context, passengerID string) ([]*models.File, error) {
	return r.list(ctx, `SELECT `+fileColumns+` FROM files WHERE passenger_id=$1 ORDER BY uploaded_at DESC`, passengerID)
}

func (r *FileRepository) list(ctx context.Context, query string, args ...any) ([]*models.File, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []*models.File
	for rows.Next() {
		var f models.File
		if err := rows.Scan(&f.ID, &f.Filename, &f.S3Key, &f.FileType, &f.ContentType, &f.FileSize,
			&f.IsPublic, &f.OpportunityType, &f.TripID, &f.PassengerID, &f.UploadedAt, &f.UploadedBy); err != nil {
			return nil, err
		}
		files = append(files, &f)
	}
	return files, rows.Err()
}

func (r *FileRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM files WHERE id=$1`, id)
	return err
}
