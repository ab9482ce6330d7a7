package repositories

import (
	"context"

	"tripbuilder/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type VendorRepository struct {
	DB *pgxpool.Pool
}

func NewVendorRepository(db *pgxpool.Pool) *VendorRepository {
	return &VendorRepository{DB: db}
}

func (r *VendorRepository) Create(ctx context.Context, v *models.TripVendor) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO trip_vendors(name, description) VALUES($1,$2)
		 RETURNING id, created_at`,
		v.Name, v.Description).Scan(&v.ID, &v.CreatedAt)
}

// UpsertByName inserts the vendor if the name is new. Vendor import
// from the GHL dropdown runs repeatedly, so name collisions are normal.
func (r *VendorRepository) UpsertByName(ctx context.Context, name string) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO trip_vendors(name) VALUES($1) ON CONFLICT (name) DO NOTHING`, name)
	return err
}

func (r *VendorRepository) Get(ctx context.Context, id int) (*models.TripVendor, error) {
	var v models.TripVendor
	err := r.DB.QueryRow(ctx,
		`SELECT id, name, description, created_at FROM trip_vendors WHERE id=$1`, id).Scan(
		&v.ID, &v.Name, &v.Description, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VendorRepository) GetByName(ctx context.Context, name string) (*models.TripVendor, error) {
	var v models.TripVendor
	err := r.DB.QueryRow(ctx,
		`SELECT id, name, description, created_at FROM trip_vendors WHERE LOWER(name)=LOWER($1)`,
		name).Scan(&v.ID, &v.Name, &v.Description, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VendorRepository) List(ctx context.Context) ([]*models.TripVendor, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, description, created_at FROM trip_vendors ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vendors []*models.TripVendor
	for rows.Next() {
		var v models.TripVendor
		if err := rows.Scan(&v.ID, &v.Name, &v.Description, &v.CreatedAt); err != nil {
			return nil, err
		}
		vendors = append(vendors, &v)
	}
	return vendors, rows.Err()
}

func (r *VendorRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM trip_vendors WHERE id=$1`, id)
	return err
}
