package repositories

import (
	"context"

	"tripbuilder/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const contactColumns = `id, firstname, lastname, email, phone, address, city, state,
	postal_code, country, company_name, website, tags, source, custom_fields,
	created_at, updated_at, last_synced_at`

type ContactRepository struct {
	DB *pgxpool.Pool
}

func NewContactRepository(db *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{DB: db}
}

func scanContact(row pgx.Row) (*models.Contact, error) {
	var c models.Contact
	err := row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Address, &c.City, &c.State,
		&c.PostalCode, &c.Country, &c.CompanyName, &c.Website, &c.Tags, &c.Source, &c.CustomFields,
		&c.CreatedAt, &c.UpdatedAt, &c.LastSyncedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Upsert inserts or rewrites the cached contact row. Pull sync calls
// this for every contact page, so the write has to be idempotent.
func (r *ContactRepository) Upsert(ctx context.Context, c *models.Contact) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO contacts(id, firstname, lastname, email, phone, address, city, state,
			postal_code, country, company_name, website, tags, source, custom_fields, last_synced_at)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,CURRENT_TIMESTAMP)
		 ON CONFLICT (id) DO UPDATE SET
			firstname=EXCLUDED.firstname, lastname=EXCLUDED.lastname,
			email=EXCLUDED.email, phone=EXCLUDED.phone,
			address=EXCLUDED.address, city=EXCLUDED.city, state=EXCLUDED.state,
			postal_code=EXCLUDED.postal_code, country=EXCLUDED.country,
			company_name=EXCLUDED.company_name, website=EXCLUDED.website,
			tags=EXCLUDED.tags, source=EXCLUDED.source, custom_fields=EXCLUDED.custom_fields,
			updated_at=CURRENT_TIMESTAMP, last_synced_at=CURRENT_TIMESTAMP`,
		c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.Address, c.City, c.State,
		c.PostalCode, c.Country, c.CompanyName, c.Website, c.Tags, c.Source, c.CustomFields)
	return err
}

func (r *ContactRepository) Get(ctx context.Context, id string) (*models.Contact, error) {
	return scanContact(r.DB.QueryRow(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE id=$1`, id))
}

func (r *ContactRepository) GetByEmail(ctx context.Context, email string) (*models.Contact, error) {
	return scanContact(r.DB.QueryRow(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE LOWER(email)=LOWER($1)`, email))
}

func (r *ContactRepository) List(ctx context.Context, limit, offset int) ([]*models.Contact, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+contactColumns+` FROM contacts ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []*models.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM contacts WHERE id=$1`, id)
	return err
}
