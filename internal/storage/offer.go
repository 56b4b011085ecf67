package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/linemk/travel-insurance/internal/domain/models"
)

var ErrOfferNotFound = errors.New("offer not found")

// OfferStorage описывает методы для работы с таблицей insurance_offers.
type OfferStorage interface {
	ListOffers(ctx context.Context) ([]*models.Offer, error)
	GetOfferByID(ctx context.Context, id int64) (*models.Offer, error)
	CreateOffer(ctx context.Context, in models.OfferInput) (*models.Offer, error)
	// FilterOffers возвращает предложения, удовлетворяющие всем заданным параметрам фильтра.
	FilterOffers(ctx context.Context, f models.OfferFilter) ([]*models.Offer, error)
	UpdateOffer(ctx context.Context, id int64, in models.OfferInput) (*models.Offer, error)
	DeleteOffer(ctx context.Context, id int64) error
}

const offerColumns = "id, name, price, type, coverage_amount, currency, duration, description, features, created_at"

type offerRepository struct {
	db *sql.DB
}

func NewOfferRepository(db *sql.DB) OfferStorage {
	return &offerRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOffer(row rowScanner) (*models.Offer, error) {
	offer := &models.Offer{}
	var features pq.StringArray
	var duration, description sql.NullString
	if err := row.Scan(
		&offer.ID, &offer.Name, &offer.Price, &offer.Type, &offer.CoverageAmount,
		&offer.Currency, &duration, &description, &features, &offer.CreatedAt,
	); err != nil {
		return nil, err
	}
	if duration.Valid {
		offer.Duration = &duration.String
	}
	if description.Valid {
		offer.Description = &description.String
	}
	if features != nil {
		offer.Features = []string(features)
	}
	return offer, nil
}

func (r *offerRepository) queryOffers(ctx context.Context, query string, args ...any) ([]*models.Offer, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query offers: %w", err)
	}
	defer rows.Close()

	offers := make([]*models.Offer, 0)
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan offer: %w", err)
		}
		offers = append(offers, offer)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return offers, nil
}

func (r *offerRepository) ListOffers(ctx context.Context) ([]*models.Offer, error) {
	return r.queryOffers(ctx, "SELECT "+offerColumns+" FROM insurance_offers ORDER BY id")
}

func (r *offerRepository) GetOfferByID(ctx context.Context, id int64) (*models.Offer, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+offerColumns+" FROM insurance_offers WHERE id = $1", id)
	offer, err := scanOffer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOfferNotFound
		}
		return nil, err
	}
	return offer, nil
}

func (r *offerRepository) CreateOffer(ctx context.Context, in models.OfferInput) (*models.Offer, error) {
	query := `INSERT INTO insurance_offers (name, price, type, coverage_amount, currency, duration, description, features)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING ` + offerColumns
	row := r.db.QueryRowContext(ctx, query,
		in.Name, in.Price, in.Type, in.CoverageAmount, in.Currency, in.Duration, in.Description, pq.Array(in.Features),
	)
	offer, err := scanOffer(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}
	return offer, nil
}

// buildFilterQuery собирает WHERE по заданным полям фильтра.
// Порядок параметров: min_price, max_price, type, currency, min_coverage.
func buildFilterQuery(f models.OfferFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.MinPrice != nil {
		add("price >= $%d", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		add("price <= $%d", *f.MaxPrice)
	}
	if f.Type != nil {
		add("type = $%d", *f.Type)
	}
	if f.Currency != nil {
		add("currency = $%d", *f.Currency)
	}
	if f.MinCoverage != nil {
		add("coverage_amount >= $%d", *f.MinCoverage)
	}

	query := "SELECT " + offerColumns + " FROM insurance_offers"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	return query + " ORDER BY id", args
}

func (r *offerRepository) FilterOffers(ctx context.Context, f models.OfferFilter) ([]*models.Offer, error) {
	query, args := buildFilterQuery(f)
	return r.queryOffers(ctx, query, args...)
}

func (r *offerRepository) UpdateOffer(ctx context.Context, id int64, in models.OfferInput) (*models.Offer, error) {
	query := `UPDATE insurance_offers
	          SET name = $1, price = $2, type = $3, coverage_amount = $4, currency = $5,
	              duration = $6, description = $7, features = $8
	          WHERE id = $9
	          RETURNING ` + offerColumns
	row := r.db.QueryRowContext(ctx, query,
		in.Name, in.Price, in.Type, in.CoverageAmount, in.Currency, in.Duration, in.Description, pq.Array(in.Features), id,
	)
	offer, err := scanOffer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOfferNotFound
		}
		return nil, fmt.Errorf("failed to update offer: %w", err)
	}
	return offer, nil
}

func (r *offerRepository) DeleteOffer(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM insurance_offers WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete offer: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOfferNotFound
	}
	return nil
}
