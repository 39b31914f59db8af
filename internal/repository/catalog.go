package repository

import (
	"context"
	"fmt"

	"catalog/relations/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const schema = `
CREATE TABLE IF NOT EXISTS families (
	seed       TEXT PRIMARY KEY,
	parent     TEXT NOT NULL,
	variations TEXT[] NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS items (
	asin       TEXT PRIMARY KEY,
	parent     TEXT NOT NULL,
	title      TEXT NOT NULL DEFAULT '',
	list_price NUMERIC(12, 2),
	attributes JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS item_images (
	asin   TEXT NOT NULL REFERENCES items (asin) ON DELETE CASCADE,
	size   TEXT NOT NULL,
	url    TEXT NOT NULL,
	height TEXT NOT NULL,
	width  TEXT NOT NULL,
	PRIMARY KEY (asin, size)
);

CREATE TABLE IF NOT EXISTS item_offers (
	asin            TEXT NOT NULL REFERENCES items (asin) ON DELETE CASCADE,
	position        INT NOT NULL,
	source          TEXT NOT NULL,
	condition       TEXT NOT NULL,
	price           NUMERIC(12, 2),
	price_formatted TEXT NOT NULL,
	prime_eligible  BOOLEAN NOT NULL,
	availability    TEXT NOT NULL,
	PRIMARY KEY (asin, position)
);`

type CatalogRepository interface {
	EnsureSchema(ctx context.Context) error
	SaveFamily(ctx context.Context, family domain.Family) error
	SaveItemDetails(ctx context.Context, details *domain.ItemDetails) error
}

type catalogRepository struct {
	db *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) CatalogRepository {
	return &catalogRepository{
		db: db,
	}
}

func (r *catalogRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (r *catalogRepository) SaveFamily(ctx context.Context, family domain.Family) error {
	query := `
	INSERT INTO families (seed, parent, variations)
	VALUES ($1, $2, $3)
	ON CONFLICT (seed)
	DO UPDATE SET parent = $2, variations = $3, updated_at = now()`

	_, err := r.db.Exec(ctx, query, family.Seed.String(), family.Parent.String(), asinStrings(family.Variations))
	if err != nil {
		return fmt.Errorf("failed to save family of %s: %w", family.Seed, err)
	}
	return nil
}

// SaveItemDetails upserts the item and replaces its images and offers in one transaction.
func (r *catalogRepository) SaveItemDetails(ctx context.Context, details *domain.ItemDetails) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
		INSERT INTO items (asin, parent, title, list_price, attributes)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (asin)
		DO UPDATE SET parent = $2, title = $3, list_price = $4, attributes = $5, updated_at = now()`,
			details.ASIN.String(),
			details.Parent.String(),
			details.Attributes.Title,
			minorUnits(details.Attributes.ListPriceAmount),
			details.Attributes,
		)
		if err != nil {
			return fmt.Errorf("upsert item: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM item_images WHERE asin = $1`, details.ASIN.String()); err != nil {
			return fmt.Errorf("clear images: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM item_offers WHERE asin = $1`, details.ASIN.String()); err != nil {
			return fmt.Errorf("clear offers: %w", err)
		}

		batch := &pgx.Batch{}
		for _, size := range domain.ImageSizes {
			image, ok := details.Images[size]
			if !ok {
				continue
			}
			batch.Queue(`INSERT INTO item_images (asin, size, url, height, width) VALUES ($1, $2, $3, $4, $5)`,
				details.ASIN.String(), string(size), image.URL, image.Height, image.Width)
		}
		for i, offer := range details.Offers {
			batch.Queue(`
			INSERT INTO item_offers (asin, position, source, condition, price, price_formatted, prime_eligible, availability)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				details.ASIN.String(), i, string(offer.Source), offer.Condition, minorUnits(offer.PriceAmount),
				offer.PriceFormatted, offer.PrimeEligible, offer.Availability)
		}
		if batch.Len() == 0 {
			return nil
		}

		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert images and offers: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save item details of %s: %w", details.ASIN, err)
	}
	return nil
}

// minorUnits converts a reported amount to a nullable numeric; unparsable amounts become NULL.
func minorUnits(amount string) decimal.NullDecimal {
	d, ok := domain.MinorUnits(amount)
	return decimal.NullDecimal{Decimal: d, Valid: ok}
}

func asinStrings(ids []domain.ASIN) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
