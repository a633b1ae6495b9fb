package image

import (
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	insertImageQuery = `
		INSERT INTO listing_images (listing_id, image_url, display_order)
		VALUES ($1, $2, (SELECT COALESCE(MAX(display_order), 0) + 1 FROM listing_images WHERE listing_id = $1))
		RETURNING image_id, display_order
	`
	listImagesByListingQuery = `
		SELECT image_id, listing_id, image_url, display_order
		FROM listing_images
		WHERE listing_id = $1
		ORDER BY display_order, image_id
	`
	listImagesByListingsQuery = `
		SELECT listing_id, image_url
		FROM listing_images
		WHERE listing_id = ANY($1::int[])
		ORDER BY listing_id, display_order, image_id
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(img Image) (Image, error) {
	err := r.db.QueryRow(insertImageQuery, img.ListingID, img.URL).
		Scan(&img.ID, &img.DisplayOrder)
	if err != nil {
		return Image{}, err
	}
	return img, nil
}

func (r *PostgresRepository) ListByListingID(listingID int) ([]Image, error) {
	rows, err := r.db.Query(listImagesByListingQuery, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Image, 0)
	for rows.Next() {
		var img Image
		var order sql.NullInt64
		if err := rows.Scan(&img.ID, &img.ListingID, &img.URL, &order); err != nil {
			continue
		}
		if order.Valid {
			img.DisplayOrder = int(order.Int64)
		}
		out = append(out, img)
	}
	return out, nil
}

func (r *PostgresRepository) ListByListingIDs(ids []int) (map[int][]string, error) {
	out := make(map[int][]string)
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(listImagesByListingsQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var listingID int
		var url string
		if err := rows.Scan(&listingID, &url); err != nil {
			continue
		}
		out[listingID] = append(out[listingID], url)
	}
	return out, nil
}
