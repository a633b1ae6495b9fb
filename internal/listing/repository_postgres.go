package listing

import (
	"database/sql"
	"fmt"
	"strings"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	listingColumns = `l.listing_id, l.title, l.description, l.price, l.category_id, l.user_id, l.location, l.status, l.created_at, l.updated_at`

	listingFrom = ` FROM listings l LEFT JOIN categories c ON l.category_id = c.category_id`

	getListingByIDQuery = `
		SELECT listing_id, title, description, price, category_id, user_id, location, status, created_at, updated_at
		FROM listings
		WHERE listing_id = $1
	`
	insertListingQuery = `
		INSERT INTO listings (title, description, price, category_id, user_id, location, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING listing_id
	`
)

// sortColumns whitelists caller-supplied sort fields; anything else falls
// back to creation time.
var sortColumns = map[string]string{
	"createdAt": "l.created_at",
	"updatedAt": "l.updated_at",
	"price":     "l.price",
	"title":     "l.title",
	"id":        "l.listing_id",
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(l Listing) (Listing, error) {
	var id int
	err := r.db.QueryRow(
		insertListingQuery,
		l.Title,
		l.Description,
		l.Price,
		l.CategoryID,
		l.UserID,
		l.Location,
		string(l.Status),
		l.CreatedAt,
		l.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return Listing{}, err
	}
	l.ID = id
	return l, nil
}

func (r *PostgresRepository) GetByID(id int) (Listing, error) {
	l, err := scanListing(r.db.QueryRow(getListingByIDQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Listing{}, ErrNotFound
		}
		return Listing{}, err
	}
	return l, nil
}

func (r *PostgresRepository) Search(ps []Predicate, pr PageRequest) ([]Listing, int, error) {
	where, args := buildWhere(ps)

	var total int
	countQuery := `SELECT COUNT(*)` + listingFrom + where
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	orderCol, ok := sortColumns[pr.SortBy]
	if !ok {
		orderCol = sortColumns[DefaultSortField]
	}
	dir := "ASC"
	if pr.SortDesc {
		dir = "DESC"
	}

	// listing_id as a tiebreaker keeps page boundaries stable
	pageQuery := fmt.Sprintf(
		`SELECT %s%s%s ORDER BY %s %s, l.listing_id %s LIMIT $%d OFFSET $%d`,
		listingColumns, listingFrom, where, orderCol, dir, dir, len(args)+1, len(args)+2,
	)
	args = append(args, pr.Size, pr.Offset())

	rows, err := r.db.Query(pageQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]Listing, 0)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			continue
		}
		out = append(out, l)
	}
	return out, total, nil
}

// buildWhere turns the predicate conjunction into a WHERE clause with
// positional arguments.
func buildWhere(ps []Predicate) (string, []any) {
	clauses := make([]string, 0, len(ps))
	args := make([]any, 0, len(ps))
	idx := 1

	for _, p := range ps {
		switch p.Field {
		case FieldKeyword:
			clauses = append(clauses, fmt.Sprintf("(l.title ILIKE $%d OR l.description ILIKE $%d)", idx, idx))
			args = append(args, "%"+p.Value.(string)+"%")
			idx++
		case FieldLocation:
			clauses = append(clauses, fmt.Sprintf("l.location ILIKE $%d", idx))
			args = append(args, "%"+p.Value.(string)+"%")
			idx++
		case FieldPrice:
			op := ">="
			if p.Op == OpLte {
				op = "<="
			}
			clauses = append(clauses, fmt.Sprintf("l.price %s $%d", op, idx))
			args = append(args, p.Value)
			idx++
		case FieldCategoryID:
			clauses = append(clauses, fmt.Sprintf("l.category_id = $%d", idx))
			args = append(args, p.Value)
			idx++
		case FieldCategoryName:
			clauses = append(clauses, fmt.Sprintf("c.category_name = $%d", idx))
			args = append(args, p.Value)
			idx++
		}
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(scanner rowScanner) (Listing, error) {
	l := Listing{}
	var (
		description sql.NullString
		location    sql.NullString
		status      sql.NullString
		createdAt   sql.NullString
		updatedAt   sql.NullString
	)
	if err := scanner.Scan(
		&l.ID,
		&l.Title,
		&description,
		&l.Price,
		&l.CategoryID,
		&l.UserID,
		&location,
		&status,
		&createdAt,
		&updatedAt,
	); err != nil {
		return Listing{}, err
	}
	if description.Valid {
		l.Description = description.String
	}
	if location.Valid {
		l.Location = location.String
	}
	if status.Valid {
		l.Status = Status(status.String)
	}
	if createdAt.Valid {
		l.CreatedAt = createdAt.String
	}
	if updatedAt.Valid {
		l.UpdatedAt = updatedAt.String
	}
	return l, nil
}
