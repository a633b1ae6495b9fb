package category

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	listCategoriesQuery    = `SELECT category_id, category_name FROM categories ORDER BY category_id`
	getCategoryByIDQuery   = `SELECT category_id, category_name FROM categories WHERE category_id = $1`
	getCategoryByNameQuery = `SELECT category_id, category_name FROM categories WHERE category_name = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]Category, error) {
	rows, err := r.db.Query(listCategoriesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Category, 0)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *PostgresRepository) GetByID(id int) (Category, error) {
	var c Category
	err := r.db.QueryRow(getCategoryByIDQuery, id).Scan(&c.ID, &c.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return Category{}, ErrNotFound
		}
		return Category{}, err
	}
	return c, nil
}

func (r *PostgresRepository) GetByName(name string) (Category, error) {
	var c Category
	err := r.db.QueryRow(getCategoryByNameQuery, name).Scan(&c.ID, &c.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return Category{}, ErrNotFound
		}
		return Category{}, err
	}
	return c, nil
}
