package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jhoicas/Videoclub-api/internal/domain/repository"
	"github.com/jhoicas/Videoclub-api/internal/domain/search"
)

var _ repository.SearchRepository = (*SearchRepo)(nil)

// SearchRepo consultas de solo lectura; nunca abre transacciones.
type SearchRepo struct {
	q Querier
	d Dialect
}

// NewSearchRepository construye el adaptador.
func NewSearchRepository(q Querier, d Dialect) *SearchRepo {
	return &SearchRepo{q: q, d: d}
}

// projection columnas de una proyección de búsqueda y cómo filtrarlas.
type projection struct {
	selectFrom  string
	idColumn    string
	storeColumn string
	textColumns []string
	orderBy     string
}

var filmInventoryProjection = projection{
	selectFrom: `SELECT i.inventory_id, f.title, COALESCE(f.description, '')
		FROM inventory i JOIN film f ON f.film_id = i.film_id`,
	idColumn:    "i.inventory_id",
	storeColumn: "i.store_id",
	textColumns: []string{"f.title", "f.description"},
	orderBy:     "i.inventory_id",
}

var customerProjection = projection{
	selectFrom:  `SELECT c.customer_id, c.first_name, c.last_name FROM customer c`,
	idColumn:    "c.customer_id",
	storeColumn: "c.store_id",
	textColumns: []string{"c.first_name", "c.last_name"},
	orderBy:     "c.customer_id",
}

// build: tienda IN (...) AND cada término (id exacto, o LIKE sobre alguna columna de texto).
// Un NULL en una columna de texto nunca coincide.
func (d Dialect) build(p projection, c search.Criteria) (string, []any) {
	args := make([]any, 0, len(c.StoreIDs)+2*len(c.Terms)+1)
	marks := make([]string, len(c.StoreIDs))
	for i, id := range c.StoreIDs {
		marks[i] = "?"
		args = append(args, id)
	}
	where := []string{p.storeColumn + " IN (" + strings.Join(marks, ", ") + ")"}

	for _, t := range c.Terms {
		if t.IsID {
			where = append(where, p.idColumn+" = ?")
			args = append(args, t.ID)
			continue
		}
		ors := make([]string, len(p.textColumns))
		for i, col := range p.textColumns {
			ors[i] = d.Fold(col) + ` LIKE ? ESCAPE '` + search.LikeEscape + `'`
			args = append(args, t.Pattern)
		}
		where = append(where, "("+strings.Join(ors, " OR ")+")")
	}

	query := p.selectFrom + " WHERE " + strings.Join(where, " AND ") + " ORDER BY " + p.orderBy
	if c.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, c.Limit)
	}
	return d.Rebind(query), args
}

// SearchFilmInventory copias de películas en las tiendas del criterio.
func (r *SearchRepo) SearchFilmInventory(ctx context.Context, c search.Criteria) ([]repository.FilmInventoryRow, error) {
	out := []repository.FilmInventoryRow{}
	if c.Empty() {
		return out, nil
	}
	query, args := r.d.build(filmInventoryProjection, c)
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, r.d.wrap("search film inventory", err)
	}
	defer rows.Close()
	for rows.Next() {
		var row repository.FilmInventoryRow
		if err := rows.Scan(&row.InventoryID, &row.Title, &row.Description); err != nil {
			return nil, r.d.wrap("scan film inventory", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, r.d.wrap("search film inventory", err)
	}
	return out, nil
}

// SearchCustomers clientes de las tiendas del criterio.
func (r *SearchRepo) SearchCustomers(ctx context.Context, c search.Criteria) ([]repository.CustomerRow, error) {
	out := []repository.CustomerRow{}
	if c.Empty() {
		return out, nil
	}
	query, args := r.d.build(customerProjection, c)
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, r.d.wrap("search customers", err)
	}
	defer rows.Close()
	for rows.Next() {
		var row repository.CustomerRow
		if err := rows.Scan(&row.ID, &row.FirstName, &row.LastName); err != nil {
			return nil, r.d.wrap("scan customer", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, r.d.wrap("search customers", err)
	}
	return out, nil
}

// GetFilmInventory detalle de un ítem con su película y si está disponible (sin alquiler abierto).
func (r *SearchRepo) GetFilmInventory(ctx context.Context, inventoryID int64) (*repository.FilmInventoryDetail, error) {
	query := `
		SELECT i.inventory_id, i.film_id, i.store_id, f.title, COALESCE(f.description, ''), f.rental_rate,
			NOT EXISTS (SELECT 1 FROM rental r WHERE r.inventory_id = i.inventory_id AND r.return_date IS NULL)
		FROM inventory i JOIN film f ON f.film_id = i.film_id
		WHERE i.inventory_id = ?`
	var d repository.FilmInventoryDetail
	err := r.q.QueryRowContext(ctx, r.d.Rebind(query), inventoryID).Scan(
		&d.Item.ID, &d.Item.FilmID, &d.Item.StoreID,
		&d.Film.Title, &d.Film.Description, &d.Film.RentalRate, &d.Available,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, r.d.wrap("get film inventory", err)
	}
	d.Film.ID = d.Item.FilmID
	return &d, nil
}
