package sqldb

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrAlreadySeeded la base ya tiene tiendas; SeedDemo no duplica datos.
var ErrAlreadySeeded = errors.New("la base ya contiene datos")

// Demo ids generados por SeedDemo, por nombre.
type Demo struct {
	Stores    map[string]int64
	Staff     map[string]int64
	Films     map[string]int64
	Inventory map[string][]int64 // título -> copias
	Customers map[string]int64   // "NOMBRE APELLIDO"
}

type demoFilm struct {
	title       string
	description *string
	rate        string
	copies      map[string]int // tienda -> copias
}

func ptr(s string) *string { return &s }

var demoFilms = []demoFilm{
	{"ACADEMY DINOSAUR", ptr("A Epic Drama of a Feminist And a Mad Scientist who must Battle a Teacher in The Canadian Rockies"), "0.99", map[string]int{"centro": 2, "norte": 1}},
	{"ACE GOLDFINGER", ptr("A Astounding Epistle of a Database Administrator And a Explorer who must Find a Car in Ancient China"), "4.99", map[string]int{"norte": 2}},
	{"ALIEN CENTER", ptr("A Brilliant Drama of a Cat And a Mad Scientist who must Battle a Feminist in A MySQL Convention"), "2.99", map[string]int{"centro": 1, "norte": 1}},
	{"HIGHWAY ACTION", ptr("A Thriller about a getaway driver"), "2.99", map[string]int{"centro": 1}},
	{"ACTION ROMANCE", ptr("A Comedy of manners"), "0.99", map[string]int{"centro": 1}},
	{"NIGHT THRILLER", ptr("A Mystery in the dark"), "4.99", map[string]int{"centro": 1}},
	{"100% PURE", ptr("A Documentary about 50_50 odds"), "0.99", map[string]int{"centro": 1}},
	{"ÉCOLE", nil, "0.99", map[string]int{"centro": 1}},
}

var demoCustomers = []struct{ first, last, store, email string }{
	{"MARY", "SMITH", "centro", "mary.smith@videoclub.local"},
	{"PATRICIA", "JOHNSON", "centro", ""},
	{"LINDA", "WILLIAMS", "norte", "linda.williams@videoclub.local"},
	{"JOSÉ", "ÁLVAREZ", "centro", ""},
	{"MARÍA", "SMITHSON", "norte", ""},
}

// SeedDemo inserta un catálogo pequeño: dos tiendas ("centro", "norte"), personal con distintas
// tiendas gestionadas ("mike": centro; "jon": norte; "ana": ambas; "pat": ninguna), películas,
// copias y clientes. Devuelve ErrAlreadySeeded si ya hay tiendas.
func SeedDemo(ctx context.Context, db *DB) (*Demo, error) {
	var n int
	if err := db.SQL.QueryRowContext(ctx, `SELECT COUNT(*) FROM store`).Scan(&n); err != nil {
		return nil, fmt.Errorf("contar tiendas: %w", err)
	}
	if n > 0 {
		return nil, ErrAlreadySeeded
	}

	tx, err := db.SQL.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	d := db.Dialect
	insert := func(query string, args ...any) (int64, error) {
		var id int64
		err := tx.QueryRowContext(ctx, d.Rebind(query), args...).Scan(&id)
		return id, err
	}

	demo := &Demo{
		Stores:    map[string]int64{},
		Staff:     map[string]int64{},
		Films:     map[string]int64{},
		Inventory: map[string][]int64{},
		Customers: map[string]int64{},
	}
	for _, name := range []string{"centro", "norte"} {
		if demo.Stores[name], err = insert(`INSERT INTO store (name) VALUES (?) RETURNING store_id`, name); err != nil {
			return nil, fmt.Errorf("insert store: %w", err)
		}
	}

	staff := []struct {
		username, first, last, store string
		manages                      []string
	}{
		{"mike", "Mike", "Hillyer", "centro", []string{"centro"}},
		{"jon", "Jon", "Stephens", "norte", []string{"norte"}},
		{"ana", "Ana", "Torres", "centro", []string{"centro", "norte"}},
		{"pat", "Pat", "Moreno", "norte", nil},
	}
	for _, s := range staff {
		id, err := insert(`INSERT INTO staff (first_name, last_name, username, store_id) VALUES (?, ?, ?, ?) RETURNING staff_id`,
			s.first, s.last, s.username, demo.Stores[s.store])
		if err != nil {
			return nil, fmt.Errorf("insert staff %s: %w", s.username, err)
		}
		demo.Staff[s.username] = id
		for _, store := range s.manages {
			if _, err := tx.ExecContext(ctx, d.Rebind(`INSERT INTO store_manager (store_id, staff_id) VALUES (?, ?)`),
				demo.Stores[store], id); err != nil {
				return nil, fmt.Errorf("insert store_manager: %w", err)
			}
		}
	}

	for _, f := range demoFilms {
		id, err := insert(`INSERT INTO film (title, description, rental_rate) VALUES (?, ?, ?) RETURNING film_id`,
			f.title, f.description, decimal.RequireFromString(f.rate))
		if err != nil {
			return nil, fmt.Errorf("insert film %s: %w", f.title, err)
		}
		demo.Films[f.title] = id
		for _, store := range []string{"centro", "norte"} {
			for range f.copies[store] {
				invID, err := insert(`INSERT INTO inventory (film_id, store_id) VALUES (?, ?) RETURNING inventory_id`,
					id, demo.Stores[store])
				if err != nil {
					return nil, fmt.Errorf("insert inventory: %w", err)
				}
				demo.Inventory[f.title] = append(demo.Inventory[f.title], invID)
			}
		}
	}

	for _, c := range demoCustomers {
		var email *string
		if c.email != "" {
			email = ptr(c.email)
		}
		id, err := insert(`INSERT INTO customer (store_id, first_name, last_name, email) VALUES (?, ?, ?, ?) RETURNING customer_id`,
			demo.Stores[c.store], c.first, c.last, email)
		if err != nil {
			return nil, fmt.Errorf("insert customer: %w", err)
		}
		demo.Customers[c.first+" "+c.last] = id
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit seed: %w", err)
	}
	return demo, nil
}
