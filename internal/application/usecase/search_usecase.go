package usecase

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/jhoicas/Videoclub-api/internal/application/dto"
	"github.com/jhoicas/Videoclub-api/internal/domain"
	"github.com/jhoicas/Videoclub-api/internal/domain/entity"
	"github.com/jhoicas/Videoclub-api/internal/domain/repository"
	"github.com/jhoicas/Videoclub-api/internal/domain/search"
)

// DefaultSearchLimit máximo de filas por búsqueda si no se configura otro.
const DefaultSearchLimit = 100

// SearchObserver recibe la duración y el tamaño de cada búsqueda (métricas).
type SearchObserver interface {
	ObserveSearch(kind string, results int, elapsed time.Duration)
}

type nopSearchObserver struct{}

func (nopSearchObserver) ObserveSearch(string, int, time.Duration) {}

// SearchUseCase búsqueda por tokens acotada a tiendas y consultas puntuales de solo lectura.
// Nunca abre transacciones de escritura: puede correr en paralelo con los alquileres.
type SearchUseCase struct {
	searchRepo   repository.SearchRepository
	storeRepo    repository.StoreRepository
	customerRepo repository.CustomerRepository
	staffRepo    repository.StaffRepository
	limit        int
	observer     SearchObserver
}

// NewSearchUseCase construye el caso de uso. limit <= 0 usa DefaultSearchLimit.
func NewSearchUseCase(
	searchRepo repository.SearchRepository,
	storeRepo repository.StoreRepository,
	customerRepo repository.CustomerRepository,
	staffRepo repository.StaffRepository,
	limit int,
) *SearchUseCase {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	return &SearchUseCase{
		searchRepo:   searchRepo,
		storeRepo:    storeRepo,
		customerRepo: customerRepo,
		staffRepo:    staffRepo,
		limit:        limit,
		observer:     nopSearchObserver{},
	}
}

// WithObserver registra el observador de métricas.
func (uc *SearchUseCase) WithObserver(o SearchObserver) *SearchUseCase {
	if o != nil {
		uc.observer = o
	}
	return uc
}

// StoresManagedBy devuelve las tiendas que gestiona staffID (vacío si ninguna).
func (uc *SearchUseCase) StoresManagedBy(ctx context.Context, staffID int64) ([]int64, error) {
	if staffID <= 0 {
		return []int64{}, nil
	}
	ids, err := uc.storeRepo.ListManagedBy(ctx, staffID)
	if err != nil {
		return nil, domain.NewError("search.stores_managed_by", err)
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

// Search ejecuta la búsqueda del tipo indicado. Consulta vacía o alcance vacío → resultado vacío
// sin tocar la BD.
func (uc *SearchUseCase) Search(ctx context.Context, query string, scope []int64, kind search.Kind) (*dto.SearchResponse, error) {
	resp := &dto.SearchResponse{Kind: string(kind), Query: query, StoreIDs: normalizeScope(scope)}
	switch kind {
	case search.KindFilm:
		films, err := uc.SearchFilms(ctx, query, scope)
		if err != nil {
			return nil, err
		}
		resp.Films = films
	case search.KindCustomer:
		customers, err := uc.SearchCustomers(ctx, query, scope)
		if err != nil {
			return nil, err
		}
		resp.Customers = customers
	default:
		return nil, fmt.Errorf("tipo de búsqueda %q: %w", kind, domain.ErrInvalidInput)
	}
	return resp, nil
}

// SearchFilms busca copias de películas (título o descripción; un número es el id de inventario).
func (uc *SearchUseCase) SearchFilms(ctx context.Context, query string, scope []int64) ([]dto.FilmInventoryResult, error) {
	start := time.Now()
	c := uc.criteria(search.KindFilm, query, scope)
	out := []dto.FilmInventoryResult{}
	if c.Empty() {
		uc.observer.ObserveSearch(string(search.KindFilm), 0, time.Since(start))
		return out, nil
	}
	rows, err := uc.searchRepo.SearchFilmInventory(ctx, c)
	if err != nil {
		return nil, domain.NewError("search.films", err)
	}
	for _, r := range rows {
		out = append(out, dto.FilmInventoryResult{InventoryID: r.InventoryID, Title: r.Title, Description: r.Description})
	}
	uc.observer.ObserveSearch(string(search.KindFilm), len(out), time.Since(start))
	return out, nil
}

// SearchCustomers busca clientes (nombre o apellido; un número es el id de cliente).
func (uc *SearchUseCase) SearchCustomers(ctx context.Context, query string, scope []int64) ([]dto.CustomerResult, error) {
	start := time.Now()
	c := uc.criteria(search.KindCustomer, query, scope)
	out := []dto.CustomerResult{}
	if c.Empty() {
		uc.observer.ObserveSearch(string(search.KindCustomer), 0, time.Since(start))
		return out, nil
	}
	rows, err := uc.searchRepo.SearchCustomers(ctx, c)
	if err != nil {
		return nil, domain.NewError("search.customers", err)
	}
	for _, r := range rows {
		out = append(out, dto.CustomerResult{ID: r.ID, FirstName: r.FirstName, LastName: r.LastName})
	}
	uc.observer.ObserveSearch(string(search.KindCustomer), len(out), time.Since(start))
	return out, nil
}

// FilmInventory detalle de una copia por id de inventario.
func (uc *SearchUseCase) FilmInventory(ctx context.Context, inventoryID int64) (*dto.FilmInventoryDetailResponse, error) {
	const op = "search.film_inventory"
	d, err := uc.searchRepo.GetFilmInventory(ctx, inventoryID)
	if err != nil {
		return nil, domain.NewError(op, err)
	}
	if d == nil {
		return nil, domain.NewError(op, fmt.Errorf("inventario %d: %w", inventoryID, domain.ErrNotFound))
	}
	return &dto.FilmInventoryDetailResponse{
		InventoryID: d.Item.ID,
		FilmID:      d.Film.ID,
		StoreID:     d.Item.StoreID,
		Title:       d.Film.Title,
		Description: d.Film.Description,
		RentalRate:  d.Film.RentalRate,
		Available:   d.Available,
	}, nil
}

// Customer proyección de un cliente por id.
func (uc *SearchUseCase) Customer(ctx context.Context, customerID int64) (*dto.CustomerResult, error) {
	const op = "search.customer"
	c, err := uc.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, domain.NewError(op, err)
	}
	if c == nil {
		return nil, domain.NewError(op, fmt.Errorf("cliente %d: %w", customerID, domain.ErrNotFound))
	}
	return &dto.CustomerResult{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName}, nil
}

// StaffByUsername resuelve un empleado por su username (único).
func (uc *SearchUseCase) StaffByUsername(ctx context.Context, username string) (*entity.Staff, error) {
	const op = "search.staff_by_username"
	s, err := uc.staffRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, domain.NewError(op, err)
	}
	if s == nil {
		return nil, domain.NewError(op, fmt.Errorf("empleado %q: %w", username, domain.ErrNotFound))
	}
	return s, nil
}

func (uc *SearchUseCase) criteria(kind search.Kind, query string, scope []int64) search.Criteria {
	return search.Criteria{
		Kind:     kind,
		Terms:    search.Parse(query),
		StoreIDs: normalizeScope(scope),
		Limit:    uc.limit,
	}
}

// normalizeScope ordena, quita duplicados e ids no válidos.
func normalizeScope(scope []int64) []int64 {
	out := make([]int64, 0, len(scope))
	for _, id := range scope {
		if id > 0 {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
