package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Videoclub-api/internal/application/dto"
	"github.com/jhoicas/Videoclub-api/internal/domain/search"
)

// searcher lo implementa *usecase.SearchUseCase.
type searcher interface {
	StoresManagedBy(ctx context.Context, staffID int64) ([]int64, error)
	Search(ctx context.Context, query string, scope []int64, kind search.Kind) (*dto.SearchResponse, error)
	FilmInventory(ctx context.Context, inventoryID int64) (*dto.FilmInventoryDetailResponse, error)
	Customer(ctx context.Context, customerID int64) (*dto.CustomerResult, error)
}

// SearchHandler búsquedas del formulario de alquiler, acotadas a las tiendas del empleado.
type SearchHandler struct {
	uc searcher
}

// NewSearchHandler construye el handler.
func NewSearchHandler(uc searcher) *SearchHandler {
	return &SearchHandler{uc: uc}
}

// SearchFilms godoc
// @Summary      Buscar copias de películas
// @Tags         rentals
// @Security     Bearer
// @Produce      json
// @Param        q    query  string  false  "términos (título/descripción) o id de inventario"
// @Success      200  {object}  dto.SearchResponse
// @Router       /api/rentals/films/search [get]
func (h *SearchHandler) SearchFilms(c *fiber.Ctx) error {
	return h.search(c, search.KindFilm)
}

// SearchCustomers godoc
// @Summary      Buscar clientes
// @Tags         rentals
// @Security     Bearer
// @Produce      json
// @Param        q    query  string  false  "términos (nombre/apellido) o id de cliente"
// @Success      200  {object}  dto.SearchResponse
// @Router       /api/rentals/customers/search [get]
func (h *SearchHandler) SearchCustomers(c *fiber.Ctx) error {
	return h.search(c, search.KindCustomer)
}

func (h *SearchHandler) search(c *fiber.Ctx, kind search.Kind) error {
	ctx := c.UserContext()
	scope, err := h.uc.StoresManagedBy(ctx, GetStaffID(c))
	if err != nil {
		return writeError(c, err, "")
	}
	resp, err := h.uc.Search(ctx, c.Query("q"), scope, kind)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(resp)
}

// FilmInventory godoc
// @Summary      Detalle de una copia
// @Tags         rentals
// @Security     Bearer
// @Produce      json
// @Param        inventoryId  path  int  true  "inventory_id"
// @Success      200  {object}  dto.FilmInventoryDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rentals/films/{inventoryId} [get]
func (h *SearchHandler) FilmInventory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("inventoryId")
	if err != nil {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	d, err := h.uc.FilmInventory(c.UserContext(), int64(id))
	if err != nil {
		return writeError(c, err, "copia no encontrada")
	}
	return c.JSON(d)
}

// Customer godoc
// @Summary      Cliente por id
// @Tags         rentals
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "customer_id"
// @Success      200  {object}  dto.CustomerResult
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rentals/customers/{id} [get]
func (h *SearchHandler) Customer(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	cust, err := h.uc.Customer(c.UserContext(), int64(id))
	if err != nil {
		return writeError(c, err, "cliente no encontrado")
	}
	return c.JSON(cust)
}

// ManagedStores godoc
// @Summary      Tiendas gestionadas por el empleado autenticado
// @Tags         stores
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ManagedStoresResponse
// @Router       /api/stores/managed [get]
func (h *SearchHandler) ManagedStores(c *fiber.Ctx) error {
	staffID := GetStaffID(c)
	ids, err := h.uc.StoresManagedBy(c.UserContext(), staffID)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(dto.ManagedStoresResponse{StaffID: staffID, StoreIDs: ids})
}
