package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Videoclub-api/internal/application/dto"
)

// allocator lo implementa *rental.AllocationEngine.
type allocator interface {
	Allocate(ctx context.Context, inventoryID, customerID, staffID int64) (*dto.RentalRecord, error)
}

// returner lo implementa *rental.ReturnUseCase.
type returner interface {
	Return(ctx context.Context, rentalID int64) (*dto.RentalRecord, error)
}

// RentalHandler maneja altas y devoluciones de alquileres (protegido).
type RentalHandler struct {
	alloc allocator
	ret   returner
}

// NewRentalHandler construye el handler.
func NewRentalHandler(alloc allocator, ret returner) *RentalHandler {
	return &RentalHandler{alloc: alloc, ret: ret}
}

// Create godoc
// @Summary      Registrar alquiler
// @Tags         rentals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRentalRequest  true  "inventory_id, customer_id"
// @Success      201   {object}  dto.RentalRecord
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/rentals [post]
func (h *RentalHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRentalRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	rec, err := h.alloc.Allocate(c.UserContext(), in.InventoryID, in.CustomerID, GetStaffID(c))
	if err != nil {
		return writeError(c, err, "ítem, cliente o empleado no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

// Return godoc
// @Summary      Registrar devolución
// @Tags         rentals
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "rental_id"
// @Success      200  {object}  dto.RentalRecord
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/rentals/{id}/return [put]
func (h *RentalHandler) Return(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	rec, err := h.ret.Return(c.UserContext(), int64(id))
	if err != nil {
		return writeError(c, err, "alquiler no encontrado")
	}
	return c.JSON(rec)
}
