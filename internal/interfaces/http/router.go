package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Videoclub-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Allocator allocator
	Returner  returner
	Search    searcher
	JWTSecret string
}

// Router registra las rutas de la API. Todas requieren Bearer Token con rol staff.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleStaff))

	rentalHandler := NewRentalHandler(deps.Allocator, deps.Returner)
	searchHandler := NewSearchHandler(deps.Search)

	rentals := api.Group("/rentals")
	rentals.Post("/", rentalHandler.Create)
	rentals.Put("/:id/return", rentalHandler.Return)
	rentals.Get("/films/search", searchHandler.SearchFilms)
	rentals.Get("/films/:inventoryId", searchHandler.FilmInventory)
	rentals.Get("/customers/search", searchHandler.SearchCustomers)
	rentals.Get("/customers/:id", searchHandler.Customer)

	stores := api.Group("/stores")
	stores.Get("/managed", searchHandler.ManagedStores)
}
