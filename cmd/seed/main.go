// Command seed aplica el esquema según RENTAL_STRATEGY, carga datos de demostración
// y muestra un token de desarrollo para el empleado "mike".
package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Videoclub-api/internal/application/rental"
	"github.com/jhoicas/Videoclub-api/internal/domain/entity"
	"github.com/jhoicas/Videoclub-api/internal/infrastructure/sqldb"
	"github.com/jhoicas/Videoclub-api/pkg/config"
	"github.com/jhoicas/Videoclub-api/pkg/jwt"
	"github.com/jhoicas/Videoclub-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	strategy, err := rental.ParseStrategy(cfg.Rental.Strategy)
	if err != nil {
		log.Fatal().Err(err).Msg("estrategia de alquiler")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := sqldb.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a la base de datos")
	}
	defer db.Close()

	if err := sqldb.EnsureSchema(ctx, db, strategy.RequiresOpenRentalIndex()); err != nil {
		log.Fatal().Err(err).Msg("esquema")
	}

	demo, err := sqldb.SeedDemo(ctx, db)
	switch {
	case errors.Is(err, sqldb.ErrAlreadySeeded):
		log.Info().Msg("datos de demo ya presentes, no se insertan de nuevo")
	case err != nil:
		log.Fatal().Err(err).Msg("seed")
	default:
		log.Info().
			Int("stores", len(demo.Stores)).
			Int("staff", len(demo.Staff)).
			Int("films", len(demo.Films)).
			Int("customers", len(demo.Customers)).
			Msg("datos de demo insertados")
	}

	staff, err := sqldb.NewStaffRepository(db.SQL, db.Dialect).GetByUsername(ctx, "mike")
	if err != nil || staff == nil {
		log.Fatal().Err(err).Msg("empleado mike no encontrado")
	}
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: no se genera token")
		return
	}
	token, err := jwt.Generate(cfg.JWT.Secret, staff.ID, staff.Username, entity.RoleStaff, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		log.Fatal().Err(err).Msg("generar token")
	}
	fmt.Println(token)
}
