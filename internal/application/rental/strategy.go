package rental

import (
	"fmt"
	"strings"
	"time"
)

// Strategy forma de garantizar un único alquiler abierto por ítem.
type Strategy string

const (
	// StrategyConstraint: índice único parcial rental(inventory_id) WHERE return_date IS NULL;
	// la violación al insertar se traduce en conflicto. No necesita aislamiento estricto.
	StrategyConstraint Strategy = "constraint"
	// StrategySerializable: contar + insertar dentro de una transacción SERIALIZABLE,
	// reintentando los abortos por serialización.
	StrategySerializable Strategy = "serializable"
)

// ParseStrategy acepta "constraint" o "serializable" (vacío = constraint).
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyConstraint:
		return StrategyConstraint, nil
	case StrategySerializable:
		return StrategySerializable, nil
	}
	return "", fmt.Errorf("estrategia de alquiler desconocida: %q", s)
}

// RequiresOpenRentalIndex indica si el esquema debe declarar el índice único parcial.
func (s Strategy) RequiresOpenRentalIndex() bool {
	return s != StrategySerializable
}

// Config parámetros del motor de asignación.
type Config struct {
	Strategy     Strategy
	MaxAttempts  int           // intentos totales ante fallos de serialización (mínimo 1)
	RetryBackoff time.Duration // base del backoff exponencial con jitter; 0 = sin espera
}

// Límites del reintento: más intentos solo alargan la cola sobre la misma fila.
const (
	MaxAttemptsLimit = 20
	MaxRetryBackoff  = 2 * time.Second
)

// BackoffDelay espera base*2^(attempt-1), acotada a MaxRetryBackoff. Sin jitter.
func BackoffDelay(base time.Duration, attempt int) time.Duration {
	if base <= 0 {
		return 0
	}
	if base >= MaxRetryBackoff {
		return MaxRetryBackoff
	}
	d := base
	for i := 1; i < attempt; i++ {
		if d >= MaxRetryBackoff/2 {
			return MaxRetryBackoff
		}
		d *= 2
	}
	return d
}

// DefaultConfig valores por defecto.
func DefaultConfig() Config {
	return Config{
		Strategy:     StrategyConstraint,
		MaxAttempts:  5,
		RetryBackoff: 10 * time.Millisecond,
	}
}
