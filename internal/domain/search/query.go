// Package search convierte una consulta libre en una lista de términos.
// Cada término es un predicado: igualdad exacta sobre el id numérico o coincidencia
// de subcadena, sin distinguir mayúsculas, sobre un conjunto cerrado de campos.
package search

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// Kind entidad sobre la que se busca.
type Kind string

const (
	KindFilm     Kind = "film"
	KindCustomer Kind = "customer"
)

// Valid indica si k es un tipo de búsqueda conocido.
func (k Kind) Valid() bool {
	return k == KindFilm || k == KindCustomer
}

// Term predicado de un token. Si IsID es true solo aplica la igualdad sobre ID;
// si no, Pattern es el token ya normalizado y escapado para LIKE.
type Term struct {
	IsID    bool
	ID      int64
	Token   string // token normalizado (sin escapar)
	Pattern string // "%token%" con comodines escapados, para LIKE ... ESCAPE '\'
}

// Criteria consulta completa: AND de Terms intersectado con la pertenencia a Stores.
type Criteria struct {
	Kind     Kind
	Terms    []Term
	StoreIDs []int64
	Limit    int
}

// Empty indica que la consulta no puede devolver filas (sin términos o sin tiendas).
func (c Criteria) Empty() bool {
	return len(c.Terms) == 0 || len(c.StoreIDs) == 0
}

// LikeEscape carácter de escape usado en los patrones LIKE.
const LikeEscape = `\`

var likeReplacer = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Fold aplica el plegado de mayúsculas de Unicode (CaseFolding.txt), sin reglas de idioma
// ni dependencia de la posición: "Σ" y "ς" pliegan a "σ" en cualquier parte de la palabra.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// Parse divide query por espacios. Un token que parsea como entero de 32 bits es
// un filtro exacto de id; el resto son subcadenas. Una consulta vacía no produce términos.
func Parse(query string) []Term {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return nil
	}
	terms := make([]Term, 0, len(fields))
	for _, f := range fields {
		if id, err := strconv.ParseInt(f, 10, 32); err == nil {
			terms = append(terms, Term{IsID: true, ID: id, Token: f})
			continue
		}
		tok := Fold(f)
		terms = append(terms, Term{
			Token:   tok,
			Pattern: "%" + likeReplacer.Replace(tok) + "%",
		})
	}
	return terms
}
