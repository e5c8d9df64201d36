package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Videoclub-api/internal/domain/search"
)

func TestParse_ConsultaVaciaNoProduceTerminos(t *testing.T) {
	assert.Empty(t, search.Parse(""))
	assert.Empty(t, search.Parse("   \t\n "))
}

func TestParse_TokensNumericosSonFiltrosDeID(t *testing.T) {
	terms := search.Parse("  42  action ")
	require.Len(t, terms, 2)

	assert.True(t, terms[0].IsID)
	assert.Equal(t, int64(42), terms[0].ID)
	assert.Empty(t, terms[0].Pattern, "un id exacto no debe generar patrón LIKE")

	assert.False(t, terms[1].IsID)
	assert.Equal(t, "action", terms[1].Token)
	assert.Equal(t, "%action%", terms[1].Pattern)
}

func TestParse_SignosYDesbordeDeEntero(t *testing.T) {
	terms := search.Parse("-7 +3 99999999999")
	require.Len(t, terms, 3)

	assert.True(t, terms[0].IsID)
	assert.Equal(t, int64(-7), terms[0].ID)
	assert.True(t, terms[1].IsID)
	assert.Equal(t, int64(3), terms[1].ID)
	assert.False(t, terms[2].IsID, "fuera de rango de 32 bits se busca como texto")
}

func TestParse_NormalizaMayusculas(t *testing.T) {
	terms := search.Parse("ACTION Thriller")
	require.Len(t, terms, 2)
	assert.Equal(t, "action", terms[0].Token)
	assert.Equal(t, "thriller", terms[1].Token)
}

func TestParse_EscapaComodinesLike(t *testing.T) {
	terms := search.Parse(`100% a_b c\d`)
	require.Len(t, terms, 3)
	assert.Equal(t, `%100\%%`, terms[0].Pattern)
	assert.Equal(t, `%a\_b%`, terms[1].Pattern)
	assert.Equal(t, `%c\\d%`, terms[2].Pattern)
}

func TestFold_IndependienteDelLocale(t *testing.T) {
	assert.Equal(t, "ñandú", search.Fold("ÑANDÚ"))
	assert.Equal(t, search.Fold("Émile"), search.Fold("ÉMILE"))
	assert.Equal(t, search.Fold("straße"), search.Fold("STRASSE"))
}

func TestFold_SigmaFinalCoincideEnMedioDePalabra(t *testing.T) {
	terms := search.Parse("ΟΔΟΣ")
	require.Len(t, terms, 1)
	assert.Equal(t, "οδοσ", terms[0].Token)
	assert.Contains(t, search.Fold("ΟΔΟΣΠΟΛΗ"), terms[0].Token)
	assert.Equal(t, search.Fold("οδος"), search.Fold("ΟΔΟΣ"))
}

func TestCriteria_Empty(t *testing.T) {
	terms := search.Parse("alien")
	assert.True(t, search.Criteria{Terms: terms}.Empty(), "sin tiendas no hay alcance")
	assert.True(t, search.Criteria{StoreIDs: []int64{1}}.Empty(), "sin términos no hay resultados")
	assert.False(t, search.Criteria{Terms: terms, StoreIDs: []int64{1}}.Empty())
}

func TestKind_Valid(t *testing.T) {
	assert.True(t, search.KindFilm.Valid())
	assert.True(t, search.KindCustomer.Valid())
	assert.False(t, search.Kind("staff").Valid())
}
