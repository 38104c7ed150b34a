// Package texto utilidades de normalización para búsquedas insensibles a
// tildes (catálogos en español: "Azúcar" debe matchear "azucar").
package texto

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var quitarDiacriticos = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalizar pasa a minúsculas y elimina diacríticos. Si la transformación
// falla (entrada no UTF-8 válida), devuelve la entrada en minúsculas.
func Normalizar(s string) string {
	out, _, err := transform.String(quitarDiacriticos, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}
