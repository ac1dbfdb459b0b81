package inventory

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Unidades que asigna producción según el nombre del producto.
const (
	UnitLiters    = "liters"
	UnitKilograms = "kg"
)

// volumeKeywords marcan productos líquidos.
var volumeKeywords = []string{"milk", "lassi", "juice", "drink", "water", "whey", "oil"}

// NormalizeProductName limpia espacios y normaliza a NFC. El nombre es la clave de negocio del libro,
// así que dos grafías Unicode equivalentes deben caer en la misma entrada.
func NormalizeProductName(name string) string {
	return norm.NFC.String(strings.Join(strings.Fields(name), " "))
}

// UnitForProduct deduce la unidad de un producto terminado: volumen si el nombre contiene una
// palabra de líquido, masa en otro caso.
func UnitForProduct(productName string) string {
	folded := cases.Fold().String(productName)
	for _, kw := range volumeKeywords {
		if strings.Contains(folded, kw) {
			return UnitLiters
		}
	}
	return UnitKilograms
}
