package inventory

import (
	"fmt"
	"strings"
)

// FormatReference arma la referencia compartida de un lote: "<short_code>/<IN|OUT>/<firstID>".
func FormatReference(warehouseCode string, t MovementType, firstID int64) string {
	return fmt.Sprintf("%s/%s/%d", warehouseCode, t, firstID)
}

const (
	tagIn  = "/IN/"
	tagOut = "/OUT/"
)

// Clasificación por subcadenas de la referencia y los extremos. No existe columna de tipo:
// estas reglas deben coincidir con los predicados LIKE del repositorio.

// IsReceipt referencia con /IN/ y destino que no es una ubicación /IN/.
func IsReceipt(referenceID, to string) bool {
	return strings.Contains(referenceID, tagIn) && !strings.Contains(to, tagIn)
}

// IsDelivery referencia con /OUT/ y destino que no es una ubicación /IN/.
func IsDelivery(referenceID, to string) bool {
	return strings.Contains(referenceID, tagOut) && !strings.Contains(to, tagIn)
}

// IsAdjustment referencia /IN/ con origen /IN/ y destino /OUT/.
func IsAdjustment(referenceID, from, to string) bool {
	return strings.Contains(referenceID, tagIn) &&
		strings.Contains(from, tagIn) &&
		strings.Contains(to, tagOut)
}
