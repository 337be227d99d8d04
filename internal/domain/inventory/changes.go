package inventory

import (
	"fmt"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// ProductChanges describe los campos auditados (nombre, cantidad, precio) que difieren
// entre before y after. Los campos sin cambios no aparecen.
func ProductChanges(before, after *entity.Product) []string {
	var changes []string
	if before.Name != after.Name {
		changes = append(changes, fmt.Sprintf("nombre de '%s' a '%s'", before.Name, after.Name))
	}
	if before.Quantity != after.Quantity {
		changes = append(changes, fmt.Sprintf("cantidad de %d a %d", before.Quantity, after.Quantity))
	}
	if !before.Price.Equal(after.Price) {
		changes = append(changes, fmt.Sprintf("precio de %s a %s", before.Price.String(), after.Price.String()))
	}
	return changes
}
