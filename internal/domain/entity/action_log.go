package entity

import "time"

// Tipos de acción registrados en el historial.
const (
	ActionAddProduct       = "add_product"
	ActionUpdateProduct    = "update_product"
	ActionDeleteProduct    = "delete_product"
	ActionAddIncoming      = "add_incoming"
	ActionAddOutgoing      = "add_outgoing"
	ActionUserRegistration = "user_registration"
	ActionUserLogin        = "user_login"
	ActionUserLogout       = "user_logout"
	ActionGenerateReport   = "generate_report"
)

// ActionLog es una entrada append-only del historial de acciones.
type ActionLog struct {
	ID          string
	UserID      string
	ActionType  string
	Description string
	Timestamp   time.Time

	Username string // solo lectura (join con users)
}
