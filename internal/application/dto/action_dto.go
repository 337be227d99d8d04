package dto

import "time"

// ActionLogResponse entrada del historial de acciones.
type ActionLogResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Username    string    `json:"username,omitempty"`
	ActionType  string    `json:"action_type"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// ActionLogListResponse historial paginado.
type ActionLogListResponse struct {
	Items []ActionLogResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
