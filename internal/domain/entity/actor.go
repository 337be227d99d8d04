package entity

// Actor identifica al usuario autenticado que origina una llamada al núcleo.
// Se pasa explícitamente en cada operación; UserID vacío significa anónimo.
type Actor struct {
	UserID string
}

// Anonymous es el actor sin sesión.
var Anonymous = Actor{}

// AsUser construye un actor autenticado.
func AsUser(userID string) Actor { return Actor{UserID: userID} }

// Authenticated indica si hay un usuario detrás del actor.
func (a Actor) Authenticated() bool { return a.UserID != "" }
