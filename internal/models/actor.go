package models

// Actor is the authenticated identity performing an operation. It is always
// passed explicitly; the engine never reads it from ambient state.
type Actor struct {
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

// Zero reports whether no authenticated identity is attached.
func (a Actor) Zero() bool {
	return a.Email == ""
}

// Envelope is the uniform result returned for every dispatched action.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
