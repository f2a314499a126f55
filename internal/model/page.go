package model

// Page is a limit/offset window shared by the list operations.
type Page struct {
	Limit  int
	Offset int
}
