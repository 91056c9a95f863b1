package domain

// User represents a registered account. IDs are application-generated
// UUID strings, not store-native identifiers. The password hash is never
// serialized in API responses.
type User struct {
	ID       string `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Email    string `json:"email" db:"email"`
	Password string `json:"-" db:"password_hash"`
}
