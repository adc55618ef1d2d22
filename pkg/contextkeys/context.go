package contextkeys

// Custom key type to avoid collisions with other context users.
type contextKey string

// DBContextKey is the key under which *gorm.DB travels through a request
// context (either the shared pool or a test transaction).
const DBContextKey = contextKey("db")
