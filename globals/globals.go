package globals

import (
	"context"
)

var (
	// JwtSecret is set from config in main before any route is served.
	JwtSecret []byte
)

// Context keys
type ContextKey string

const RoleKey ContextKey = "role"
const UserIDKey ContextKey = "userId"

var Ctx = context.Background()
