package globals

import (
	"context"
)

var SessionSecret = []byte("your_secret_key") // overridden from config at boot

// Context keys
type ContextKey string

const SessionIDKey ContextKey = "sessionId"

var Ctx = context.Background()
