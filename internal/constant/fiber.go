package constant

const (
	ContextKeyRequestID      = "requestid"
	ContextKeyUser           = "user"
	ContextKeyIdempotencyKey = "idempotencyKey"
	ContextKeyTranslator     = "T"

	RequestIDHeader = "X-Activity-Request-ID"

	IdempotencyHeader    = "X-Activity-Idempotency"
	IdempotencyKeyHeader = "X-Activity-Idempotency-Key"

	IdempotencyKeyLengthLimit = 128
)
