package types

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: cache clear failed
	Error string `json:"error" example:"cache clear failed"`
	// HTTP status code.
	// example: 500
	Code int `json:"code" example:"500"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Overall daemon state (loading, ready, error).
	// example: ready
	State string `json:"state" example:"ready"`
	// Uptime of the daemon in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
	// Model memory accounting and reshaping counters.
	Memory MemoryStats `json:"memory"`
	// Cache tier counters and sizes.
	Cache CacheStats `json:"cache"`
	// Stream session counters.
	Streams StreamStats `json:"streams"`
}
