package common

// Cookie names carrying the two credentials.
const (
	AccessTokenCookieName  = "accessToken"
	RefreshTokenCookieName = "refreshToken"
)

// EnvProduction is the Environment value that enables secure cookies.
const EnvProduction = "production"

// MemoryDSN selects the in-memory store instead of Postgres.
const MemoryDSN = "memory://"
