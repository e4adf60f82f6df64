package structs

import "time"

type Config struct {
	Server   *ServerConfig
	Cors     *CorsConfig
	Database *DatabaseConfig
	Cache    *CacheConfig
	Auth     *AuthConfig
	Email    *EmailConfig
	Payment  *PaymentConfig
	Order    *OrderConfig
}

type ServerConfig struct {
	AppName        string        // Paiges Bagels
	Environment    string        // development, production
	Port           string        // :8082
	FrontendURL    string        // for payment redirect URLs
	ReadTimeout    time.Duration // in seconds
	WriteTimeout   time.Duration // in seconds
	IdleTimeout    time.Duration // in seconds
	MaxHeaderBytes int           // in bytes
}

type CorsConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	MaxConns     int
	MinConns     int
	MaxLifetime  time.Duration // in seconds
	MaxIdleTime  time.Duration // in seconds
	ReadTimeout  time.Duration // in seconds
	WriteTimeout time.Duration // in seconds
}

type CacheConfig struct {
	Address      string
	Username     string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	MaxIdleConns int
	PoolTimeout  time.Duration
	IdleTimeout  time.Duration
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	MaxRetries      int
	MinRetryBackoff time.Duration
	MaxRetryBackoff time.Duration

	CatalogTTL      time.Duration // bagel/add-on type lists
	PricingTTL      time.Duration // pricing tier sets
	WebhookDedupTTL time.Duration // processed provider event ids
}

type AuthConfig struct {
	// Single admin credential: one email, one argon2id hash. There is no
	// customer identity in this system.
	AdminEmail        string
	AdminPasswordHash string
	SessionSecret     string
	SessionExpiry     time.Duration
}

type EmailConfig struct {
	ApiKey       string
	From         string
	SupportEmail string
	PickupAddr   string // printed in confirmation emails
}

type PaymentConfig struct {
	ProviderURL   string // payment provider base URL
	ApiKey        string
	WebhookSecret string
	Timeout       time.Duration // per-call budget on provider requests
	// Tolerated clock skew on signed webhook timestamps
	SignatureTolerance time.Duration
	// Venmo handle shown to customers paying by Venmo note
	VenmoHandle string
}

type OrderConfig struct {
	// Allowed bagel totals per order. These have shifted over the shop's
	// history; keep them configuration, not law.
	MinBagelsPerOrder int
	MaxBagelsPerOrder int

	RateLimitEnabled bool
	RateLimit        int           // order creations per window per IP
	RateLimitWindow  time.Duration
}
