package config

import (
	"paiges_bagels_server/structs"
	"sync"
	"time"
)

var (
	configInstance *structs.Config
	configOnce     sync.Once
)

func GetConfig() *structs.Config {
	configOnce.Do(func() {
		configInstance = &structs.Config{
			Server: &structs.ServerConfig{
				AppName:        getEnvAsString("APP_NAME", "PaigesBagels_no_env"),
				Environment:    getEnvAsString("APP_ENV", "development"),
				Port:           getEnvAsString("APP_PORT", ":8082"),
				FrontendURL:    getEnvAsString("FRONTEND_URL", "http://localhost:3000"),
				ReadTimeout:    getEnvAsTimeDuration("SERVER_READ_TIME_OUT", 15*time.Second),
				WriteTimeout:   getEnvAsTimeDuration("SERVER_WRITE_TIME_OUT", 15*time.Second),
				IdleTimeout:    getEnvAsTimeDuration("SERVER_IDLE_TIME_OUT", 60*time.Second),
				MaxHeaderBytes: getEnvAsInt("SERVER_MAX_HEADER_BYTES", 1<<20), // 1 MB
			},
			Cors: &structs.CorsConfig{
				AllowedOrigins:   getEnvAsSlice("CORS_ALLOW_ORIGINS", []string{"localhost", "http://localhost:3000"}),
				AllowedMethods:   getEnvAsSlice("CORS_ALLOW_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
				AllowedHeaders:   getEnvAsSlice("CORS_ALLOW_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization"}),
				AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", true),
				ExposedHeaders:   getEnvAsSlice("CORS_EXPOSED_HEADERS", []string{"Content-Length"}),
				MaxAge:           getEnvAsInt("CORS_MAX_AGE", 300),
			},
			Database: &structs.DatabaseConfig{
				Host:         getEnvAsString("DB_HOST", "localhost"),
				Port:         getEnvAsInt("DB_PORT", 5432),
				User:         getEnvAsString("DB_USER", "postgres"),
				Password:     getEnvAsString("DB_PASSWORD", "password"),
				Name:         getEnvAsString("DB_NAME", "paiges_bagels_db"),
				MaxConns:     getEnvAsInt("DB_MAX_CONNS", 10),
				MinConns:     getEnvAsInt("DB_MIN_CONNS", 2),
				MaxLifetime:  getEnvAsTimeDuration("DB_MAX_LIFETIME", 30*time.Minute),
				MaxIdleTime:  getEnvAsTimeDuration("DB_MAX_IDLE_TIME", 5*time.Minute),
				ReadTimeout:  getEnvAsTimeDuration("DB_READ_TIMEOUT", 5*time.Second),
				WriteTimeout: getEnvAsTimeDuration("DB_WRITE_TIMEOUT", 5*time.Second),
			},
			Cache: &structs.CacheConfig{
				Address:      getEnvAsString("REDIS_ADDRESS", "localhost:6379"),
				Username:     getEnvAsString("REDIS_USERNAME", ""),
				Password:     getEnvAsString("REDIS_PASSWORD", ""),
				DB:           getEnvAsInt("REDIS_DB", 0),
				PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
				MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 2),
				MaxIdleConns: getEnvAsInt("REDIS_MAX_IDLE_CONNS", 5),
				PoolTimeout:  getEnvAsTimeDuration("REDIS_POOL_TIMEOUT", 4*time.Second),
				IdleTimeout:  getEnvAsTimeDuration("REDIS_IDLE_TIMEOUT", 5*time.Minute),
				DialTimeout:  getEnvAsTimeDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
				ReadTimeout:  getEnvAsTimeDuration("REDIS_READ_TIMEOUT", 3*time.Second),
				WriteTimeout: getEnvAsTimeDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),

				MaxRetries:      getEnvAsInt("REDIS_MAX_RETRIES", 3),
				MinRetryBackoff: getEnvAsTimeDuration("REDIS_MIN_RETRY_BACKOFF", 8*time.Millisecond),
				MaxRetryBackoff: getEnvAsTimeDuration("REDIS_MAX_RETRY_BACKOFF", 512*time.Millisecond),

				CatalogTTL:      getEnvAsTimeDuration("CACHE_CATALOG_TTL", 10*time.Minute),
				PricingTTL:      getEnvAsTimeDuration("CACHE_PRICING_TTL", 5*time.Minute),
				WebhookDedupTTL: getEnvAsTimeDuration("CACHE_WEBHOOK_DEDUP_TTL", 48*time.Hour),
			},
			Auth: &structs.AuthConfig{
				AdminEmail:        getEnvAsString("AUTH_ADMIN_EMAIL", ""),
				AdminPasswordHash: getEnvAsString("AUTH_ADMIN_PASSWORD_HASH", ""),
				SessionSecret:     getEnvAsString("AUTH_SESSION_SECRET", "default_session_secret"),
				SessionExpiry:     getEnvAsTimeDuration("AUTH_SESSION_EXPIRY", 12*time.Hour),
			},
			Email: &structs.EmailConfig{
				ApiKey:       getEnvAsString("EMAIL_API_KEY", ""),
				From:         getEnvAsString("EMAIL_FROM", "Paige's Bagels <orders@paigesbagels.com>"),
				SupportEmail: getEnvAsString("EMAIL_SUPPORT", "paige@paigesbagels.com"),
				PickupAddr:   getEnvAsString("PICKUP_ADDRESS", "214 Maple Ave (side porch)"),
			},
			Payment: &structs.PaymentConfig{
				ProviderURL:        getEnvAsString("PAYMENT_PROVIDER_URL", "https://checkout.example.com"),
				ApiKey:             getEnvAsString("PAYMENT_API_KEY", ""),
				WebhookSecret:      getEnvAsString("PAYMENT_WEBHOOK_SECRET", ""),
				Timeout:            getEnvAsTimeDuration("PAYMENT_TIMEOUT", 10*time.Second),
				SignatureTolerance: getEnvAsTimeDuration("PAYMENT_SIGNATURE_TOLERANCE", 5*time.Minute),
				VenmoHandle:        getEnvAsString("VENMO_HANDLE", "@paiges-bagels"),
			},
			Order: &structs.OrderConfig{
				MinBagelsPerOrder: getEnvAsInt("ORDER_MIN_BAGELS", 1),
				MaxBagelsPerOrder: getEnvAsInt("ORDER_MAX_BAGELS", 13),

				RateLimitEnabled: getEnvAsBool("ORDER_RATE_LIMIT_ENABLED", true),
				RateLimit:        getEnvAsInt("ORDER_RATE_LIMIT", 10),
				RateLimitWindow:  getEnvAsTimeDuration("ORDER_RATE_LIMIT_WINDOW", time.Minute),
			},
		}
	})
	return configInstance
}

func GetLogLevel() string {
	if GetConfig().Server.Environment == "production" {
		return "info"
	}
	return "debug"
}

func IsProduction() bool {
	return GetConfig().Server.Environment == "production"
}
