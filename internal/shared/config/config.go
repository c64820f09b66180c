package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for our application
type Config struct {
	// Server configuration
	Port           string
	GinMode        string
	APIVersion     string
	APIPrefix      string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int

	// Database configuration
	Database DatabaseConfig

	// Redis configuration
	Redis RedisConfig

	// JWT configuration
	JWT JWTConfig

	// Rate limiting
	RateLimit RateLimitConfig

	// Remote booking store
	Backend BackendConfig

	// Payment gateway
	Gateway GatewayConfig

	// Kafka notifications
	Kafka KafkaConfig

	// Booking-window policy
	Slots SlotConfig

	// Pricing policy
	Pricing PricingConfig

	// Refund credit policy
	Credits CreditConfig

	// Logging
	LogLevel string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	DSN      string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Addr     string

	// TTL values for different operations
	FeeSettingsTTL  time.Duration
	BookingDraftTTL time.Duration
	CacheTTL        time.Duration
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled         bool          `json:"enabled"`
	WindowDuration  time.Duration `json:"window_duration"`
	DefaultRequests int           `json:"default_requests"`
	PublicRequests  int           `json:"public_requests"`
	BookingRequests int           `json:"booking_requests"`
	PaymentRequests int           `json:"payment_requests"`
	HealthRequests  int           `json:"health_requests"`
	WhitelistedIPs  []string      `json:"whitelisted_ips"`
}

// BackendConfig holds the remote booking-store connection settings
type BackendConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// GatewayConfig holds payment gateway settings
type GatewayConfig struct {
	BaseURL     string
	APIKey      string
	Currency    string
	RedirectURL string
	WebhookURL  string
	Timeout     time.Duration
}

// KafkaConfig holds notification pipeline settings
type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
}

// SlotConfig holds booking-window validation policy
type SlotConfig struct {
	// StrictGrid rejects off-grid times instead of rounding them down
	StrictGrid bool
}

// PricingConfig holds discount and fee policy
type PricingConfig struct {
	BaseHourlyRate        string
	AllowPromoWithPackage bool
	PaynowFlatFee         string
	CardFeePercentage     string
}

// CreditConfig holds refund-credit policy
type CreditConfig struct {
	AutoApprove   bool
	ExpiryDays    int
	SweepInterval time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Server configuration
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		APIVersion:     getEnv("API_VERSION", "v1"),
		APIPrefix:      getEnv("API_PREFIX", "/api"),
		ReadTimeout:    getDurationEnv("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:   getDurationEnv("WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:    getDurationEnv("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes: getIntEnv("MAX_HEADER_BYTES", 1<<20), // 1 MB

		// Database configuration
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "deskhive_db"),
			User:     getEnv("DB_USER", "deskhive_user"),
			Password: getEnv("DB_PASSWORD", "deskhive_password"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},

		// Redis configuration
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),

			// TTL configurations with defaults
			FeeSettingsTTL:  getDurationEnv("REDIS_FEE_SETTINGS_TTL", 1*time.Minute),
			BookingDraftTTL: getDurationEnv("REDIS_BOOKING_DRAFT_TTL", 24*time.Hour),
			CacheTTL:        getDurationEnv("REDIS_CACHE_TTL", 1*time.Hour),
		},

		// JWT configuration
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-super-secret-jwt-key"),
		},

		// Rate limiting
		RateLimit: RateLimitConfig{
			Enabled:         getBoolEnv("RATE_LIMIT_ENABLED", true),
			WindowDuration:  getDurationEnv("RATE_LIMIT_WINDOW_DURATION", 60*time.Second),
			DefaultRequests: getIntEnv("RATE_LIMIT_DEFAULT_REQUESTS", 60),
			PublicRequests:  getIntEnv("RATE_LIMIT_PUBLIC_REQUESTS", 100),
			BookingRequests: getIntEnv("RATE_LIMIT_BOOKING_REQUESTS", 20),
			PaymentRequests: getIntEnv("RATE_LIMIT_PAYMENT_REQUESTS", 30),
			HealthRequests:  getIntEnv("RATE_LIMIT_HEALTH_REQUESTS", 120),
			WhitelistedIPs:  getStringSliceEnv("RATE_LIMIT_WHITELISTED_IPS", []string{}),
		},

		// Remote booking store
		Backend: BackendConfig{
			BaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:9000"),
			APIKey:  getEnv("BACKEND_API_KEY", ""),
			Timeout: getDurationEnv("BACKEND_TIMEOUT", 10*time.Second),
		},

		// Payment gateway
		Gateway: GatewayConfig{
			BaseURL:     getEnv("GATEWAY_BASE_URL", "https://api.gateway.test"),
			APIKey:      getEnv("GATEWAY_API_KEY", ""),
			Currency:    getEnv("GATEWAY_CURRENCY", "SGD"),
			RedirectURL: getEnv("GATEWAY_REDIRECT_URL", "http://localhost:8080/api/v1/payments/return"),
			WebhookURL:  getEnv("GATEWAY_WEBHOOK_URL", "http://localhost:8080/api/v1/payments/webhook"),
			Timeout:     getDurationEnv("GATEWAY_TIMEOUT", 15*time.Second),
		},

		// Kafka notifications
		Kafka: KafkaConfig{
			Enabled: getBoolEnv("KAFKA_ENABLED", false),
			Brokers: getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:   getEnv("KAFKA_NOTIFICATION_TOPIC", "deskhive-notifications"),
		},

		// Booking-window policy
		Slots: SlotConfig{
			StrictGrid: getBoolEnv("SLOT_STRICT_GRID", false),
		},

		// Pricing policy
		Pricing: PricingConfig{
			BaseHourlyRate:        getEnv("PRICING_BASE_HOURLY_RATE", "5.00"),
			AllowPromoWithPackage: getBoolEnv("PRICING_ALLOW_PROMO_WITH_PACKAGE", true),
			PaynowFlatFee:         getEnv("PRICING_PAYNOW_FLAT_FEE", "0.20"),
			CardFeePercentage:     getEnv("PRICING_CARD_FEE_PERCENTAGE", "5"),
		},

		// Refund credit policy
		Credits: CreditConfig{
			AutoApprove:   getBoolEnv("CREDITS_AUTO_APPROVE", true),
			ExpiryDays:    getIntEnv("CREDITS_EXPIRY_DAYS", 30),
			SweepInterval: getDurationEnv("CREDITS_SWEEP_INTERVAL", 1*time.Minute),
		},

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "debug"),
	}

	// Build composite values
	cfg.Database.DSN = buildDatabaseDSN(cfg.Database)
	cfg.Redis.Addr = cfg.Redis.Host + ":" + cfg.Redis.Port

	return cfg
}

// buildDatabaseDSN builds the database connection string
func buildDatabaseDSN(db DatabaseConfig) string {
	return "host=" + db.Host +
		" port=" + db.Port +
		" user=" + db.User +
		" password=" + db.Password +
		" dbname=" + db.Name +
		" sslmode=" + db.SSLMode
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getIntEnv gets an integer environment variable with a fallback value
func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

// getDurationEnv gets a duration environment variable with a fallback value
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}

// getBoolEnv gets a boolean environment variable with a fallback value
func getBoolEnv(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

// getStringSliceEnv gets a comma-separated string environment variable as a slice
func getStringSliceEnv(key string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		var result []string
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GinMode == "debug"
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

// GetAPIBasePath returns the API base path
func (c *Config) GetAPIBasePath() string {
	return c.APIPrefix + "/" + c.APIVersion
}
