package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all process-wide settings. It is built once at startup and
// never mutated afterwards.
type Config struct {
	// Service
	ServiceInterface      string
	ServicePublicURL      string
	ServiceMotd           string
	MaxItemsPerPage       int
	EnableRegistration    bool
	EnableLinkSharing     bool
	EnableTaskAttachments bool
	EnableTaskComments    bool
	EnableTOTP            bool
	EnableEmailReminders  bool
	EnableUserDeletion    bool
	EnablePublicTeams     bool
	EnableCaldav          bool
	ServiceTimezone       string

	// JWT
	JWTSecret  string
	JWTTTL     time.Duration
	JWTTTLLong time.Duration

	// Database
	DatabaseType     string
	DatabaseHost     string
	DatabasePort     string
	DatabaseUser     string
	DatabasePassword string
	DatabaseName     string
	DatabasePath     string

	// CORS
	CORSEnable  bool
	CORSOrigins []string
	CORSMaxAge  time.Duration

	// Rate limiting
	RateLimitEnabled               bool
	RateLimitNoAuthRoutesPerMinute int

	// Files
	FilesBasePath string
	FilesMaxSize  string

	// Logging
	LogEnabled bool
	LogLevel   string

	// Webhooks
	WebhooksEnabled bool

	GinMode string
}

// Load reads configuration from the environment. A .env file in the working
// directory is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServiceInterface:      getEnv("VIKUNJA_SERVICE_INTERFACE", ":3456"),
		ServicePublicURL:      getEnv("VIKUNJA_SERVICE_PUBLICURL", ""),
		ServiceMotd:           getEnv("VIKUNJA_SERVICE_MOTD", ""),
		MaxItemsPerPage:       getEnvInt("VIKUNJA_SERVICE_MAXITEMSPERPAGE", 50),
		EnableRegistration:    getEnvBool("VIKUNJA_SERVICE_ENABLEREGISTRATION", true),
		EnableLinkSharing:     getEnvBool("VIKUNJA_SERVICE_ENABLELINKSHARING", true),
		EnableTaskAttachments: getEnvBool("VIKUNJA_SERVICE_ENABLETASKATTACHMENTS", true),
		EnableTaskComments:    getEnvBool("VIKUNJA_SERVICE_ENABLETASKCOMMENTS", true),
		EnableTOTP:            getEnvBool("VIKUNJA_SERVICE_ENABLETOTP", true),
		EnableEmailReminders:  getEnvBool("VIKUNJA_SERVICE_ENABLEEMAILREMINDERS", true),
		EnableUserDeletion:    getEnvBool("VIKUNJA_SERVICE_ENABLEUSERDELETION", true),
		EnablePublicTeams:     getEnvBool("VIKUNJA_SERVICE_ENABLEPUBLICTEAMS", true),
		EnableCaldav:          getEnvBool("VIKUNJA_SERVICE_ENABLECALDAV", true),
		ServiceTimezone:       getEnv("VIKUNJA_SERVICE_TIMEZONE", "GMT"),

		JWTSecret:  getEnv("VIKUNJA_SERVICE_JWTSECRET", "your-secret-key"),
		JWTTTL:     time.Duration(getEnvInt("VIKUNJA_SERVICE_JWTTTL", 259200)) * time.Second,
		JWTTTLLong: time.Duration(getEnvInt("VIKUNJA_SERVICE_JWTTTLLONG", 2592000)) * time.Second,

		DatabaseType:     getEnv("VIKUNJA_DATABASE_TYPE", "sqlite"),
		DatabaseHost:     getEnv("VIKUNJA_DATABASE_HOST", "localhost"),
		DatabasePort:     getEnv("VIKUNJA_DATABASE_PORT", "5432"),
		DatabaseUser:     getEnv("VIKUNJA_DATABASE_USER", "vikunja"),
		DatabasePassword: getEnv("VIKUNJA_DATABASE_PASSWORD", ""),
		DatabaseName:     getEnv("VIKUNJA_DATABASE_DATABASE", "vikunja"),
		DatabasePath:     getEnv("VIKUNJA_DATABASE_PATH", "./vikunja.db"),

		CORSEnable:  getEnvBool("VIKUNJA_CORS_ENABLE", true),
		CORSOrigins: getEnvList("VIKUNJA_CORS_ORIGINS", []string{"*"}),
		CORSMaxAge:  time.Duration(getEnvInt("VIKUNJA_CORS_MAXAGE", 86400)) * time.Second,

		RateLimitEnabled:               getEnvBool("VIKUNJA_RATELIMIT_ENABLED", false),
		RateLimitNoAuthRoutesPerMinute: getEnvInt("VIKUNJA_RATELIMIT_NOAUTHROUTESLIMIT", 10),

		FilesBasePath: getEnv("VIKUNJA_FILES_BASEPATH", "./files"),
		FilesMaxSize:  getEnv("VIKUNJA_FILES_MAXSIZE", "20MB"),

		LogEnabled: getEnvBool("VIKUNJA_LOG_ENABLED", true),
		LogLevel:   getEnv("VIKUNJA_LOG_LEVEL", "INFO"),

		WebhooksEnabled: getEnvBool("VIKUNJA_WEBHOOKS_ENABLED", false),

		GinMode: getEnv("GIN_MODE", "debug"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
