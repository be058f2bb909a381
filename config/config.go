package config

import (
	"log"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joho/godotenv"
)

const (
	DefaultPort     = "8083"
	DefaultTimezone = "Asia/Kolkata"
)

// Config is read once at boot and passed down
type Config struct {
	Env            string
	Port           string
	Timezone       string
	LogLevel       string
	LogDir         string
	DatabaseURL    string
	RedisAddr      string
	RedisUser      string
	RedisPassword  string
	CloudinaryURL  string
	PaymentKeyID   string
	PaymentSecret  string
	AdminUser      string
	AdminPassword  string
	JWTSecret      string
	GoogleClientID string
	AdminEmails    []string
	DevAuthBypass  bool
	APIBaseDev     string
	APIBaseProd    string
}

// Load reads .env when present, then the environment
func Load() *Config {
	LoadEnv()
	return &Config{
		Env:            getEnv("ENV", "dev"),
		Port:           getEnv("PORT", DefaultPort),
		Timezone:       getEnv("TIMEZONE", DefaultTimezone),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogDir:         getEnv("LOG_DIR", "logs"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisUser:      os.Getenv("REDIS_USER"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		CloudinaryURL:  os.Getenv("CLOUDINARY_URL"),
		PaymentKeyID:   os.Getenv("PAYMENT_KEY_ID"),
		PaymentSecret:  os.Getenv("PAYMENT_KEY_SECRET"),
		AdminUser:      getEnv("ADMIN_USER", "admin"),
		AdminPassword:  getEnv("ADMIN_PASSWORD", "1234"),
		JWTSecret:      getEnv("JWT_SECRET", "ngi-dev-secret"),
		GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),
		AdminEmails:    splitList(os.Getenv("ADMIN_EMAILS")),
		DevAuthBypass:  getBool("DEV_AUTH_BYPASS"),
		APIBaseDev:     getEnv("API_BASE_DEV", "http://localhost:"+getEnv("PORT", DefaultPort)),
		APIBaseProd:    os.Getenv("API_BASE_PROD"),
	}
}

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: no .env file loaded: %v", err)
	}
}

// Location is the zone DateKeys are computed in. An unknown zone falls back
// to India Standard Time, which has no DST.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("Warning: unknown timezone %q, using +05:30: %v", c.Timezone, err)
		return time.FixedZone("IST", 5*3600+1800)
	}
	return loc
}

// APIBase picks the dev origin for a local host and the production one
// otherwise
func (c *Config) APIBase(host string) string {
	if IsLocalHost(host) || c.APIBaseProd == "" {
		return c.APIBaseDev
	}
	return c.APIBaseProd
}

// IsLocalHost is true for localhost, 127.0.0.1 and an empty host, with or
// without a port
func IsLocalHost(host string) bool {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.Trim(host, "[]")
	return host == "" || host == "localhost" || host == "127.0.0.1" || host == "::1"
}

// ConnectCloudinary returns nil without CLOUDINARY_URL; uploads then fail
// and identity documents fall back to a placeholder
func ConnectCloudinary(cfg *Config) (*cloudinary.Cloudinary, error) {
	if cfg.CloudinaryURL == "" {
		log.Println("Warning: CLOUDINARY_URL not set, uploads disabled")
		return nil, nil
	}
	return cloudinary.NewFromURL(cfg.CloudinaryURL)
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getBool(key string) bool {
	b, _ := strconv.ParseBool(os.Getenv(key))
	return b
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
