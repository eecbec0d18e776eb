package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	UsersRelational = "relational"
	UsersMongo      = "mongo"

	SessionMemory = "memory"
	SessionRedis  = "redis"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
	}
	Log struct {
		Level string
	}
	Session struct {
		Secret     string
		TTLMinutes int
		CookieName string
		Secure     bool
		Store      string
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	Database struct {
		Driver string
		Path   string
		DSN    string
	}
	Users struct {
		Backend string
	}
	Mongo struct {
		URI       string
		Database  string
		TimeoutMS int
	}
}

// Load reads configuration from environment variables and optional config files.
// Variables use the PORTAL_ prefix, e.g. PORTAL_SESSION_SECRET or PORTAL_MONGO_URI.
func Load() (Config, error) {
	loadDotEnv(".env")

	v := viper.New()
	v.SetEnvPrefix("PORTAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("session.secret", "")
	v.SetDefault("session.ttlminutes", 720)
	v.SetDefault("session.cookiename", "portal_session")
	v.SetDefault("session.secure", false)
	v.SetDefault("session.store", SessionMemory)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.path", "data/healthcare.db")
	v.SetDefault("database.dsn", "")
	v.SetDefault("users.backend", UsersRelational)
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "healthcare")
	v.SetDefault("mongo.timeoutms", 2000)

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Validate rejects unknown backend names and missing required values.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Session.Secret) == "" {
		return fmt.Errorf("session secret is required (PORTAL_SESSION_SECRET)")
	}
	return c.ValidateStores()
}

// ValidateStores checks only the storage settings; commands that never serve
// HTTP do not need a session secret.
func (c Config) ValidateStores() error {
	switch c.Session.Store {
	case SessionMemory:
	case SessionRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis address is required for the redis session store")
		}
	default:
		return fmt.Errorf("unknown session store %q", c.Session.Store)
	}
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database path is required for sqlite")
		}
	case DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database dsn is required for postgres")
		}
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	switch c.Users.Backend {
	case UsersRelational:
	case UsersMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			return fmt.Errorf("mongo uri and database are required for the mongo user backend")
		}
	default:
		return fmt.Errorf("unknown users backend %q", c.Users.Backend)
	}
	return nil
}

// SessionTTL returns the session lifetime.
func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLMinutes) * time.Minute
}

// MongoTimeout bounds server selection and pings against MongoDB.
func (c Config) MongoTimeout() time.Duration {
	if c.Mongo.TimeoutMS <= 0 {
		return 2 * time.Second
	}
	return time.Duration(c.Mongo.TimeoutMS) * time.Millisecond
}

func loadDotEnv(path string) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		partsIndex := strings.Index(line, "=")
		if partsIndex <= 0 {
			continue
		}

		key := strings.TrimSpace(line[:partsIndex])
		value := strings.TrimSpace(line[partsIndex+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}

		if _, exists := os.LookupEnv(key); !exists {
			_ = os.Setenv(key, value)
		}
	}
}
