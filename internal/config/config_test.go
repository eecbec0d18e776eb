package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, UsersRelational, cfg.Users.Backend)
	assert.Equal(t, SessionMemory, cfg.Session.Store)
	assert.Equal(t, "healthcare", cfg.Mongo.Database)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL())
	assert.Equal(t, 2*time.Second, cfg.MongoTimeout())

	assert.ErrorContains(t, cfg.Validate(), "session secret")
}

func TestLoad_Environment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORTAL_SESSION_SECRET", "s3cret")
	t.Setenv("PORTAL_USERS_BACKEND", "mongo")
	t.Setenv("PORTAL_MONGO_URI", "mongodb://db:27017")
	t.Setenv("PORTAL_MONGO_TIMEOUTMS", "500")
	t.Setenv("PORTAL_SESSION_TTLMINUTES", "30")

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "s3cret", cfg.Session.Secret)
	assert.Equal(t, UsersMongo, cfg.Users.Backend)
	assert.Equal(t, "mongodb://db:27017", cfg.Mongo.URI)
	assert.Equal(t, 500*time.Millisecond, cfg.MongoTimeout())
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL())
}

func TestLoad_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(
		"# local overrides\n"+
			"PORTAL_SESSION_SECRET='from-file'\n"+
			"export PORTAL_DATABASE_PATH=\"/tmp/portal.db\"\n"+
			"not-a-pair\n",
	), 0o600))
	t.Setenv("PORTAL_SESSION_SECRET", "from-env")
	// t.Setenv restores the variable, loadDotEnv may set this one directly
	t.Setenv("PORTAL_DATABASE_PATH", "")
	require.NoError(t, os.Unsetenv("PORTAL_DATABASE_PATH"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Session.Secret)
	assert.Equal(t, "/tmp/portal.db", cfg.Database.Path)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		var cfg Config
		cfg.Session.Secret = "s"
		cfg.Session.Store = SessionMemory
		cfg.Database.Driver = DriverSQLite
		cfg.Database.Path = "data/healthcare.db"
		cfg.Users.Backend = UsersRelational
		return cfg
	}
	require.NoError(t, valid().Validate())

	cases := map[string]func(*Config){
		"unknown store":   func(c *Config) { c.Session.Store = "cookie" },
		"redis no addr":   func(c *Config) { c.Session.Store = SessionRedis; c.Redis.Addr = "" },
		"unknown driver":  func(c *Config) { c.Database.Driver = "mysql" },
		"postgres no dsn": func(c *Config) { c.Database.Driver = DriverPostgres },
		"unknown backend": func(c *Config) { c.Users.Backend = "ldap" },
		"mongo no uri":    func(c *Config) { c.Users.Backend = UsersMongo },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
