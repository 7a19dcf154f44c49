package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Driver selects the storage engine backing the main database and the
// tenant partitions.
type Driver string

const (
	// DriverSQLite stores the main database and every tenant partition as
	// separate database files under DataDir.
	DriverSQLite Driver = "sqlite"
	// DriverPostgres stores the main database in the configured Postgres
	// database and every tenant partition in a dedicated schema.
	DriverPostgres Driver = "postgres"
)

// Config holds database configuration
type Config struct {
	Driver Driver

	// SQLite
	DataDir string

	// Postgres
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string

	// TenantPrefix is prepended to the sanitized username to form the
	// partition name: a database file name under SQLite, a schema name
	// under Postgres.
	TenantPrefix string
}

// NewConfig creates a new database configuration
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// It's okay if .env doesn't exist, we'll use defaults or environment variables
		fmt.Println("Warning: .env file not found")
	}

	driver := Driver(getEnv("DB_DRIVER", string(DriverSQLite)))
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (use sqlite or postgres)", driver)
	}

	return &Config{
		Driver:       driver,
		DataDir:      getEnv("DATA_DIR", "data"),
		Host:         getEnv("DB_HOST", "localhost"),
		Port:         getEnv("DB_PORT", "5432"),
		User:         getEnv("DB_USER", "kharcha"),
		Password:     getEnv("DB_PASSWORD", "kharcha"),
		DBName:       getEnv("DB_NAME", "kharcha"),
		SSLMode:      getEnv("DB_SSLMODE", "disable"),
		TenantPrefix: getEnv("TENANT_PREFIX", "expense_"),
	}, nil
}

// DSN returns the Postgres connection string for the main database.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// MainPath returns the SQLite file path of the main database.
func (c *Config) MainPath() string {
	return filepath.Join(c.DataDir, "main.db")
}

// MigrateURL returns the database URL understood by golang-migrate for the
// main database under the configured driver.
func (c *Config) MigrateURL() string {
	if c.Driver == DriverPostgres {
		return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
			c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
	}
	return "sqlite3://" + c.MainPath()
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
