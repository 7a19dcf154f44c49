// Package tenant resolves user identities to isolated storage partitions.
//
// Every user's categories, subcategories, and expenses live in a partition
// named prefix + username: a separate database file under SQLite, a
// dedicated schema under Postgres. The Locator is the only component that
// performs this translation; everything above it works against the
// *gorm.DB handle it returns and can never reach another user's records.
package tenant

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sync"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"kharcha/internal/database"
	apperrors "kharcha/internal/errors"
	"kharcha/internal/models"
)

// idPattern constrains identifiers to alphanumerics and underscores so the
// prefixing transform can never produce a colliding or injected partition
// name. The length cap keeps prefix+identifier under the 63-byte Postgres
// identifier limit.
var idPattern = regexp.MustCompile(`^[A-Za-z0-9_]{1,40}$`)

// ID is a validated tenant identifier. Construct one with ParseID at the
// boundary; core operations accept only the parsed type.
type ID string

// ParseID validates a raw identifier and returns it as an ID.
func ParseID(s string) (ID, error) {
	if !idPattern.MatchString(s) {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput,
			"username must be 1-40 characters of letters, digits, or underscores")
	}
	return ID(s), nil
}

// String returns the raw identifier.
func (id ID) String() string { return string(id) }

// partitionModels is migrated into every partition on first access.
var partitionModels = []interface{}{
	&models.Category{},
	&models.SubCategory{},
	&models.Expense{},
}

// Locator maps tenant IDs to partition handles. Handles are opened lazily,
// migrated on first access, and cached for the lifetime of the process.
type Locator struct {
	cfg  *database.Config
	main *gorm.DB

	mu      sync.Mutex
	handles map[ID]*gorm.DB
}

// NewLocator creates a Locator. The main database handle is only used under
// the Postgres driver, to create tenant schemas; pass the manager's DB.
func NewLocator(cfg *database.Config, main *gorm.DB) *Locator {
	return &Locator{
		cfg:     cfg,
		main:    main,
		handles: make(map[ID]*gorm.DB),
	}
}

// Partition returns the storage handle for the given tenant, provisioning
// the partition if it does not exist yet. Distinct IDs always resolve to
// disjoint partitions. A storage-level failure to open or migrate the
// partition surfaces as STORAGE_UNAVAILABLE.
func (l *Locator) Partition(id ID) (*gorm.DB, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if db, ok := l.handles[id]; ok {
		return db, nil
	}

	db, err := l.open(id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}

	if err := db.AutoMigrate(partitionModels...); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, fmt.Errorf("failed to migrate partition %s: %w", l.name(id), err))
	}

	l.handles[id] = db
	return db, nil
}

// name returns the partition name for an ID. The ID is already constrained
// to [A-Za-z0-9_], so the result is a safe identifier for both drivers.
func (l *Locator) name(id ID) string {
	return l.cfg.TenantPrefix + string(id)
}

// createSchemaStmt double-quotes the schema name so Postgres preserves its
// case. Unquoted identifiers are folded to lowercase, which would diverge
// from the quoted references GORM emits through the table prefix and
// collapse IDs that differ only in case onto one schema.
func createSchemaStmt(name string) string {
	return fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %q", name)
}

func (l *Locator) open(id ID) (*gorm.DB, error) {
	// Unique-violation translation lets the stores detect the benign
	// concurrent auto-provisioning race via gorm.ErrDuplicatedKey.
	gormCfg := &gorm.Config{TranslateError: true}

	switch l.cfg.Driver {
	case database.DriverPostgres:
		name := l.name(id)
		if err := l.main.Exec(createSchemaStmt(name)).Error; err != nil {
			return nil, fmt.Errorf("failed to create schema %s: %w", name, err)
		}
		gormCfg.NamingStrategy = schema.NamingStrategy{TablePrefix: name + "."}
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  l.cfg.DSN(),
			PreferSimpleProtocol: true,
		}), gormCfg)
	default:
		path := filepath.Join(l.cfg.DataDir, l.name(id)+".db")
		return gorm.Open(sqlite.Open(path), gormCfg)
	}
}
