package db

import (
	"fmt"
	"net/url"
	"strings"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/shinyyama/priority-items/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// BuildDSN accepts either a mysql:// URL or a native go-sql-driver DSN and
// returns a DSN with the options the repositories rely on.
func BuildDSN(databaseURL string) (string, error) {
	raw := strings.TrimSpace(databaseURL)
	if raw == "" {
		return "", fmt.Errorf("empty database url")
	}

	var (
		mc  *mysqldrv.Config
		err error
	)
	if strings.HasPrefix(raw, "mysql://") {
		mc, err = fromURL(raw)
	} else {
		mc, err = mysqldrv.ParseDSN(raw)
	}
	if err != nil {
		return "", fmt.Errorf("parse database url: %w", err)
	}

	mc.ParseTime = true
	// UPDATE must report matched rows, not changed rows, so a no-op
	// full replace is not mistaken for a missing item.
	mc.ClientFoundRows = true
	return mc.FormatDSN(), nil
}

func fromURL(raw string) (*mysqldrv.Config, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	mc := mysqldrv.NewConfig()
	if u.User != nil {
		mc.User = u.User.Username()
		mc.Passwd, _ = u.User.Password()
	}
	host := u.Host
	if host == "" {
		host = "127.0.0.1"
	}
	if u.Port() == "" {
		host += ":3306"
	}
	mc.Net = "tcp"
	mc.Addr = host
	mc.DBName = strings.TrimPrefix(u.Path, "/")
	if mc.DBName == "" {
		return nil, fmt.Errorf("database name missing in %q", u.Redacted())
	}
	q := u.Query()
	if len(q) > 0 {
		mc.Params = make(map[string]string, len(q))
		for k := range q {
			mc.Params[k] = q.Get(k)
		}
	}
	return mc, nil
}

// Connect opens the shared pool. Callers beyond DBMaxConns block until a
// connection is released.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn, err := BuildDSN(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return Open(mysql.Open(dsn), cfg)
}

// Open wraps gorm.Open with the pool settings from cfg.
func Open(dialector gorm.Dialector, cfg *config.Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Warn),
	}
	db, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)
	sqlDB.SetMaxIdleConns(cfg.DBMaxConns)
	sqlDB.SetMaxOpenConns(cfg.DBMaxConns)

	return db, nil
}
