package database

import (
	"context"
	"database/sql"
	"net/url"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/arisha-glich/class-gecko-backend/core"
	"github.com/arisha-glich/class-gecko-backend/core/billing"
	"github.com/arisha-glich/class-gecko-backend/core/camp"
	"github.com/arisha-glich/class-gecko-backend/core/class"
	"github.com/arisha-glich/class-gecko-backend/core/commission"
	"github.com/arisha-glich/class-gecko-backend/core/customfield"
	"github.com/arisha-glich/class-gecko-backend/core/discount"
	"github.com/arisha-glich/class-gecko-backend/core/dropin"
	"github.com/arisha-glich/class-gecko-backend/core/family"
	"github.com/arisha-glich/class-gecko-backend/core/holiday"
	"github.com/arisha-glich/class-gecko-backend/core/location"
	"github.com/arisha-glich/class-gecko-backend/core/organization"
	"github.com/arisha-glich/class-gecko-backend/core/regfee"
	"github.com/arisha-glich/class-gecko-backend/core/student"
	"github.com/arisha-glich/class-gecko-backend/core/term"
	"github.com/arisha-glich/class-gecko-backend/core/user"
	"github.com/arisha-glich/class-gecko-backend/core/waiver"
	appfs "github.com/arisha-glich/class-gecko-backend/fs"
)

const migrationsDir = "migrations"

// dsn builds the connection URL of dbName, as the admin user when admin is set.
func dsn(dbName string, admin bool, conf *core.Config) string {
	usr := url.UserPassword(conf.Database.User, conf.Database.Password)
	if admin && conf.Database.AdminUser != "" {
		usr = url.UserPassword(conf.Database.AdminUser, conf.Database.AdminPassword)
	}

	sslMode := "require"
	if conf.Database.DisableTLS {
		sslMode = "disable"
	}
	q := make(url.Values)
	q.Set("sslmode", sslMode)
	q.Set("timezone", "utc")

	u := url.URL{
		Scheme:   conf.Database.Engine,
		User:     usr,
		Host:     conf.Database.Address(),
		Path:     dbName,
		RawQuery: q.Encode(),
	}
	return u.String()
}

func logLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// Config is the GORM configuration shared by the application & the tests.
func Config(level string) *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel(level)),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}
}

// Open connects to the application database and waits for it to be ready.
func Open(conf *core.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn(conf.Database.Name, false, conf),
		PreferSimpleProtocol: true,
	}), Config(conf.Database.LogLevel))
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "getting database handle")
	}
	sqlDB.SetMaxIdleConns(conf.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(conf.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(conf.Database.ConnMaxLifetime)

	if err := ping(sqlDB); err != nil {
		return nil, err
	}
	return db, nil
}

// SQLx wraps the connection pool of db for the hand-written queries.
func SQLx(db *gorm.DB) (*sqlx.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "getting database handle")
	}
	return sqlx.NewDb(sqlDB, db.Dialector.Name()), nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(db *sql.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		if err = db.Ping(); err == nil {
			return nil
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}
	return errors.Wrap(err, "DB ping timeout")
}

func exists(db *sql.DB, query string, arg string) (bool, error) {
	var found bool
	err := db.QueryRow(query, arg).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return found, err
}

func createAppUser(db *sql.DB, conf *core.Config) error {
	if conf.Database.User == "" {
		return nil
	}
	found, err := exists(db, "SELECT true FROM pg_roles WHERE rolname = $1", conf.Database.User)
	if err != nil {
		return errors.Wrap(err, "checking app user")
	}
	if found {
		return nil
	}
	q := "CREATE USER " + pq.QuoteIdentifier(conf.Database.User) +
		" CREATEDB ENCRYPTED PASSWORD " + pq.QuoteLiteral(conf.Database.Password)
	_, err = db.Exec(q)
	return errors.Wrap(err, "creating app user")
}

func createDB(db *sql.DB, conf *core.Config) error {
	found, err := exists(db, "SELECT true FROM pg_database WHERE datname = $1", conf.Database.Name)
	if err != nil {
		return errors.Wrap(err, "checking DB")
	}
	if found {
		return nil
	}
	_, err = db.Exec("CREATE DATABASE " + pq.QuoteIdentifier(conf.Database.Name))
	return errors.Wrap(err, "creating database")
}

var sqlOpen = sql.Open // mockable

// CreateIfNotExist creates the application user (as the admin user) and then the
// application database (as the application user).
func CreateIfNotExist(conf *core.Config) error {
	admin, err := sqlOpen("postgres", dsn("postgres", true, conf))
	if err != nil {
		return errors.Wrap(err, "opening database")
	}
	defer func() { _ = admin.Close() }()
	if err = ping(admin); err != nil {
		return errors.Wrap(err, "pinging database")
	}
	if err = createAppUser(admin, conf); err != nil {
		return err
	}

	app, err := sqlOpen("postgres", dsn("postgres", false, conf))
	if err != nil {
		return errors.Wrap(err, "opening database")
	}
	defer func() { _ = app.Close() }()
	return createDB(app, conf)
}

// Migrate runs a goose command (up, down, status...) with the embedded migrations.
func Migrate(ctx context.Context, db *gorm.DB, command string, args ...string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "getting database handle")
	}
	goose.SetBaseFS(appfs.FS)
	if err := goose.SetDialect(db.Dialector.Name()); err != nil {
		return errors.Wrap(err, "setting migrations dialect")
	}
	if err := goose.RunContext(ctx, command, sqlDB, migrationsDir, args...); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}

// Models lists every table of the application, parents first.
func Models() []interface{} {
	return []interface{}{
		&user.Address{},
		&user.User{},
		&user.Session{},
		&user.ContactInfo{},
		&organization.Organization{},
		&commission.Commission{},
		&family.Family{},
		&student.Student{},
		&class.Teacher{},
		&location.Location{},
		&term.Term{},
		&class.Class{},
		&class.Lesson{},
		&class.Booking{},
		&class.Trial{},
		&class.Waitlist{},
		&camp.Camp{},
		&discount.Discount{},
		&discount.Tier{},
		&regfee.Fee{},
		&customfield.CustomField{},
		&holiday.Holiday{},
		&waiver.Policy{},
		&dropin.Class{},
		&dropin.Lesson{},
		&dropin.Booking{},
		&billing.Cart{},
		&billing.Order{},
		&billing.Payment{},
	}
}
