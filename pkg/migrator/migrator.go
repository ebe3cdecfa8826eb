package migrator

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"

	"github.com/pressly/goose/v3"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Fatal(format string, v ...interface{})
}

// gooseLogger направляет вывод goose в логгер сервиса
type gooseLogger struct {
	l Logger
}

func (g gooseLogger) Printf(format string, v ...interface{}) {
	g.l.Info(strings.TrimSuffix(format, "\n"), v...)
}

func (g gooseLogger) Fatalf(format string, v ...interface{}) {
	g.l.Fatal(strings.TrimSuffix(format, "\n"), v...)
}

// Migrator обёртка над goose, миграции читаются из встроенной FS
type Migrator struct {
	db  *sql.DB
	dir string
}

// New создает мигратор. dir - каталог миграций внутри fsys ("." для корня)
func New(db *sql.DB, fsys fs.FS, dir string, logger Logger) (*Migrator, error) {
	goose.SetBaseFS(fsys)
	if logger != nil {
		goose.SetLogger(gooseLogger{l: logger})
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("migrator: set goose dialect: %w", err)
	}
	return &Migrator{db: db, dir: dir}, nil
}

// Up применяет все pending миграции
func (m *Migrator) Up(ctx context.Context) error {
	if err := goose.UpContext(ctx, m.db, m.dir); err != nil {
		return fmt.Errorf("migrator: apply migrations: %w", err)
	}
	return nil
}

// Version текущая версия схемы
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	version, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return 0, fmt.Errorf("migrator: get version: %w", err)
	}
	return version, nil
}
