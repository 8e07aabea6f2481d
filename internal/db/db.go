package db

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var (
	DB      *sql.DB
	DbMutex sync.Mutex
)

//go:embed schema.sql
var schema string

// InitDB открывает базу SQLite по пути dbPath и применяет схему
func InitDB(dbPath string) error {
	// Проверка, что директория для базы данных существует
	dbDir := filepath.Dir(dbPath)
	if _, err := os.Stat(dbDir); os.IsNotExist(err) {
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	var err error

	DB, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if err = DB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err = ApplySchema(); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	return nil
}

// InitMemoryDB открывает базу в памяти с общим кэшем под именем name.
// Соединение одно, иначе каждое новое соединение увидит пустую базу.
func InitMemoryDB(name string) error {
	var err error

	DB, err = sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	DB.SetMaxOpenConns(1)

	return ApplySchema()
}

func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// ApplySchema создает таблицы, если их еще нет
func ApplySchema() error {
	if _, err := DB.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// CleanupDB удаляет все записи. Используется в тестах
func CleanupDB() error {
	DbMutex.Lock()
	defer DbMutex.Unlock()

	for _, table := range []string{"calculations", "users"} {
		if _, err := DB.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to cleanup %s: %w", table, err)
		}
	}
	return nil
}

// Форматы, в которых SQLite может вернуть TIMESTAMP
var timestampFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05.999999999Z07:00", // RFC3339
	"2006-01-02T15:04:05",
	time.RFC3339,
}

func parseTimestamp(value string) (time.Time, error) {
	var parseErr error
	for _, format := range timestampFormats {
		t, err := time.Parse(format, value)
		if err == nil {
			return t, nil
		}
		parseErr = err
	}
	return time.Time{}, fmt.Errorf("failed to parse time '%s': %v", value, parseErr)
}
