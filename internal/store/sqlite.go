package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/catalogwatch/catalogwatch/internal/model"
	_ "modernc.org/sqlite"
)

var (
	//go:embed sql/*
	f embed.FS

	errDBNotInitialized = errors.New("database not initialized")
)

// Init creates the database file and schema if the file does not exist yet
func Init(dbFilePath string) error {
	if dbFilePath == "" {
		return errors.New("dbFilePath not specified")
	}

	if _, err := os.Stat(dbFilePath); errors.Is(err, os.ErrNotExist) {
		db, err := GetDB(dbFilePath)
		if err != nil {
			return err
		}
		defer db.Close()

		slog.Debug("creating db schema", "path", dbFilePath)
		b, err := f.ReadFile("sql/ddl.sql")
		if err != nil {
			return fmt.Errorf("read schema: %w", err)
		}
		if _, err := db.Exec(string(b)); err != nil {
			return fmt.Errorf("create schema in %s: %w", dbFilePath, err)
		}
	}

	return nil
}

// GetDB opens the sqlite database at path
func GetDB(path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	return conn, nil
}

// SaveRecords inserts records in a single transaction
func SaveRecords(db *sql.DB, records []model.AnnotatedRecord) error {
	if db == nil {
		return errDBNotInitialized
	}

	rows, err := toRows(records)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(insertSQL())
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.Exec(row.args()...); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert catalog %s: %w", row.CatalogID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit records: %w", err)
	}
	return nil
}

// LoadRecords returns every stored record in insertion order
func LoadRecords(db *sql.DB) ([]model.AnnotatedRecord, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}

	q := "SELECT " + strings.Join(Columns, ", ") + " FROM annotated_record ORDER BY id"
	result, err := db.Query(q)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer result.Close()

	var rows []Row
	for result.Next() {
		var (
			row              Row
			releaseYear, ysr sql.NullInt64
		)
		if err := result.Scan(
			&row.CatalogID, &row.ArtistName, &row.TrackTitle, &releaseYear,
			&row.RightsHolder, &row.Territory, &row.OwnershipNotes, &row.Source,
			&row.LoadedAt, &row.RunID, &ysr, &row.EligibilityWindow,
			&row.MatchedRule, &row.OwnershipSignals, &row.OwnershipEvidence,
			&row.OwnershipConfidence, &row.Features, &row.Score, &row.Explainability,
		); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		if releaseYear.Valid {
			row.ReleaseYear = &releaseYear.Int64
		}
		if ysr.Valid {
			row.YearsSinceRelease = &ysr.Int64
		}
		rows = append(rows, row)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	return fromRows(rows)
}

// WriteSQLite replaces the contents of the database at path with records
func WriteSQLite(path string, records []model.AnnotatedRecord) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove previous database: %w", err)
	}
	if err := Init(path); err != nil {
		return err
	}

	db, err := GetDB(path)
	if err != nil {
		return err
	}
	defer db.Close()

	return SaveRecords(db, records)
}

// ReadSQLite loads every record from the database at path
func ReadSQLite(path string) ([]model.AnnotatedRecord, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db, err := GetDB(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return LoadRecords(db)
}

func insertSQL() string {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(Columns)), ", ")
	return "INSERT INTO annotated_record (" + strings.Join(Columns, ", ") + ") VALUES (" + placeholders + ")"
}

func (row Row) args() []any {
	var releaseYear, ysr any
	if row.ReleaseYear != nil {
		releaseYear = *row.ReleaseYear
	}
	if row.YearsSinceRelease != nil {
		ysr = *row.YearsSinceRelease
	}
	return []any{
		row.CatalogID, row.ArtistName, row.TrackTitle, releaseYear,
		row.RightsHolder, row.Territory, row.OwnershipNotes, row.Source,
		row.LoadedAt, row.RunID, ysr, row.EligibilityWindow,
		row.MatchedRule, row.OwnershipSignals, row.OwnershipEvidence,
		row.OwnershipConfidence, row.Features, row.Score, row.Explainability,
	}
}
