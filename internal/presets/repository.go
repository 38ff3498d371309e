package presets

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ngmaloney/portman-terminal/internal/database"
	"github.com/ngmaloney/portman-terminal/internal/models"
)

// ErrNotFound is returned when no preset has the requested name
var ErrNotFound = errors.New("preset not found")

// Repository handles persistence for filter presets
type Repository struct {
	dbPath string
}

// NewRepository creates a preset repository backed by the sqlite file at dbPath
func NewRepository(dbPath string) *Repository {
	return &Repository{dbPath: dbPath}
}

// Save inserts the preset, or replaces the filter of an existing preset with the same name
func (r *Repository) Save(p *models.Preset) error {
	db, err := database.Open(r.dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	query := `
		INSERT INTO filter_presets (name, start_date, end_date, search, tab, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			search = excluded.search,
			tab = excluded.tab,
			created_at = excluded.created_at
	`

	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}

	_, err = db.Exec(query,
		p.Name,
		nullDate(p.Filter.Start),
		nullDate(p.Filter.End),
		p.Filter.Search,
		string(tabOrAll(p.Filter.Tab)),
		p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving preset: %w", err)
	}

	// LastInsertId is unreliable for the update branch of an upsert
	if err := db.QueryRow("SELECT id FROM filter_presets WHERE name = ?", p.Name).Scan(&p.ID); err != nil {
		return fmt.Errorf("reading preset id: %w", err)
	}

	return nil
}

// List retrieves all presets ordered by name
func (r *Repository) List() ([]models.Preset, error) {
	db, err := database.Open(r.dbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query("SELECT id, name, start_date, end_date, search, tab, created_at FROM filter_presets ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("querying presets: %w", err)
	}
	defer rows.Close()

	var presets []models.Preset
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating presets: %w", err)
	}

	return presets, nil
}

// Get retrieves a preset by name
func (r *Repository) Get(name string) (*models.Preset, error) {
	db, err := database.Open(r.dbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	row := db.QueryRow("SELECT id, name, start_date, end_date, search, tab, created_at FROM filter_presets WHERE name = ?", name)
	p, err := scanPreset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes a preset by name
func (r *Repository) Delete(name string) error {
	db, err := database.Open(r.dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := db.Exec("DELETE FROM filter_presets WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("deleting preset: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPreset(s scanner) (models.Preset, error) {
	var p models.Preset
	var start, end sql.NullString
	var tab string

	if err := s.Scan(&p.ID, &p.Name, &start, &end, &p.Filter.Search, &tab, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, err
		}
		return p, fmt.Errorf("scanning preset: %w", err)
	}

	var err error
	if p.Filter.Start, err = parseStoredDate(start); err != nil {
		return p, err
	}
	if p.Filter.End, err = parseStoredDate(end); err != nil {
		return p, err
	}
	p.Filter.Tab = tabOrAll(models.StatusTab(tab))
	return p, nil
}

func nullDate(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: models.FormatDate(t), Valid: true}
}

func parseStoredDate(s sql.NullString) (time.Time, error) {
	if !s.Valid {
		return time.Time{}, nil
	}
	t, err := models.ParseDate(s.String, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing stored date %q: %w", s.String, err)
	}
	return t, nil
}

func tabOrAll(t models.StatusTab) models.StatusTab {
	if t == "" {
		return models.TabAll
	}
	return t
}
