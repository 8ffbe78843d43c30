// Package store persists the project aggregate to a local SQLite database.
// Saves are transactional whole-aggregate writes with read-your-writes
// consistency; the store never partially commits a project.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"
	_ "github.com/mattn/go-sqlite3"

	"github.com/paramount/restobid/internal/filelock"
	"github.com/paramount/restobid/internal/models"
)

//go:embed schema.sql
var schemaSQL string

// ProjectSummary is the listing row for a stored project.
type ProjectSummary struct {
	ID         string
	Name       string
	DamageType models.DamageType
	RoomCount  int
	ItemCount  int
	UpdatedAt  time.Time
}

// Store manages the SQLite database holding assessment projects. It also
// holds the data directory guard: only one restobid instance may have a
// data directory open.
type Store struct {
	db     *sql.DB
	dbPath string
	guard  *filelock.Guard
}

// Open opens (creating if needed) the project database under dir and
// acquires the single-instance guard. Close releases both.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	guard := filelock.NewGuard(filepath.Join(dir, ".lock"))
	if err := guard.Acquire(); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "projects.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		guard.Release()
		return nil, fmt.Errorf("open database: %w", err)
	}

	// busy_timeout first so later statements wait on locks instead of
	// failing immediately.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			guard.Release()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		guard.Release()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath, guard: guard}, nil
}

// execWithRetry executes a statement with exponential backoff on
// "database is locked" errors.
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Close closes the database and releases the data directory guard.
func (s *Store) Close() error {
	var firstErr error
	if s.db != nil {
		firstErr = s.db.Close()
	}
	if s.guard != nil {
		if err := s.guard.Release(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// SaveProject writes the whole aggregate in one transaction, replacing the
// project's child rows. A failed save leaves the prior snapshot intact.
func (s *Store) SaveProject(ctx context.Context, p *models.Project) error {
	var classificationJSON sql.NullString
	if p.Classification != nil {
		blob, err := json.Marshal(p.Classification)
		if err != nil {
			return fmt.Errorf("encode classification: %w", err)
		}
		classificationJSON = sql.NullString{String: string(blob), Valid: true}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO projects (id, name, damage_type, classification, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			damage_type = excluded.damage_type,
			classification = excluded.classification,
			notes = excluded.notes,
			updated_at = excluded.updated_at`,
		p.ID, p.Name, string(p.DamageType), classificationJSON, p.Notes, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save project %s: %w", p.ID, err)
	}

	for _, table := range []string{"rooms", "line_items", "photos"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE project_id = ?", p.ID); err != nil {
			return fmt.Errorf("clear %s for project %s: %w", table, p.ID, err)
		}
	}

	for i, room := range p.Rooms {
		walls, err := json.Marshal(room.AffectedWalls)
		if err != nil {
			return fmt.Errorf("encode affected walls: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO rooms (id, project_id, position, name, room_type, length_ft, width_ft,
				height_ft, floor_type, damage_percent, wall_wick_height, affected_walls,
				notes, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			room.ID, p.ID, i, room.Name, room.Type, room.Length, room.Width,
			room.Height, room.FloorType, room.DamagePercent, room.WallWickHeight, string(walls),
			room.Notes, room.CreatedAt, room.UpdatedAt)
		if err != nil {
			return fmt.Errorf("save room %s: %w", room.Name, err)
		}
	}

	for i, item := range p.LineItems {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO line_items (id, project_id, position, code, description, quantity,
				unit, category, room_id, room_name, added_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ID, p.ID, i, item.Code, item.Description, item.Quantity,
			item.Unit, item.Category, item.RoomID, item.RoomName, item.AddedAt)
		if err != nil {
			return fmt.Errorf("save line item %s: %w", item.Code, err)
		}
	}

	for i, photo := range p.Photos {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO photos (id, project_id, position, path, caption, added_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			photo.ID, p.ID, i, photo.Path, photo.Caption, photo.AddedAt)
		if err != nil {
			return fmt.Errorf("save photo %s: %w", photo.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// ErrProjectNotFound is returned by LoadProject for unknown IDs.
var ErrProjectNotFound = fmt.Errorf("project not found")

// LoadProject reads the whole aggregate for the given project ID.
func (s *Store) LoadProject(ctx context.Context, id string) (*models.Project, error) {
	p := &models.Project{}
	var damageType string
	var classificationJSON sql.NullString

	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, damage_type, classification, notes, created_at, updated_at
		FROM projects WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &damageType, &classificationJSON, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load project %s: %w", id, err)
	}

	p.DamageType = models.DamageType(damageType)
	if classificationJSON.Valid {
		var cls models.Classification
		if err := json.Unmarshal([]byte(classificationJSON.String), &cls); err != nil {
			return nil, fmt.Errorf("decode classification for project %s: %w", id, err)
		}
		p.Classification = &cls
	}

	if err := s.loadRooms(ctx, p); err != nil {
		return nil, err
	}
	if err := s.loadLineItems(ctx, p); err != nil {
		return nil, err
	}
	if err := s.loadPhotos(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) loadRooms(ctx context.Context, p *models.Project) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, room_type, length_ft, width_ft, height_ft, floor_type,
			damage_percent, wall_wick_height, affected_walls, notes, created_at, updated_at
		FROM rooms WHERE project_id = ? ORDER BY position`, p.ID)
	if err != nil {
		return fmt.Errorf("load rooms: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var room models.Room
		var walls string
		err := rows.Scan(&room.ID, &room.Name, &room.Type, &room.Length, &room.Width,
			&room.Height, &room.FloorType, &room.DamagePercent, &room.WallWickHeight,
			&walls, &room.Notes, &room.CreatedAt, &room.UpdatedAt)
		if err != nil {
			return fmt.Errorf("scan room: %w", err)
		}
		if err := json.Unmarshal([]byte(walls), &room.AffectedWalls); err != nil {
			return fmt.Errorf("decode affected walls for room %s: %w", room.Name, err)
		}
		p.Rooms = append(p.Rooms, room)
	}
	return rows.Err()
}

func (s *Store) loadLineItems(ctx context.Context, p *models.Project) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, code, description, quantity, unit, category, room_id, room_name, added_at
		FROM line_items WHERE project_id = ? ORDER BY position`, p.ID)
	if err != nil {
		return fmt.Errorf("load line items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.LineItem
		err := rows.Scan(&item.ID, &item.Code, &item.Description, &item.Quantity,
			&item.Unit, &item.Category, &item.RoomID, &item.RoomName, &item.AddedAt)
		if err != nil {
			return fmt.Errorf("scan line item: %w", err)
		}
		p.LineItems = append(p.LineItems, item)
	}
	return rows.Err()
}

func (s *Store) loadPhotos(ctx context.Context, p *models.Project) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, path, caption, added_at
		FROM photos WHERE project_id = ? ORDER BY position`, p.ID)
	if err != nil {
		return fmt.Errorf("load photos: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var photo models.PhotoAttachment
		if err := rows.Scan(&photo.ID, &photo.Path, &photo.Caption, &photo.AddedAt); err != nil {
			return fmt.Errorf("scan photo: %w", err)
		}
		p.Photos = append(p.Photos, photo)
	}
	return rows.Err()
}

// ListProjects returns summaries of all projects, most recently updated
// first.
func (s *Store) ListProjects(ctx context.Context) ([]ProjectSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.damage_type, p.updated_at,
			(SELECT COUNT(*) FROM rooms r WHERE r.project_id = p.id),
			(SELECT COUNT(*) FROM line_items li WHERE li.project_id = p.id)
		FROM projects p
		ORDER BY p.updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var summaries []ProjectSummary
	for rows.Next() {
		var s ProjectSummary
		var damageType string
		if err := rows.Scan(&s.ID, &s.Name, &damageType, &s.UpdatedAt, &s.RoomCount, &s.ItemCount); err != nil {
			return nil, fmt.Errorf("scan project summary: %w", err)
		}
		s.DamageType = models.DamageType(damageType)
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// DeleteProject removes a project and its child rows.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	return nil
}

// FindProject resolves a project reference: an exact ID, an unambiguous ID
// prefix, or an exact name.
func (s *Store) FindProject(ctx context.Context, ref string) (*models.Project, error) {
	summaries, err := s.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	var matches []string
	for _, summary := range summaries {
		if summary.ID == ref || summary.Name == ref {
			return s.LoadProject(ctx, summary.ID)
		}
		if strings.HasPrefix(summary.ID, ref) {
			matches = append(matches, summary.ID)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, ref)
	case 1:
		return s.LoadProject(ctx, matches[0])
	default:
		return nil, fmt.Errorf("project reference %q is ambiguous (%d matches)", ref, len(matches))
	}
}
