package club

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/heonampyo/TennisTracker/internal/ledger"
)

var _ ClubStore = (*store)(nil)

// New creates a new ClubStore.
func New(db *sql.DB) ClubStore {
	return &store{
		db: db,
	}
}

const playerColumns = "id, name, notification_token, created_at"

const recordColumns = "id, player_id, opponent, wins, losses, created_at, match_id"

// scanPlayer is a helper function to scan a single player row.
func scanPlayer(scanner interface{ Scan(...any) error }) (*ledger.Player, error) {
	var p ledger.Player
	var token sql.NullString
	var createdAt int64
	if err := scanner.Scan(&p.ID, &p.Name, &token, &createdAt); err != nil {
		return nil, err
	}
	p.NotificationToken = token.String
	p.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &p, nil
}

func scanRecord(scanner interface{ Scan(...any) error }) (*ledger.MatchRecord, error) {
	var r ledger.MatchRecord
	var matchID sql.NullString
	var createdAt int64
	if err := scanner.Scan(&r.ID, &r.PlayerID, &r.Opponent, &r.Wins, &r.Losses, &createdAt, &matchID); err != nil {
		return nil, err
	}
	r.MatchID = matchID.String
	r.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &r, nil
}

// FindPlayerByName looks a player up by exact, case-sensitive name.
func (s *store) FindPlayerByName(ctx context.Context, name string) (*ledger.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, "SELECT "+playerColumns+" FROM players WHERE name = ?", name)
	p, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &ledger.NotFoundError{Kind: "player", ID: name}
	}
	if err != nil {
		log.Error("Failed to query player by name", "error", err, "name", name)
		return nil, fmt.Errorf("database error: %w", err)
	}
	return p, nil
}

// CreatePlayer inserts a player. If another request created the same name
// first, the existing row is returned instead of a duplicate.
func (s *store) CreatePlayer(ctx context.Context, name string) (*ledger.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO players (id, name, created_at) VALUES (?, ?, ?) ON CONFLICT(name) DO NOTHING",
		uuid.NewString(), name, time.Now().UnixMilli())
	if err != nil {
		log.Error("Failed to add player", "error", err, "name", name)
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, "SELECT "+playerColumns+" FROM players WHERE name = ?", name)
	p, err := scanPlayer(row)
	if err != nil {
		return nil, fmt.Errorf("failed to read back player %s: %w", name, err)
	}
	log.Debug("Ensured player exists", "playerID", p.ID, "name", name)
	return p, nil
}

func (s *store) GetPlayer(ctx context.Context, playerID string) (*ledger.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, "SELECT "+playerColumns+" FROM players WHERE id = ?", playerID)
	p, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &ledger.NotFoundError{Kind: "player", ID: playerID}
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return p, nil
}

// GetPlayers returns the players with the given ids. Unknown ids are skipped.
func (s *store) GetPlayers(ctx context.Context, playerIDs []string) ([]ledger.Player, error) {
	if len(playerIDs) == 0 {
		return []ledger.Player{}, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(playerIDs)), ",")
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+playerColumns+" FROM players WHERE id IN ("+placeholders+")",
		ToAnySlice(playerIDs)...)
	if err != nil {
		log.Error("Failed to query players", "error", err)
		return nil, err
	}
	defer rows.Close()
	return collectPlayers(rows)
}

func (s *store) ListPlayers(ctx context.Context) ([]ledger.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT "+playerColumns+" FROM players ORDER BY name")
	if err != nil {
		log.Error("Failed to query all players", "error", err)
		return nil, err
	}
	defer rows.Close()
	return collectPlayers(rows)
}

func collectPlayers(rows *sql.Rows) ([]ledger.Player, error) {
	players := []ledger.Player{}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

func (s *store) SetNotificationToken(ctx context.Context, playerID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "UPDATE players SET notification_token = ? WHERE id = ?", token, playerID)
	if err != nil {
		log.Error("Failed to update notification token", "error", err, "playerID", playerID)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &ledger.NotFoundError{Kind: "player", ID: playerID}
	}
	return nil
}

const insertRecord = `
	INSERT INTO match_records (player_id, opponent, wins, losses, created_at, match_id)
	VALUES (?, ?, ?, ?, ?, ?)`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertRecordWith(ctx context.Context, ex execer, r *ledger.MatchRecord) error {
	var matchID any
	if r.MatchID != "" {
		matchID = r.MatchID
	}
	res, err := ex.ExecContext(ctx, insertRecord, r.PlayerID, r.Opponent, r.Wins, r.Losses, r.CreatedAt.UnixMilli(), matchID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	r.ID = id
	return nil
}

func (s *store) InsertMatchRecord(ctx context.Context, record *ledger.MatchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := insertRecordWith(ctx, s.db, record); err != nil {
		log.Error("Failed to insert match record", "error", err, "playerID", record.PlayerID)
		return err
	}
	return nil
}

// InsertMatchPair writes both sides of a match in one transaction.
func (s *store) InsertMatchPair(ctx context.Context, a, b *ledger.MatchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := insertRecordWith(ctx, tx, a); err != nil {
		tx.Rollback()
		log.Error("Failed to insert first match record", "error", err, "matchID", a.MatchID)
		return err
	}
	if err := insertRecordWith(ctx, tx, b); err != nil {
		tx.Rollback()
		log.Error("Failed to insert second match record", "error", err, "matchID", b.MatchID)
		return err
	}
	return tx.Commit()
}

// ListRecordsForPlayer returns a player's records, newest first.
func (s *store) ListRecordsForPlayer(ctx context.Context, playerID string) ([]ledger.MatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+recordColumns+" FROM match_records WHERE player_id = ? ORDER BY created_at DESC, id DESC",
		playerID)
	if err != nil {
		log.Error("Failed to query records", "error", err, "playerID", playerID)
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

// ListRecords returns every record in the club, newest first.
func (s *store) ListRecords(ctx context.Context) ([]ledger.MatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT "+recordColumns+" FROM match_records ORDER BY created_at DESC, id DESC")
	if err != nil {
		log.Error("Failed to query all records", "error", err)
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

func collectRecords(rows *sql.Rows) ([]ledger.MatchRecord, error) {
	records := []ledger.MatchRecord{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *r)
	}
	return records, rows.Err()
}

// DeleteRecord removes one record. The other side of the match is left alone.
func (s *store) DeleteRecord(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM match_records WHERE id = ?", id)
	if err != nil {
		log.Error("Failed to delete record", "error", err, "recordID", id)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &ledger.NotFoundError{Kind: "record", ID: strconv.FormatInt(id, 10)}
	}
	return nil
}

// DeleteAll clears every record and player.
func (s *store) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("Failed to begin transaction for clearing store", "error", err)
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM match_records"); err != nil {
		log.Error("Failed to clear match_records table", "error", err)
		tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM players"); err != nil {
		log.Error("Failed to clear players table", "error", err)
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing store", "error", err)
		return err
	}
	return nil
}

func ToAnySlice[T any](s []T) []any {
	a := make([]any, len(s))
	for i, v := range s {
		a[i] = v
	}
	return a
}
