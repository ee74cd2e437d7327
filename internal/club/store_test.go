package club_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/heonampyo/TennisTracker/internal/club"
	"github.com/heonampyo/TennisTracker/internal/database"
	"github.com/heonampyo/TennisTracker/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (club.ClubStore, *sql.DB, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	return club.New(db), db, teardown
}

func TestCreateAndFindPlayer(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	_, err := store.FindPlayerByName(ctx, "Kim")
	var nf *ledger.NotFoundError
	require.ErrorAs(t, err, &nf)

	created, err := store.CreatePlayer(ctx, "Kim")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Kim", created.Name)

	found, err := store.FindPlayerByName(ctx, "Kim")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	t.Run("lookup is case sensitive", func(t *testing.T) {
		_, err := store.FindPlayerByName(ctx, "kim")
		assert.ErrorAs(t, err, &nf)
	})

	t.Run("creating an existing name returns the same player", func(t *testing.T) {
		again, err := store.CreatePlayer(ctx, "Kim")
		require.NoError(t, err)
		assert.Equal(t, created.ID, again.ID)

		players, err := store.ListPlayers(ctx)
		require.NoError(t, err)
		assert.Len(t, players, 1)
	})
}

func TestGetPlayers(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	kim, err := store.CreatePlayer(ctx, "Kim")
	require.NoError(t, err)
	_, err = store.CreatePlayer(ctx, "Lee")
	require.NoError(t, err)
	park, err := store.CreatePlayer(ctx, "Park")
	require.NoError(t, err)

	t.Run("gets multiple players", func(t *testing.T) {
		players, err := store.GetPlayers(ctx, []string{kim.ID, park.ID, "missing"})
		require.NoError(t, err)
		require.Len(t, players, 2)

		byID := make(map[string]ledger.Player)
		for _, p := range players {
			byID[p.ID] = p
		}
		assert.Equal(t, "Kim", byID[kim.ID].Name)
		assert.Equal(t, "Park", byID[park.ID].Name)
	})

	t.Run("returns empty slice for empty id slice", func(t *testing.T) {
		players, err := store.GetPlayers(ctx, []string{})
		require.NoError(t, err)
		assert.Len(t, players, 0)
	})

	t.Run("get single player", func(t *testing.T) {
		p, err := store.GetPlayer(ctx, kim.ID)
		require.NoError(t, err)
		assert.Equal(t, "Kim", p.Name)

		_, err = store.GetPlayer(ctx, "missing")
		var nf *ledger.NotFoundError
		assert.ErrorAs(t, err, &nf)
	})
}

func TestInsertMatchPairAndList(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	kim, err := store.CreatePlayer(ctx, "Kim")
	require.NoError(t, err)
	lee, err := store.CreatePlayer(ctx, "Lee")
	require.NoError(t, err)

	at := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	a := &ledger.MatchRecord{PlayerID: kim.ID, Opponent: "Lee", Wins: 1, CreatedAt: at, MatchID: "m1"}
	b := &ledger.MatchRecord{PlayerID: lee.ID, Opponent: "Kim", Losses: 1, CreatedAt: at, MatchID: "m1"}
	require.NoError(t, store.InsertMatchPair(ctx, a, b))
	assert.NotZero(t, a.ID)
	assert.NotZero(t, b.ID)
	assert.NotEqual(t, a.ID, b.ID)

	kimRecords, err := store.ListRecordsForPlayer(ctx, kim.ID)
	require.NoError(t, err)
	require.Len(t, kimRecords, 1)
	assert.Equal(t, *a, kimRecords[0])

	all, err := store.ListRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestInsertMatchPair_RollsBackOnFailure(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	kim, err := store.CreatePlayer(ctx, "Kim")
	require.NoError(t, err)

	a := &ledger.MatchRecord{PlayerID: kim.ID, Opponent: "Ghost", Wins: 1, CreatedAt: time.Now(), MatchID: "m1"}
	// The second side references a player that does not exist.
	b := &ledger.MatchRecord{PlayerID: "ghost", Opponent: "Kim", Losses: 1, CreatedAt: time.Now(), MatchID: "m1"}
	require.Error(t, store.InsertMatchPair(ctx, a, b))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM match_records").Scan(&count))
	assert.Equal(t, 0, count, "neither side should be persisted")
}

func TestDeleteRecord(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	kim, err := store.CreatePlayer(ctx, "Kim")
	require.NoError(t, err)
	lee, err := store.CreatePlayer(ctx, "Lee")
	require.NoError(t, err)
	a := &ledger.MatchRecord{PlayerID: kim.ID, Opponent: "Lee", Wins: 1, CreatedAt: time.Now(), MatchID: "m1"}
	b := &ledger.MatchRecord{PlayerID: lee.ID, Opponent: "Kim", Losses: 1, CreatedAt: time.Now(), MatchID: "m1"}
	require.NoError(t, store.InsertMatchPair(ctx, a, b))

	require.NoError(t, store.DeleteRecord(ctx, a.ID))

	kimRecords, err := store.ListRecordsForPlayer(ctx, kim.ID)
	require.NoError(t, err)
	assert.Empty(t, kimRecords)

	leeRecords, err := store.ListRecordsForPlayer(ctx, lee.ID)
	require.NoError(t, err)
	assert.Len(t, leeRecords, 1, "deleting one side must not cascade to the other")

	err = store.DeleteRecord(ctx, a.ID)
	var nf *ledger.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestDeleteAll(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	kim, err := store.CreatePlayer(ctx, "Kim")
	require.NoError(t, err)
	require.NoError(t, store.InsertMatchRecord(ctx, &ledger.MatchRecord{PlayerID: kim.ID, Opponent: "Lee", Wins: 1, CreatedAt: time.Now()}))

	require.NoError(t, store.DeleteAll(ctx))

	players, err := store.ListPlayers(ctx)
	require.NoError(t, err)
	assert.Empty(t, players)
	records, err := store.ListRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSetNotificationToken(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	kim, err := store.CreatePlayer(ctx, "Kim")
	require.NoError(t, err)

	require.NoError(t, store.SetNotificationToken(ctx, kim.ID, "U123"))
	p, err := store.GetPlayer(ctx, kim.ID)
	require.NoError(t, err)
	assert.Equal(t, "U123", p.NotificationToken)

	err = store.SetNotificationToken(ctx, "missing", "U999")
	var nf *ledger.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestRecorderAgainstStore(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	recA, recB, err := ledger.NewRecorder(store).RecordResult(ctx, "Kim", "Lee", ledger.BWins)
	require.NoError(t, err)

	kim, err := store.FindPlayerByName(ctx, "Kim")
	require.NoError(t, err)
	records, err := store.ListRecordsForPlayer(ctx, kim.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, recA.ID, records[0].ID)
	assert.Equal(t, 1, records[0].Losses)
	assert.Equal(t, recB.MatchID, records[0].MatchID)
}
