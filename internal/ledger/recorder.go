package ledger

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

type uuidGenerator struct{}

func (uuidGenerator) NewID() string { return uuid.NewString() }

// Recorder turns a reported result into the two records that keep both
// players' histories in step.
type Recorder struct {
	store Store
	clock Clock
	ids   IDGenerator
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithClock overrides the time source used for CreatedAt.
func WithClock(c Clock) Option {
	return func(r *Recorder) { r.clock = c }
}

// WithIDGenerator overrides the match identifier source.
func WithIDGenerator(g IDGenerator) Option {
	return func(r *Recorder) { r.ids = g }
}

// NewRecorder creates a Recorder backed by store.
func NewRecorder(store Store, opts ...Option) *Recorder {
	r := &Recorder{
		store: store,
		clock: SystemClock{},
		ids:   uuidGenerator{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NormalizeName trims a player name and rejects empty names or names with
// inner whitespace.
func NormalizeName(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &ValidationError{Field: field, Reason: "must not be empty"}
	}
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return "", &ValidationError{Field: field, Reason: "must not contain whitespace"}
	}
	return name, nil
}

// RecordResult persists one match between playerA and playerB and returns
// the record written for each side.
//
// When the store is a PairWriter both records land in one transaction.
// Otherwise they are written one after the other and a failure of the second
// write leaves the first in place.
func (r *Recorder) RecordResult(ctx context.Context, playerA, playerB string, outcome Outcome) (*MatchRecord, *MatchRecord, error) {
	nameA, err := NormalizeName("player1Name", playerA)
	if err != nil {
		return nil, nil, err
	}
	nameB, err := NormalizeName("player2Name", playerB)
	if err != nil {
		return nil, nil, err
	}
	if nameA == nameB {
		return nil, nil, &ValidationError{Field: "player2Name", Reason: "a player cannot play themselves"}
	}
	if outcome != AWins && outcome != BWins {
		return nil, nil, &ValidationError{Field: "outcome", Reason: "must be A_WINS or B_WINS"}
	}

	a, err := r.findOrCreatePlayer(ctx, nameA)
	if err != nil {
		return nil, nil, err
	}
	b, err := r.findOrCreatePlayer(ctx, nameB)
	if err != nil {
		return nil, nil, err
	}

	matchID := r.ids.NewID()
	now := r.clock.Now().UTC()
	recA := &MatchRecord{PlayerID: a.ID, Opponent: b.Name, CreatedAt: now, MatchID: matchID}
	recB := &MatchRecord{PlayerID: b.ID, Opponent: a.Name, CreatedAt: now, MatchID: matchID}
	if outcome == AWins {
		recA.Wins, recB.Losses = 1, 1
	} else {
		recA.Losses, recB.Wins = 1, 1
	}

	if pw, ok := r.store.(PairWriter); ok {
		if err := pw.InsertMatchPair(ctx, recA, recB); err != nil {
			return nil, nil, &PersistenceError{Op: "insert match pair", Err: err}
		}
	} else {
		if err := r.store.InsertMatchRecord(ctx, recA); err != nil {
			return nil, nil, &PersistenceError{Op: "insert record for " + a.Name, Err: err}
		}
		if err := r.store.InsertMatchRecord(ctx, recB); err != nil {
			log.Warn("Second half of match failed to persist; first record remains", "matchID", matchID, "player", a.Name)
			return nil, nil, &PersistenceError{Op: "insert record for " + b.Name, Err: err}
		}
	}

	log.Info("Recorded match", "matchID", matchID, "player1", a.Name, "player2", b.Name, "outcome", outcome)
	return recA, recB, nil
}

func (r *Recorder) findOrCreatePlayer(ctx context.Context, name string) (*Player, error) {
	p, err := r.store.FindPlayerByName(ctx, name)
	if err == nil {
		return p, nil
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		return nil, &PersistenceError{Op: "find player " + name, Err: err}
	}
	p, err = r.store.CreatePlayer(ctx, name)
	if err != nil {
		return nil, &PersistenceError{Op: "create player " + name, Err: err}
	}
	log.Info("Created new player", "playerID", p.ID, "name", p.Name)
	return p, nil
}
