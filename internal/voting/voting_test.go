package voting

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/forum-backend/internal/models"
)

type targetKey struct {
	kind models.TargetKind
	id   uint
}

type voteKey struct {
	voter  uint
	target targetKey
}

// memStore is an in-memory Ledger + Targets pair for engine tests.
type memStore struct {
	scores  map[targetKey]int
	votes   map[voteKey]*models.Vote
	nextID  uint
	inserts int
	flips   int
}

func newMemStore() *memStore {
	return &memStore{
		scores: make(map[targetKey]int),
		votes:  make(map[voteKey]*models.Vote),
	}
}

func (m *memStore) addTarget(kind models.TargetKind, id uint) {
	m.scores[targetKey{kind, id}] = 0
}

func (m *memStore) Find(_ context.Context, voterID uint, kind models.TargetKind, targetID uint) (*models.Vote, error) {
	v := m.votes[voteKey{voterID, targetKey{kind, targetID}}]
	if v == nil {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (m *memStore) Insert(_ context.Context, vote *models.Vote) error {
	key := voteKey{vote.UserID, targetKey{vote.Kind, vote.TargetID}}
	if m.votes[key] != nil {
		return ErrDuplicate
	}
	m.nextID++
	vote.ID = m.nextID
	cp := *vote
	m.votes[key] = &cp
	m.inserts++
	return nil
}

func (m *memStore) Flip(_ context.Context, vote *models.Vote, voteType models.VoteType) error {
	m.votes[voteKey{vote.UserID, targetKey{vote.Kind, vote.TargetID}}].Type = voteType
	vote.Type = voteType
	m.flips++
	return nil
}

func (m *memStore) Exists(_ context.Context, kind models.TargetKind, targetID uint) (bool, error) {
	_, ok := m.scores[targetKey{kind, targetID}]
	return ok, nil
}

func (m *memStore) AddScore(_ context.Context, kind models.TargetKind, targetID uint, delta int) error {
	m.scores[targetKey{kind, targetID}] += delta
	return nil
}

func (m *memStore) score(kind models.TargetKind, id uint) int {
	return m.scores[targetKey{kind, id}]
}

// tally recomputes the score a target should have from the ledger.
func (m *memStore) tally(kind models.TargetKind, id uint) int {
	total := 0
	for _, v := range m.votes {
		if v.Kind == kind && v.TargetID == id {
			total += v.Type.Delta()
		}
	}
	return total
}

func TestCastVoteFirstVote(t *testing.T) {
	store := newMemStore()
	store.addTarget(models.TargetPost, 1)
	engine := NewEngine(store, store)
	ctx := context.Background()

	res, err := engine.CastVote(ctx, 10, models.TargetPost, 1, models.VoteUp)
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, 1, res.Delta)
	assert.Equal(t, 1, store.score(models.TargetPost, 1))

	res, err = engine.CastVote(ctx, 11, models.TargetPost, 1, models.VoteDown)
	require.NoError(t, err)
	assert.Equal(t, -1, res.Delta)
	assert.Equal(t, 0, store.score(models.TargetPost, 1))
}

func TestCastVoteSameTypeRejected(t *testing.T) {
	store := newMemStore()
	store.addTarget(models.TargetComment, 5)
	engine := NewEngine(store, store)
	ctx := context.Background()

	_, err := engine.CastVote(ctx, 10, models.TargetComment, 5, models.VoteUp)
	require.NoError(t, err)

	_, err = engine.CastVote(ctx, 10, models.TargetComment, 5, models.VoteUp)
	assert.ErrorIs(t, err, ErrAlreadyVoted)
	assert.Equal(t, 1, store.score(models.TargetComment, 5), "rejected vote must not move the score")
	assert.Equal(t, 1, store.inserts)
	assert.Equal(t, 0, store.flips)
}

func TestCastVoteFlipDeltas(t *testing.T) {
	store := newMemStore()
	store.addTarget(models.TargetPost, 1)
	engine := NewEngine(store, store)
	ctx := context.Background()

	_, err := engine.CastVote(ctx, 10, models.TargetPost, 1, models.VoteDown)
	require.NoError(t, err)
	assert.Equal(t, -1, store.score(models.TargetPost, 1))

	// down -> up moves the score by exactly +2.
	res, err := engine.CastVote(ctx, 10, models.TargetPost, 1, models.VoteUp)
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, 2, res.Delta)
	assert.Equal(t, 1, store.score(models.TargetPost, 1))

	// up -> down moves it by exactly -2.
	res, err = engine.CastVote(ctx, 10, models.TargetPost, 1, models.VoteDown)
	require.NoError(t, err)
	assert.Equal(t, -2, res.Delta)
	assert.Equal(t, -1, store.score(models.TargetPost, 1))

	// Still a single ledger row after two flips.
	assert.Equal(t, 1, store.inserts)
	assert.Equal(t, 2, store.flips)
}

func TestCastVoteMissingTarget(t *testing.T) {
	store := newMemStore()
	engine := NewEngine(store, store)

	_, err := engine.CastVote(context.Background(), 10, models.TargetPost, 99, models.VoteUp)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCastVoteDuplicateInsertRace(t *testing.T) {
	store := newMemStore()
	store.addTarget(models.TargetPost, 1)
	ctx := context.Background()

	// Simulate the losing half of two identical concurrent requests:
	// the other request's row lands between our Find and Insert.
	require.NoError(t, store.Insert(ctx, &models.Vote{
		UserID: 10, Kind: models.TargetPost, TargetID: 1, Type: models.VoteUp,
	}))
	store.AddScore(ctx, models.TargetPost, 1, 1)

	raced := &racingLedger{memStore: store}
	_, err := NewEngine(raced, store).CastVote(ctx, 10, models.TargetPost, 1, models.VoteUp)
	assert.ErrorIs(t, err, ErrAlreadyVoted)
	assert.Equal(t, 1, store.score(models.TargetPost, 1), "losing request must not double-count")
}

// racingLedger reports no prior vote so the engine proceeds to Insert
// and hits the uniqueness rejection.
type racingLedger struct {
	*memStore
}

func (r *racingLedger) Find(context.Context, uint, models.TargetKind, uint) (*models.Vote, error) {
	return nil, nil
}

// The walkthrough from the design notes: A's post is voted on by B
// twice (second rejected), then flipped, then voted on by C.
func TestCastVoteScenario(t *testing.T) {
	store := newMemStore()
	store.addTarget(models.TargetPost, 1)
	engine := NewEngine(store, store)
	ctx := context.Background()

	_, err := engine.CastVote(ctx, 2, models.TargetPost, 1, models.VoteUp)
	require.NoError(t, err)
	assert.Equal(t, 1, store.score(models.TargetPost, 1))

	_, err = engine.CastVote(ctx, 2, models.TargetPost, 1, models.VoteUp)
	assert.ErrorIs(t, err, ErrAlreadyVoted)
	assert.Equal(t, 1, store.score(models.TargetPost, 1))

	_, err = engine.CastVote(ctx, 2, models.TargetPost, 1, models.VoteDown)
	require.NoError(t, err)
	assert.Equal(t, -1, store.score(models.TargetPost, 1))

	_, err = engine.CastVote(ctx, 3, models.TargetPost, 1, models.VoteUp)
	require.NoError(t, err)
	assert.Equal(t, 0, store.score(models.TargetPost, 1))

	// Score always equals the ledger tally once writes settle.
	assert.Equal(t, store.tally(models.TargetPost, 1), store.score(models.TargetPost, 1))
}

func TestHasVoted(t *testing.T) {
	store := newMemStore()
	store.addTarget(models.TargetPost, 1)
	store.addTarget(models.TargetComment, 1)
	engine := NewEngine(store, store)
	ctx := context.Background()

	status, err := engine.HasVoted(ctx, 10, models.TargetPost, 1)
	require.NoError(t, err)
	assert.False(t, status.Voted)

	_, err = engine.CastVote(ctx, 10, models.TargetPost, 1, models.VoteDown)
	require.NoError(t, err)

	status, err = engine.HasVoted(ctx, 10, models.TargetPost, 1)
	require.NoError(t, err)
	assert.True(t, status.Voted)
	assert.Equal(t, models.VoteDown, status.Type)

	// A post vote is not a comment vote on the same numeric id.
	status, err = engine.HasVoted(ctx, 10, models.TargetComment, 1)
	require.NoError(t, err)
	assert.False(t, status.Voted)

	_, err = engine.HasVoted(ctx, 10, models.TargetPost, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}
