// Package voting implements vote reconciliation: one ledger record per
// (voter, target), with score deltas applied to the voted content as
// atomic increments. A fresh vote moves the score by ±1; changing an
// existing vote to the opposite type moves it by ±2, the combined
// effect of removing the old contribution and adding the new one.
package voting

import (
	"context"
	"errors"

	"github.com/emilythestrangee/forum-backend/internal/models"
)

var (
	// ErrNotFound means the voted post or comment does not exist.
	ErrNotFound = errors.New("voting: target not found")
	// ErrAlreadyVoted means the voter already holds a vote of the
	// requested type on this target.
	ErrAlreadyVoted = errors.New("voting: already voted")
	// ErrDuplicate is returned by a Ledger when an insert loses the
	// race against an identical concurrent vote.
	ErrDuplicate = errors.New("voting: duplicate ledger entry")
)

// Ledger is the collection of vote records.
type Ledger interface {
	// Find returns the voter's vote on the target, or (nil, nil)
	// when none exists.
	Find(ctx context.Context, voterID uint, kind models.TargetKind, targetID uint) (*models.Vote, error)
	// Insert stores a new vote. Returns ErrDuplicate if a vote for
	// the same (voter, target) already landed.
	Insert(ctx context.Context, vote *models.Vote) error
	// Flip changes an existing vote's type in place.
	Flip(ctx context.Context, vote *models.Vote, voteType models.VoteType) error
}

// Targets is the content store the engine adjusts scores against.
type Targets interface {
	Exists(ctx context.Context, kind models.TargetKind, targetID uint) (bool, error)
	// AddScore applies delta to the target's score as an atomic
	// store-side increment, leaving its updated_at untouched.
	AddScore(ctx context.Context, kind models.TargetKind, targetID uint, delta int) error
}

// Result reports what a cast did to the ledger and the target score.
type Result struct {
	Created bool `json:"created"`
	Delta   int  `json:"delta"`
}

// Status is the answer to a hasVoted query.
type Status struct {
	Voted bool
	Type  models.VoteType
}

type Engine struct {
	ledger  Ledger
	targets Targets
}

func NewEngine(ledger Ledger, targets Targets) *Engine {
	return &Engine{ledger: ledger, targets: targets}
}

// CastVote records voterID's vote on the target, creating or flipping
// the ledger entry and adjusting the target's score by the matching
// delta. Repeating an identical vote is rejected with ErrAlreadyVoted
// and changes nothing.
//
// The ledger write and the score increment are two independent store
// calls; if the increment fails after the ledger write succeeded, the
// error is returned and the inconsistency is not compensated.
func (e *Engine) CastVote(ctx context.Context, voterID uint, kind models.TargetKind, targetID uint, voteType models.VoteType) (Result, error) {
	if !kind.Valid() {
		return Result{}, errors.New("voting: invalid target kind")
	}
	if !voteType.Valid() {
		return Result{}, errors.New("voting: invalid vote type")
	}

	ok, err := e.targets.Exists(ctx, kind, targetID)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{}, ErrNotFound
	}

	prior, err := e.ledger.Find(ctx, voterID, kind, targetID)
	if err != nil {
		return Result{}, err
	}

	if prior != nil {
		if prior.Type == voteType {
			return Result{}, ErrAlreadyVoted
		}

		// Opposite type: the score moves by twice the new vote's
		// contribution. Score first, then the ledger flip, matching
		// the reconciliation order for changed votes.
		delta := 2 * voteType.Delta()
		if err := e.targets.AddScore(ctx, kind, targetID, delta); err != nil {
			return Result{}, err
		}
		if err := e.ledger.Flip(ctx, prior, voteType); err != nil {
			return Result{}, err
		}
		return Result{Delta: delta}, nil
	}

	vote := &models.Vote{
		UserID:   voterID,
		Kind:     kind,
		TargetID: targetID,
		Type:     voteType,
	}
	if err := e.ledger.Insert(ctx, vote); err != nil {
		// A concurrent identical request beat us past the Find
		// above; treat it like any other repeated vote.
		if errors.Is(err, ErrDuplicate) {
			return Result{}, ErrAlreadyVoted
		}
		return Result{}, err
	}

	if err := e.targets.AddScore(ctx, kind, targetID, vote.Type.Delta()); err != nil {
		return Result{}, err
	}

	return Result{Created: true, Delta: vote.Type.Delta()}, nil
}

// HasVoted reports whether voterID has a vote on the target and of
// which type. Pure read, no side effects.
func (e *Engine) HasVoted(ctx context.Context, voterID uint, kind models.TargetKind, targetID uint) (Status, error) {
	if !kind.Valid() {
		return Status{}, errors.New("voting: invalid target kind")
	}

	ok, err := e.targets.Exists(ctx, kind, targetID)
	if err != nil {
		return Status{}, err
	}
	if !ok {
		return Status{}, ErrNotFound
	}

	vote, err := e.ledger.Find(ctx, voterID, kind, targetID)
	if err != nil {
		return Status{}, err
	}
	if vote == nil {
		return Status{}, nil
	}
	return Status{Voted: true, Type: vote.Type}, nil
}
