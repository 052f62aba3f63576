package models

import "time"

// TargetKind tags which collection a vote points at. A vote references
// exactly one post or one comment, never both, so the target is the
// pair (Kind, TargetID) instead of two nullable foreign keys.
type TargetKind string

const (
	TargetPost    TargetKind = "post"
	TargetComment TargetKind = "comment"
)

func (k TargetKind) Valid() bool {
	return k == TargetPost || k == TargetComment
}

// VoteType is the direction of a vote.
type VoteType string

const (
	VoteUp   VoteType = "up"
	VoteDown VoteType = "down"
)

func (t VoteType) Valid() bool {
	return t == VoteUp || t == VoteDown
}

// Delta is the score contribution of a fresh vote of this type.
func (t VoteType) Delta() int {
	if t == VoteUp {
		return 1
	}
	return -1
}

// Vote is the ledger record: at most one row per (voter, target). The
// unique index backs up the engine's lookup-before-insert check so two
// racing identical requests cannot both land.
type Vote struct {
	ID       uint       `gorm:"primaryKey" json:"_id"`
	UserID   uint       `gorm:"uniqueIndex:idx_votes_voter_target" json:"user_id"`
	Kind     TargetKind `gorm:"uniqueIndex:idx_votes_voter_target" json:"kind"`
	TargetID uint       `gorm:"uniqueIndex:idx_votes_voter_target" json:"target_id"`
	Type     VoteType   `json:"type"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CastVoteRequest struct {
	Type VoteType `json:"type" binding:"required,oneof=up down"`
}

type HasVotedRequest struct {
	Type TargetKind `json:"type" binding:"required,oneof=post comment"`
}
