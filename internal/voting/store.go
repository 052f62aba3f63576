package voting

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/emilythestrangee/forum-backend/internal/models"
)

// Store backs both the Ledger and Targets interfaces with gorm.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Find(ctx context.Context, voterID uint, kind models.TargetKind, targetID uint) (*models.Vote, error) {
	var vote models.Vote
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND kind = ? AND target_id = ?", voterID, kind, targetID).
		First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

func (s *Store) Insert(ctx context.Context, vote *models.Vote) error {
	err := s.db.WithContext(ctx).Create(vote).Error
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (s *Store) Flip(ctx context.Context, vote *models.Vote, voteType models.VoteType) error {
	err := s.db.WithContext(ctx).
		Model(&models.Vote{}).
		Where("id = ?", vote.ID).
		Update("type", voteType).Error
	if err != nil {
		return err
	}
	vote.Type = voteType
	return nil
}

func (s *Store) Exists(ctx context.Context, kind models.TargetKind, targetID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(s.model(kind)).
		Where("id = ?", targetID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AddScore runs the increment inside UPDATE so concurrent votes on the
// same target never lose each other's delta. UpdateColumn skips gorm's
// updated_at tracking: a score change is not an edit.
func (s *Store) AddScore(ctx context.Context, kind models.TargetKind, targetID uint, delta int) error {
	return s.db.WithContext(ctx).
		Model(s.model(kind)).
		Where("id = ?", targetID).
		UpdateColumn("score", gorm.Expr("score + ?", delta)).Error
}

func (s *Store) model(kind models.TargetKind) interface{} {
	if kind == models.TargetComment {
		return &models.Comment{}
	}
	return &models.Post{}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
