package postgres

import (
	"context"

	"github.com/dom/bikeshare-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type rewardRepository struct {
	db *gorm.DB
}

func NewRewardRepository(db *gorm.DB) *rewardRepository {
	return &rewardRepository{db: db}
}

func (r *rewardRepository) GetByUserID(ctx context.Context, userID string) (*domain.RewardAccount, error) {
	var account domain.RewardAccount
	err := r.db.WithContext(ctx).First(&account, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// Credit is a single atomic upsert so two concurrent credits for the same
// user never lose an update.
func (r *rewardRepository) Credit(ctx context.Context, userID string, amount int64) error {
	account := domain.RewardAccount{UserID: userID, Points: amount}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"points": gorm.Expr("reward_accounts.points + excluded.points"),
		}),
	}).Create(&account).Error
}

func (r *rewardRepository) CreditExisting(ctx context.Context, userID string, amount int64) (bool, error) {
	result := r.db.WithContext(ctx).Model(&domain.RewardAccount{}).
		Where("user_id = ?", userID).
		Update("points", gorm.Expr("points + ?", amount))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
