package db

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sprintdeck/sprintdeck/internal/model"
)

// GetSetting returns nil when the key has never been written.
func GetSetting(key string) (*model.SettingItem, error) {
	var item model.SettingItem
	if err := db.Where("key = ?", key).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed get setting %s", key)
	}
	return &item, nil
}

func SaveSetting(item *model.SettingItem) error {
	return errors.WithStack(db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(item).Error)
}
