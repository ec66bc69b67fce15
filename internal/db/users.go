package db

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/sprintdeck/sprintdeck/internal/errs"
	"github.com/sprintdeck/sprintdeck/internal/model"
)

func ListUsers() ([]model.User, error) {
	var users []model.User
	err := db.Order("id ASC").Find(&users).Error
	return users, errors.WithStack(err)
}

func GetUser(id uint) (*model.User, error) {
	var u model.User
	if err := db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithStack(errs.UserNotFound)
		}
		return nil, errors.Wrapf(err, "failed get user %d", id)
	}
	return &u, nil
}

func GetUserByEmail(email string) (*model.User, error) {
	var u model.User
	if err := db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithStack(errs.UserNotFound)
		}
		return nil, errors.Wrapf(err, "failed get user %s", email)
	}
	return &u, nil
}

func CreateUser(u *model.User) error {
	return errors.WithStack(db.Create(u).Error)
}
