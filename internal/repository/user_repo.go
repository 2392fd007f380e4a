package repository

import (
	"go-stockledger/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByUserName(userName string) (*model.User, error)
	FindByAccountName(accountName string) (*model.User, error)
	FindByIdentity(userName, accountName string) (*model.User, error)
	FindAll() ([]model.User, error)
	UpdatePassword(userID uint, hashedPassword string) error
	UpdateTokenVersion(userID uint, version string) error
	Delete(id uint) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db}
}

func (r *userRepo) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepo) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, "user_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindByUserName(userName string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("user_name = ?", userName).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindByAccountName(accountName string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("account_name = ?", accountName).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindByIdentity(userName, accountName string) (*model.User, error) {
	var user model.User
	err := r.db.
		Where("user_name = ? AND account_name = ?", userName, accountName).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindAll() ([]model.User, error) {
	var users []model.User
	if err := r.db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) UpdatePassword(userID uint, hashedPassword string) error {
	return r.db.Model(&model.User{}).Where("user_id = ?", userID).Update("password", hashedPassword).Error
}

func (r *userRepo) UpdateTokenVersion(userID uint, version string) error {
	return r.db.Model(&model.User{}).Where("user_id = ?", userID).Update("token_version", version).Error
}

func (r *userRepo) Delete(id uint) error {
	return r.db.Delete(&model.User{}, "user_id = ?", id).Error
}
