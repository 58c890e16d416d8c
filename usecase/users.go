package usecase

import (
	"context"
	"errors"
	"time"

	"main/model"
	"main/repository"
	"main/services"
	"main/utils"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")
)

type UserService struct {
	UsersRepo *repository.UserRepo
}

func NewUserService(repo *repository.UserRepo) *UserService {
	return &UserService{UsersRepo: repo}
}

// CreateUser validates the registration payload, hashes the password and
// inserts the user. Uniqueness is enforced by the unique indexes on
// username and email; a duplicate key surfaces as ErrUsernameTaken or
// ErrEmailTaken.
func (svc *UserService) CreateUser(ctx context.Context, user *model.User) error {
	if err := utils.Validate.Struct(user); err != nil {
		return err
	}

	existing, err := svc.UsersRepo.FindUserByUsername(ctx, user.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrUsernameTaken
	}

	hashed, err := services.HashPassword(user.Password)
	if err != nil {
		return err
	}
	user.Password = hashed

	if user.UserID == "" {
		user.UserID = utils.GenerateID()
	}
	user.CreatedAt = time.Now()

	if err := svc.UsersRepo.AddUser(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(errors.Unwrap(err)) || mongo.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

// FindUserByUsername returns nil when no such user exists.
func (svc *UserService) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return svc.UsersRepo.FindUserByUsername(ctx, username)
}

// FindUser returns nil when no such user exists.
func (svc *UserService) FindUser(ctx context.Context, userID string) (*model.User, error) {
	return svc.UsersRepo.FindUser(ctx, userID)
}

// ChangePassword verifies the current password before replacing it. The
// new password must satisfy the registration password rules.
func (svc *UserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := svc.UsersRepo.FindUser(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return repository.ErrUserNotFound
	}

	ok, err := services.VerifyPassword(user.Password, currentPassword)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("current password is incorrect")
	}

	if !utils.ValidatePassword(newPassword) {
		return errors.New("new password does not meet requirements")
	}

	hashed, err := services.HashPassword(newPassword)
	if err != nil {
		return err
	}

	_, err = svc.UsersRepo.UpdateUserPassword(ctx, userID, hashed)
	return err
}

func (svc *UserService) DeleteUser(ctx context.Context, userID string) error {
	count, err := svc.UsersRepo.DeleteUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if count == 0 {
		return repository.ErrUserNotFound
	}
	return nil
}
