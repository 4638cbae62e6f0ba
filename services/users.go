package services

import (
	"context"
	"errors"
	"log"

	"github.com/Kariqs/kartdaily-api/apperrors"
	"github.com/Kariqs/kartdaily-api/models"
	"github.com/Kariqs/kartdaily-api/store"
	"github.com/Kariqs/kartdaily-api/utils"
)

const (
	msgUserExists         = "User already exists"
	msgInvalidCredentials = "Invalid credentials"
	msgUserNotFound       = "User not found"
	msgEmailInUse         = "Email already in use"
)

type UserService struct {
	users    store.UserStore
	orders   store.OrderStore
	tokens   *utils.TokenManager
	notifier Notifier
}

func NewUserService(users store.UserStore, orders store.OrderStore, tokens *utils.TokenManager, notifier Notifier) *UserService {
	return &UserService{users: users, orders: orders, tokens: tokens, notifier: notifier}
}

func (s *UserService) authResponse(user *models.User) (*models.AuthResponse, error) {
	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, apperrors.Internal("Failed to generate token", err)
	}
	return &models.AuthResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
		Token:   token,
	}, nil
}

func (s *UserService) lookup(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFound(msgUserNotFound)
	}
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch user", err)
	}
	return user, nil
}

func (s *UserService) save(ctx context.Context, user *models.User) error {
	err := s.users.Update(ctx, user)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrDuplicate):
		return apperrors.Validation(msgEmailInUse)
	case errors.Is(err, store.ErrNotFound):
		return apperrors.NotFound(msgUserNotFound)
	default:
		return apperrors.Internal("Failed to update user", err)
	}
}

func (s *UserService) Register(ctx context.Context, data models.RegisterData) (*models.AuthResponse, error) {
	if _, err := s.users.FindByEmail(ctx, data.Email); err == nil {
		return nil, apperrors.Validation(msgUserExists)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.Internal("Failed to check user", err)
	}

	hashedPassword, err := utils.HashPassword(data.Password)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password", err)
	}

	user := &models.User{Name: data.Name, Email: data.Email, Password: hashedPassword}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperrors.Validation(msgUserExists)
		}
		return nil, apperrors.Internal("Invalid user data", err)
	}

	s.notifier.NotifyRegistered(*user)
	return s.authResponse(user)
}

func (s *UserService) Login(ctx context.Context, data models.LoginData) (*models.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, data.Email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Println("Database error during login:", err)
		}
		return nil, apperrors.Unauthenticated(msgInvalidCredentials)
	}
	if err := utils.ComparePasswords(user.Password, data.Password); err != nil {
		return nil, apperrors.Unauthenticated(msgInvalidCredentials)
	}
	return s.authResponse(user)
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.lookup(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch users", err)
	}
	return users, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id string, update models.ProfileUpdate) (*models.AuthResponse, error) {
	user, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != "" {
		user.Name = update.Name
	}
	if update.Email != "" {
		user.Email = update.Email
	}
	if update.Password != "" {
		hashedPassword, err := utils.HashPassword(update.Password)
		if err != nil {
			return nil, apperrors.Internal("Failed to hash password", err)
		}
		user.Password = hashedPassword
	}

	if err := s.save(ctx, user); err != nil {
		return nil, err
	}
	return s.authResponse(user)
}

func (s *UserService) Update(ctx context.Context, id string, update models.UserUpdate) (*models.User, error) {
	user, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != "" {
		user.Name = update.Name
	}
	if update.Email != "" {
		user.Email = update.Email
	}
	if update.IsAdmin != nil {
		user.IsAdmin = *update.IsAdmin
	}

	if err := s.save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the user's orders first, then the user. The orders are gone
// even when the user record itself was already missing.
func (s *UserService) Delete(ctx context.Context, id string) error {
	deleted, err := s.orders.DeleteByUser(ctx, id)
	if err != nil {
		return apperrors.Internal("Failed to delete user orders", err)
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound(msgUserNotFound)
		}
		return apperrors.Internal("Failed to delete user", err)
	}

	log.Printf("Deleted user %s and %d orders", id, deleted)
	return nil
}
