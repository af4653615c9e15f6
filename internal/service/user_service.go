package service

import (
	"github.com/google/uuid"

	"github.com/finpal/finpal-backend/internal/localization"
	"github.com/finpal/finpal-backend/internal/model"
	"github.com/finpal/finpal-backend/internal/repository"
)

// UserService handles user provisioning. Authentication lives outside this
// service; here a user is just a row with seeded context blobs.
type UserService struct {
	userRepo     *repository.UserRepository
	localization localization.Config
}

// NewUserService creates a new UserService with the provided dependencies.
func NewUserService(userRepo *repository.UserRepository, loc localization.Config) *UserService {
	return &UserService{
		userRepo:     userRepo,
		localization: loc,
	}
}

// CreateUser provisions a user with a profile seeded from the localization
// defaults for the declared country. Location-aware budgeting starts
// opted-out.
func (s *UserService) CreateUser(email, countryCode, city string) (model.User, error) {
	profile := s.localization.ApplyProfileDefaults(model.Profile{
		Preferences: model.Preferences{LocationBudgetingEnabled: false},
		Location: model.Location{
			CountryCode: countryCode,
			City:        city,
		},
	})

	user := model.User{
		ID:    uuid.New().String(),
		Email: email,
	}

	if err := s.userRepo.CreateUser(user, profile); err != nil {
		return model.User{}, err
	}

	return s.userRepo.GetUser(user.ID)
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(userID string) (model.User, error) {
	return s.userRepo.GetUser(userID)
}
