package identity

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peeves/backend/internal/domain/identity"
	"github.com/peeves/backend/internal/domain/shared"
)

// AccountService handles profile reads/updates and the admin claim
type AccountService struct {
	userRepo       identity.UserRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewAccountService creates a new AccountService
func NewAccountService(userRepo identity.UserRepository, logger *zap.Logger) *AccountService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *AccountService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// GetProfile returns the account of the given user
func (s *AccountService) GetProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// UpdateProfile updates the shipping profile; the email never changes
func (s *AccountService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := user.UpdateProfile(req.FirstName, req.Address, req.PostalCode, req.City); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	return ToUserResponse(user), nil
}

// SetAdminByEmail flips the admin claim on the account with the given
// email. Existing sessions keep their old claim until the next login.
func (s *AccountService) SetAdminByEmail(ctx context.Context, req SetAdminRequest) (*UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	user.SetAdmin(req.Enabled)

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, user)
	s.logger.Info("admin claim changed",
		zap.String("user_id", user.ID.String()),
		zap.Bool("admin", req.Enabled),
	)

	return ToUserResponse(user), nil
}

func (s *AccountService) publishEvents(ctx context.Context, user *identity.User) {
	if s.eventPublisher == nil {
		return
	}
	events := user.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish identity events", zap.Error(err))
	}
	user.ClearDomainEvents()
}
