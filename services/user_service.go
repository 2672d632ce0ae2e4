package services

import (
	"context"

	"go.uber.org/zap"

	"restock-backend/models"
	"restock-backend/repository"
)

// UserService manages per-user reorder preferences. Unknown users get
// defaults on first read.
type UserService struct {
	repo   repository.PreferencesRepository
	logger *zap.Logger
}

// NewUserService creates a UserService.
func NewUserService(repo repository.PreferencesRepository, logger *zap.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// GetPreferences returns the user's preferences, creating defaults when the
// user is unknown.
func (s *UserService) GetPreferences(ctx context.Context, userID string) (*models.UserPreferences, *ServiceError) {
	prefs, err := s.repo.Get(ctx, userID)
	if err != nil {
		s.logger.Error("preferences read failed", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to load preferences"}
	}
	if prefs == nil {
		prefs = models.DefaultPreferences(userID)
		if err := s.repo.Save(ctx, prefs); err != nil {
			s.logger.Warn("default preferences write failed", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return prefs, nil
}

// UpdatePreferences applies a partial update and returns the result.
func (s *UserService) UpdatePreferences(ctx context.Context, userID string, req models.UpdatePreferencesRequest) (*models.UserPreferences, *ServiceError) {
	prefs, svcErr := s.GetPreferences(ctx, userID)
	if svcErr != nil {
		return nil, svcErr
	}

	if req.AutoReorderEnabled != nil {
		prefs.AutoReorderEnabled = *req.AutoReorderEnabled
	}
	if req.PreferredVendor != nil {
		prefs.PreferredVendor = *req.PreferredVendor
	}
	if req.NotificationThreshold != nil {
		prefs.NotificationThreshold = *req.NotificationThreshold
	}
	if req.DefaultAddress != nil {
		prefs.DefaultAddress = req.DefaultAddress
	}
	if req.BlockedProducts != nil {
		prefs.BlockedProducts = req.BlockedProducts
	}
	if req.FavoriteProducts != nil {
		prefs.FavoriteProducts = req.FavoriteProducts
	}

	if err := s.repo.Save(ctx, prefs); err != nil {
		s.logger.Error("preferences write failed", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to save preferences"}
	}
	return prefs, nil
}

// DefaultDestination resolves the user's stored default address into the
// destination map the commerce provider expects. Nil when nothing is stored.
func (s *UserService) DefaultDestination(ctx context.Context, userID string) map[string]string {
	prefs, err := s.repo.Get(ctx, userID)
	if err != nil || prefs == nil || prefs.DefaultAddress == nil {
		return nil
	}
	return map[string]string{"address_id": prefs.DefaultAddress.AddressID}
}
