package models

// Address is a stored delivery destination for a user.
type Address struct {
	AddressID  string `json:"address_id"`
	Street1    string `json:"street1,omitempty"`
	Street2    string `json:"street2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// UserPreferences holds per-user reorder settings.
type UserPreferences struct {
	UserID                string    `json:"user_id"`
	AutoReorderEnabled    bool      `json:"auto_reorder_enabled"`
	PreferredVendor       string    `json:"preferred_vendor"`
	NotificationThreshold FillLevel `json:"notification_threshold"`
	DefaultAddress        *Address  `json:"default_address,omitempty"`
	BlockedProducts       []string  `json:"blocked_products"`
	FavoriteProducts      []string  `json:"favorite_products"`
}

// DefaultPreferences returns the preferences a user starts with.
func DefaultPreferences(userID string) *UserPreferences {
	return &UserPreferences{
		UserID:                userID,
		AutoReorderEnabled:    true,
		PreferredVendor:       "amazon",
		NotificationThreshold: FillLevelNearlyEmpty,
		BlockedProducts:       []string{},
		FavoriteProducts:      []string{},
	}
}

// UpdatePreferencesRequest is the payload for PUT /users/:user_id/preferences.
type UpdatePreferencesRequest struct {
	AutoReorderEnabled    *bool      `json:"auto_reorder_enabled,omitempty"`
	PreferredVendor       *string    `json:"preferred_vendor,omitempty"`
	NotificationThreshold *FillLevel `json:"notification_threshold,omitempty" binding:"omitempty,oneof=FULL MOSTLY_FULL HALF NEARLY_EMPTY EMPTY"`
	DefaultAddress        *Address   `json:"default_address,omitempty"`
	BlockedProducts       []string   `json:"blocked_products,omitempty"`
	FavoriteProducts      []string   `json:"favorite_products,omitempty"`
}
