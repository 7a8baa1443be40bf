package dto

type UpdateSettingsRequest struct {
	SiteName     *string `json:"siteName,omitempty" validate:"omitempty,min=1,max=100"`
	SupportEmail *string `json:"supportEmail,omitempty" validate:"omitempty,email"`
}
