package model

// Request payloads. Field tags follow the server contract, not Go casing.

type LoginRequest struct {
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	DeviceToken string   `json:"device_token,omitempty"`
	Scopes      []string `json:"scopes,omitempty"`
}

type RegisterRequest struct {
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	InviteToken string   `json:"invite_token,omitempty"`
	Scopes      []string `json:"scopes,omitempty"`
	Anonymous   bool     `json:"anonymous,omitempty"`
}

type RequestPhoneCodeRequest struct {
	PhoneNumber string `json:"phone_number"`
}

type PhoneLoginRequest struct {
	PhoneNumber string   `json:"phone_number"`
	Code        string   `json:"code"`
	Scopes      []string `json:"scopes,omitempty"`
}

type RequestResetPasswordRequest struct {
	Email   string `json:"email"`
	TFACode string `json:"tfa_code,omitempty"`
}

type ResetPasswordRequest struct {
	Password string `json:"password"`
}

// EnableTFARequest re-issues two-factor provisioning, optionally updating the
// contact channel first.
type EnableTFARequest struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type VerifyTFARequest struct {
	TFACode string   `json:"tfa_code"`
	Scopes  []string `json:"scopes,omitempty"`
}

type UpdateUserRequest struct {
	NewEmail    string `json:"new_email,omitempty"`
	NewPhone    string `json:"new_phone,omitempty"`
	OldPassword string `json:"old_password,omitempty"`
	NewPassword string `json:"new_password,omitempty"`
}
