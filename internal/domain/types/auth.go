package types

// Credentials are the login form fields.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the sign-up form. Confirm and AcceptTerms are checked
// locally and never sent.
type Registration struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phoneNumber"`
	Password    string `json:"password"`
	Confirm     string `json:"-"`
	AcceptTerms bool   `json:"-"`
}

// AuthResponse is returned by login, register and refresh.
type AuthResponse struct {
	Token        string `json:"token"`
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	User         *User  `json:"user,omitempty"`
}

// Access returns the issued access token under either field name.
func (r AuthResponse) Access() string {
	if r.Token != "" {
		return r.Token
	}
	return r.AccessToken
}

// PasswordReset completes a forgot-password flow.
type PasswordReset struct {
	Token    string `json:"token"`
	Password string `json:"password"`
	Confirm  string `json:"-"`
}

// PasswordChange changes the password of the signed-in user.
type PasswordChange struct {
	Current string `json:"currentPassword"`
	New     string `json:"newPassword"`
	Confirm string `json:"-"`
}

// ProfileUpdate is the editable part of the profile.
type ProfileUpdate struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}
