package model

// User is an account on the backend.
type User struct {
	ID        string    `json:"id" toml:"id"`
	Email     string    `json:"email,omitempty" toml:"email,omitempty"`
	FullName  string    `json:"full_name,omitempty" toml:"full_name,omitempty"`
	Phone     string    `json:"phone,omitempty" toml:"phone,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty" toml:"avatar_url,omitempty"`
	Role      string    `json:"role,omitempty" toml:"role,omitempty"`
	CreatedAt Timestamp `json:"created_at" toml:"-"`
}

// DisplayName returns the best human-readable name for the user.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.FullName != "" {
		return u.FullName
	}
	if u.Email != "" {
		return u.Email
	}
	return u.ID
}

// AuthResult is returned by the login and register endpoints.
type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}
