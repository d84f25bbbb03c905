package dto

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Email     string  `json:"email" binding:"required,email" example:"john.doe@example.edu"`
	Password  string  `json:"password" binding:"required,min=8" example:"s3cret-pass"`
	FirstName string  `json:"firstName" binding:"required,min=1,max=100" example:"John"`
	LastName  string  `json:"lastName" binding:"required,min=1,max=100" example:"Doe"`
	StudentID *string `json:"studentId" example:"2019331001"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest exchanges a refresh token for a new token pair.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse carries an issued token pair.
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        int    `json:"expiresIn" example:"3600"`
	RefreshExpiresIn int    `json:"refreshExpiresIn" example:"2592000"`
	TokenType        string `json:"tokenType" example:"Bearer"`
}

// UserResponse is the public account shape.
type UserResponse struct {
	ID        int64   `json:"id" example:"7"`
	Email     string  `json:"email" example:"john.doe@example.edu"`
	FirstName string  `json:"firstName" example:"John"`
	LastName  string  `json:"lastName" example:"Doe"`
	StudentID *string `json:"studentId,omitempty" example:"2019331001"`
	IsStaff   bool    `json:"isStaff" example:"false"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User  UserResponse  `json:"user"`
	Token TokenResponse `json:"token"`
}
