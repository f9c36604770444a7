package dto

type RegisterDTO struct {
	Username   string `json:"username" validate:"required,min=3,max=150"`
	Email      string `json:"email" validate:"omitempty,email"`
	Password   string `json:"password" validate:"required,min=6"`
	Password2  string `json:"password2" validate:"required,eqfield=Password"`
	FirstName  string `json:"first_name" validate:"omitempty,max=150"`
	LastName   string `json:"last_name" validate:"omitempty,max=150"`
	Role       string `json:"role" validate:"omitempty,oneof=user technician admin"`
	Department string `json:"department" validate:"omitempty,max=100"`
	Phone      string `json:"phone" validate:"omitempty,max=20"`
}

type LoginDTO struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshDTO struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenPairDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthResponseDTO struct {
	User   ShortUserDTO `json:"user"`
	Tokens TokenPairDTO `json:"tokens"`
}
