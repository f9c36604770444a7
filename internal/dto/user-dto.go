package dto

type ShortUserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

type ProfileDTO struct {
	ID         uint64       `json:"id"`
	User       ShortUserDTO `json:"user"`
	Role       string       `json:"role"`
	Department string       `json:"department"`
	Phone      string       `json:"phone"`
	CreatedAt  string       `json:"created_at"`
}

type UpdateProfileDTO struct {
	Department *string `json:"department,omitempty" validate:"omitempty,max=100"`
	Phone      *string `json:"phone,omitempty" validate:"omitempty,max=20"`
}

type TechnicianDTO struct {
	ID         uint64 `json:"id"`
	Username   string `json:"username"`
	FullName   string `json:"full_name"`
	Department string `json:"department"`
	Role       string `json:"role"`
}
