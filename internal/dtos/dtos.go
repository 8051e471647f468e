package dtos

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type CreateApplicationRequest struct {
	Company string `json:"company" binding:"required"`
	Role    string `json:"role" binding:"required"`

	// Optional fields
	Link  string `json:"link"`
	Notes string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ExtractSkillsRequest struct {
	JobDescription string `json:"jobDescription"`
}

// SkillReport is the normalized model output: 5-10 distinct skills plus a
// one-to-two sentence summary.
type SkillReport struct {
	Skills  []string `json:"skills"`
	Summary string   `json:"summary"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}
