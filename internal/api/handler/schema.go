package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Bio      string `json:"bio"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Bio       string    `json:"bio"`
	Rating    float64   `json:"rating"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type authResponse struct {
	Token string        `json:"token,omitempty"`
	User  *userResponse `json:"user,omitempty"`
}

// --- Skills ---

type createSkillRequest struct {
	SkillName     string `json:"skill_name"     validate:"required"`
	SkillCategory string `json:"skill_category" validate:"required"`
	SkillLevel    string `json:"skill_level"    validate:"required"`
	Type          string `json:"type"           validate:"required"`
}

type skillResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	SkillName     string    `json:"skill_name"`
	SkillCategory string    `json:"skill_category"`
	SkillLevel    string    `json:"skill_level"`
	Type          string    `json:"type"`
	CreatedAt     time.Time `json:"created_at"`
}

// --- Swaps ---

type createSwapRequest struct {
	UserBID    string  `json:"user_b_id"   validate:"required"`
	SkillAID   string  `json:"skill_a_id"  validate:"required"`
	SkillBID   string  `json:"skill_b_id"  validate:"required"`
	MatchScore float64 `json:"match_score" validate:"gte=0,lte=1"`
	Message    string  `json:"message"     validate:"max=1000"`
}

type transitionRequest struct {
	State string `json:"state" validate:"required"`
}

type swapLinks struct {
	Self   string `json:"self"`
	Events string `json:"events"`
}

type swapResponse struct {
	ID          string    `json:"id"`
	UserAID     string    `json:"user_a_id"`
	UserBID     string    `json:"user_b_id"`
	SkillAID    string    `json:"skill_a_id"`
	SkillBID    string    `json:"skill_b_id"`
	MatchScore  float64   `json:"match_score"`
	State       string    `json:"state"`
	AllowedNext []string  `json:"allowed_next"`
	Message     string    `json:"message,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Links       swapLinks `json:"_links"`
}

type swapDetailResponse struct {
	swapResponse
	UserAName   string `json:"user_a_name"`
	UserBName   string `json:"user_b_name"`
	SkillAName  string `json:"skill_a_name"`
	SkillBName  string `json:"skill_b_name"`
	UserAActive *bool  `json:"user_a_active,omitempty"`
	UserBActive *bool  `json:"user_b_active,omitempty"`
}

type swapEventResponse struct {
	From      string    `json:"from,omitempty"`
	To        string    `json:"to"`
	ActorID   string    `json:"actor_id"`
	Timestamp time.Time `json:"timestamp"`
}

// --- Admin ---

type setActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type userSkillsResponse struct {
	Offered []skillResponse `json:"offered"`
	Needed  []skillResponse `json:"needed"`
}

type adminUserResponse struct {
	userResponse
	Skills *userSkillsResponse `json:"skills,omitempty"`
}
