package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type statusResponse struct {
	Status string `json:"status"`
}

// --- Auth ---

type registerRequest struct {
	Email    string  `json:"email"     validate:"required,email"`
	Password string  `json:"password"  validate:"required,max=72"`
	FullName string  `json:"full_name" validate:"required"`
	Country  string  `json:"country"   validate:"required"`
	Company  *string `json:"company"`
	CafeName *string `json:"cafe_name"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// --- Companies ---

type createCompanyRequest struct {
	Name    string `json:"name"    validate:"required"`
	Country string `json:"country" validate:"required"`
}

type approveCompanyRequest struct {
	CompanyID string `json:"company_id" validate:"required"`
	Approved  bool   `json:"approved"`
}

type approveCompanyRequestRequest struct {
	RequestID string `json:"request_id" validate:"required"`
}

// --- Profile ---

type updateProfileRequest struct {
	Country   *string `json:"country"`
	CompanyID *string `json:"company_id"`
	CafeName  *string `json:"cafe_name"`
	FullName  *string `json:"full_name"`
}

// --- Ranks ---

type createRankRequest struct {
	Date     string  `json:"date"      validate:"required,datetime=2006-01-02"`
	Dish     string  `json:"dish"      validate:"required"`
	Rating   int     `json:"rating"`
	Comment  *string `json:"comment"`
	ImageURL *string `json:"image_url"`
}

type rankResponse struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"user_id"`
	CompanyID string    `json:"company_id"`
	CafeName  string    `json:"cafe_name"`
	Country   string    `json:"country"`
	Date      string    `json:"date"`
	Dish      string    `json:"dish"`
	Rating    int       `json:"rating"`
	ImageURL  *string   `json:"image_url"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
