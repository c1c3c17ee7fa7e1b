package domain

import "time"

// User models a registered employee. CompanyID, when set, referenced an
// approved company at the time it was assigned.
type User struct {
	ID           string    `json:"_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Country      string    `json:"country"`
	CompanyID    *string   `json:"company_id"`
	CafeName     *string   `json:"cafe_name"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasCompany reports whether a company is assigned to the user.
func (u *User) HasCompany() bool {
	return u.CompanyID != nil && *u.CompanyID != ""
}

// ProfileUpdate carries a partial profile change. Nil fields are left as is.
type ProfileUpdate struct {
	Country   *string
	CafeName  *string
	FullName  *string
	CompanyID *string
}

// Empty reports whether the update changes nothing.
func (p ProfileUpdate) Empty() bool {
	return p.Country == nil && p.CafeName == nil && p.FullName == nil && p.CompanyID == nil
}
