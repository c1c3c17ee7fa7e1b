package domain

import "time"

// Company is an employer users can be assigned to once approved.
// A company is either pending (Approved=false) or approved; admins may toggle
// the flag in both directions.
type Company struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	Approved  bool      `json:"approved"`
	CreatedBy *string   `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PendingCompanyRequest is recorded when a registrant names a company that
// does not exist yet. RequestedBy holds the email of the registrant who raised
// it and Requesters every registrant who named the same (name, country) while
// it was open. CompanyID is filled in once an admin promotes the request into
// a Company.
type PendingCompanyRequest struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Country     string    `json:"country"`
	RequestedBy *string   `json:"requested_by"`
	Requesters  []string  `json:"requesters"`
	Approved    bool      `json:"approved"`
	CompanyID   *string   `json:"company_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AllRequesters returns RequestedBy followed by the other requesters, without
// duplicates or blanks.
func (r *PendingCompanyRequest) AllRequesters() []string {
	seen := make(map[string]bool, len(r.Requesters)+1)
	out := make([]string, 0, len(r.Requesters)+1)
	add := func(email string) {
		if email == "" || seen[email] {
			return
		}
		seen[email] = true
		out = append(out, email)
	}
	if r.RequestedBy != nil {
		add(*r.RequestedBy)
	}
	for _, email := range r.Requesters {
		add(email)
	}
	return out
}
