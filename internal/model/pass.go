package model

import "time"

type PassStatus string

const (
	StatusPending  PassStatus = "pending"
	StatusApproved PassStatus = "approved"
	StatusRejected PassStatus = "rejected"
)

// Decided reports whether s is a terminal administrator decision.
func (s PassStatus) Decided() bool {
	return s == StatusApproved || s == StatusRejected
}

// StatusFilter selects the admin queue; FilterAll keeps every pass.
type StatusFilter string

const (
	FilterAll      StatusFilter = "all"
	FilterPending  StatusFilter = StatusFilter(StatusPending)
	FilterApproved StatusFilter = StatusFilter(StatusApproved)
	FilterRejected StatusFilter = StatusFilter(StatusRejected)
)

func (f StatusFilter) Valid() bool {
	switch f {
	case FilterAll, FilterPending, FilterApproved, FilterRejected:
		return true
	}
	return false
}

// Matches reports whether a pass with status s belongs to the filtered queue.
func (f StatusFilter) Matches(s PassStatus) bool {
	return f == FilterAll || PassStatus(f) == s
}

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Draft is what a citizen fills in. Dates are YYYY-MM-DD, times HH:MM.
type Draft struct {
	CategoryID  string `json:"categoryId"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Destination string `json:"destination"`
	Purpose     string `json:"purpose"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
}

type Pass struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	CategoryID  string     `json:"categoryId"`
	FullName    string     `json:"fullName"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Address     string     `json:"address"`
	Destination string     `json:"destination"`
	Purpose     string     `json:"purpose"`
	StartDate   string     `json:"startDate"`
	EndDate     string     `json:"endDate"`
	StartTime   string     `json:"startTime"`
	EndTime     string     `json:"endTime"`
	Status      PassStatus `json:"status"`
	AdminNotes  *string    `json:"adminNotes,omitempty"`
	ApprovedBy  *string    `json:"approvedBy,omitempty"`
	AppliedAt   time.Time  `json:"appliedAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// VisibleTo reports whether the citizen u may see p. Email is matched too so a
// citizen who logged in before registering still sees earlier applications.
func (p *Pass) VisibleTo(u *User) bool {
	if u == nil {
		return false
	}
	return p.UserID == u.ID || p.Email == u.Email
}

type DashboardStats struct {
	TotalApplications    int `json:"totalApplications"`
	PendingApplications  int `json:"pendingApplications"`
	ApprovedApplications int `json:"approvedApplications"`
	RejectedApplications int `json:"rejectedApplications"`
	TotalUsers           int `json:"totalUsers"`
	ActiveCategories     int `json:"activeCategories"`
}

// Request/Response DTOs
type DecisionRequest struct {
	Decision PassStatus `json:"decision" binding:"required,oneof=approved rejected"`
	Notes    string     `json:"notes"`
}

type PassListResponse struct {
	Passes []Pass `json:"passes"`
	Total  int    `json:"total"`
}

type CategoryListResponse struct {
	Categories []Category `json:"categories"`
	Total      int        `json:"total"`
}
