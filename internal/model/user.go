package model

import "time"

type AdminRole string

const (
	AdminRoleAdmin      AdminRole = "admin"
	AdminRoleSuperAdmin AdminRole = "super_admin"
)

// UserType is the persisted role tag of a session.
type UserType string

const (
	UserTypeUser  UserType = "user"
	UserTypeAdmin UserType = "admin"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}

type Admin struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Role     AdminRole `json:"role"`
}

// Session is the persisted authentication state. At most one of User and
// Admin is set.
type Session struct {
	IsAuthenticated bool      `json:"isAuthenticated"`
	User            *User     `json:"user"`
	Admin           *Admin    `json:"admin"`
	UserType        *UserType `json:"userType"`
}

// Principal is the caller identity a session resolves to. The set of
// implementations is closed: Anonymous, Citizen and Administrator.
type Principal interface {
	principal()
}

type Anonymous struct{}

type Citizen struct {
	User User
}

type Administrator struct {
	Admin Admin
}

func (Anonymous) principal()     {}
func (Citizen) principal()       {}
func (Administrator) principal() {}

// AnonymousSession is the cleared state.
func AnonymousSession() *Session {
	return &Session{}
}

func CitizenSession(u User) *Session {
	t := UserTypeUser
	return &Session{IsAuthenticated: true, User: &u, UserType: &t}
}

func AdministratorSession(a Admin) *Session {
	t := UserTypeAdmin
	return &Session{IsAuthenticated: true, Admin: &a, UserType: &t}
}

// Principal maps the stored state onto the closed variant. Inconsistent
// states (authenticated without an identity, both identities set) resolve to
// Anonymous.
func (s *Session) Principal() Principal {
	if s == nil || !s.IsAuthenticated || s.UserType == nil {
		return Anonymous{}
	}
	switch *s.UserType {
	case UserTypeUser:
		if s.User != nil && s.Admin == nil {
			return Citizen{User: *s.User}
		}
	case UserTypeAdmin:
		if s.Admin != nil && s.User == nil {
			return Administrator{Admin: *s.Admin}
		}
	}
	return Anonymous{}
}

// SessionFor is the inverse of Session.Principal.
func SessionFor(p Principal) *Session {
	switch p := p.(type) {
	case Citizen:
		return CitizenSession(p.User)
	case Administrator:
		return AdministratorSession(p.Admin)
	case Anonymous:
		return AnonymousSession()
	}
	return AnonymousSession()
}

// Request/Response
type LoginRequest struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Role     UserType `json:"role"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token   string   `json:"token"`
	Session *Session `json:"session"`
}
