package service

import (
	"errors"

	"epass-service/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("access denied")
	ErrInvalidDecision    = errors.New("decision must be approved or rejected")
	ErrInvalidFilter      = errors.New("status filter must be all, pending, approved or rejected")
)

func requireCitizen(p model.Principal) (*model.User, error) {
	switch p := p.(type) {
	case model.Citizen:
		return &p.User, nil
	case model.Administrator:
		return nil, ErrForbidden
	case model.Anonymous:
		return nil, ErrUnauthenticated
	}
	return nil, ErrUnauthenticated
}

func requireAdministrator(p model.Principal) (*model.Admin, error) {
	switch p := p.(type) {
	case model.Administrator:
		return &p.Admin, nil
	case model.Citizen:
		return nil, ErrForbidden
	case model.Anonymous:
		return nil, ErrUnauthenticated
	}
	return nil, ErrUnauthenticated
}
