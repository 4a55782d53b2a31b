//go:build unit || e2e

package builder

import (
	reqdto "medoffice-booking/internal/handler/dto/request"
)

type AuthBuilder struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

func NewAuthBuilder() *AuthBuilder {
	return &AuthBuilder{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "test@example.com",
		Password:  "password123",
	}
}

func (a *AuthBuilder) WithEmail(email string) *AuthBuilder {
	a.Email = email
	return a
}

func (a *AuthBuilder) WithPassword(password string) *AuthBuilder {
	a.Password = password
	return a
}

func (a *AuthBuilder) BuildDTO() reqdto.LoginRequest {
	return reqdto.LoginRequest{
		Email:    a.Email,
		Password: a.Password,
	}
}

func (a *AuthBuilder) BuildRegisterDTO() reqdto.RegisterRequest {
	return reqdto.RegisterRequest{
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
		Password:  a.Password,
	}
}
