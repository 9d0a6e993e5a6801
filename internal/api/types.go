// Package api holds the request and response bodies shared by the HTTP handlers.
package api

import openapi_types "github.com/oapi-codegen/runtime/types"

// ErrorResponse is the body returned for failed auth and search requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body returned for simple acknowledgements.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenPairResponse is returned by /login and /refresh.
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// SignupRequest is the body of POST /signup.
// Email is validated while decoding.
type SignupRequest struct {
	Email             openapi_types.Email `json:"email" binding:"required"`
	Password          string              `json:"password" binding:"required,min=8"`
	FullName          string              `json:"fullName"`
	Country           string              `json:"country"`
	InvestmentGoals   string              `json:"investmentGoals"`
	RiskTolerance     string              `json:"riskTolerance"`
	PreferredIndustry string              `json:"preferredIndustry"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    openapi_types.Email `json:"email" binding:"required"`
	Password string              `json:"password" binding:"required"`
}

// RefreshRequest is the body of POST /refresh and POST /logout.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
