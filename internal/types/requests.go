package types

import (
	"github.com/go-playground/validator/v10"
)

// ChatRequest is the body of an advisor chat request
type ChatRequest struct {
	Message string        `json:"message" validate:"required,min=1,max=4000"`
	History []ChatMessage `json:"history,omitempty" validate:"max=50,dive"`
}

// Validate validates the ChatRequest using the validator.
func (r *ChatRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
