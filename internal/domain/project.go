package domain

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID                 uuid.UUID `json:"id" db:"id"`
	Name               string    `json:"name" db:"name"`
	SiteURL            string    `json:"site_url" db:"site_url"`
	SearchConsoleToken *string   `json:"-" db:"search_console_token"`
	IsActive           bool      `json:"is_active" db:"is_active"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// HasCredentials reports whether the project carries a usable provider token.
func (p *Project) HasCredentials() bool {
	return p.SearchConsoleToken != nil && *p.SearchConsoleToken != ""
}

type CreateProjectInput struct {
	Name               string  `json:"name" validate:"required,min=2"`
	SiteURL            string  `json:"site_url" validate:"required,url"`
	SearchConsoleToken *string `json:"search_console_token,omitempty"`
}

type UpdateProjectInput struct {
	Name               *string  `json:"name,omitempty" validate:"omitempty,min=2"`
	SiteURL            *string  `json:"site_url,omitempty" validate:"omitempty,url"`
	SearchConsoleToken **string `json:"search_console_token,omitempty"`
	IsActive           *bool    `json:"is_active,omitempty"`
}

type ProjectMember struct {
	User
	Role ProjectRole `json:"role" db:"role"`
}
