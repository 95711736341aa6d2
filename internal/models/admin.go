package models

import "time"

// AdminRole is the only role carried by admin sessions
const AdminRole = "admin"

// AdminLoginRequest is the admin login form
type AdminLoginRequest struct {
	Email string `json:"email" binding:"required,email"`
	Senha string `json:"senha" binding:"required,min=1,max=200"`
}

// AdminSession describes an authenticated admin
type AdminSession struct {
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Empty states of the submissions table
const (
	EmptyStateNone          = ""
	EmptyStateNoSubmissions = "sem_submissoes"
	EmptyStateNoResults     = "sem_resultados"
)

// SubmissionsQuery filters the admin submissions table
type SubmissionsQuery struct {
	Query string `form:"q" binding:"max=200"`
	Setor string `form:"setor" binding:"max=200"`
}

// SubmissionStats are the summary cards above the table
type SubmissionStats struct {
	Total           int        `json:"total"`
	SetoresUnicos   int        `json:"setores_unicos"`
	UltimaSubmissao *time.Time `json:"ultima_submissao"`
}

// SubmissionsView is the admin submissions table
type SubmissionsView struct {
	Submissoes  []*SubmissionWithMentor `json:"submissoes"`
	Total       int                     `json:"total"`
	Filtrados   int                     `json:"filtrados"`
	Setores     []string                `json:"setores"`
	EstadoVazio string                  `json:"estado_vazio"`
	Stats       SubmissionStats         `json:"stats"`
}

// AvailabilityRequest reopens or closes a mentor
type AvailabilityRequest struct {
	Disponivel *bool `json:"disponivel" binding:"required"`
}

// UploadPhotoRequest carries a base64 mentor photo
type UploadPhotoRequest struct {
	Image       string `json:"image" binding:"required"`
	FileName    string `json:"fileName" binding:"required,max=200"`
	ContentType string `json:"contentType" binding:"required"`
}
