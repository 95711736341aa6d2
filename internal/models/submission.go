package models

import (
	"time"

	"github.com/jackc/pgx/v5"
)

// NotificationStatus is the delivery state of one outbound message
type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
	NotificationSkipped NotificationStatus = "skipped"
)

// Submission is a requester's choice of a mentor. Content is immutable once
// stored; only the notification fields change afterwards.
type Submission struct {
	ID                 string             `json:"id"`
	MentorID           string             `json:"mentor_id"`
	NomeUsuario        string             `json:"nome_usuario"`
	EmailUsuario       string             `json:"email_usuario"`
	TelefoneUsuario    string             `json:"telefone_usuario"`
	Motivo             string             `json:"motivo"`
	HorarioEscolhido   string             `json:"horario_escolhido"`
	DataSubmissao      time.Time          `json:"data_submissao"`
	NotificacaoMentor  NotificationStatus `json:"notificacao_mentor"`
	NotificacaoUsuario NotificationStatus `json:"notificacao_usuario"`
	NotificacaoErro    string             `json:"notificacao_erro,omitempty"`
	NotificadoEm       *time.Time         `json:"notificado_em,omitempty"`
}

// SubmissionColumns is the column list ScanSubmission expects, in order
const SubmissionColumns = `s.id::text, s.mentor_id::text, s.nome_usuario, s.email_usuario,
	s.telefone_usuario, s.motivo, s.horario_escolhido, s.data_submissao,
	s.notificacao_mentor, s.notificacao_usuario, s.notificacao_erro, s.notificado_em`

// ScanSubmission scans a row selected with SubmissionColumns
func ScanSubmission(row pgx.Row) (*Submission, error) {
	var (
		s                     Submission
		motivo, horario, erro *string
		mentorStatus          string
		usuarioStatus         string
	)

	err := row.Scan(
		&s.ID, &s.MentorID, &s.NomeUsuario, &s.EmailUsuario,
		&s.TelefoneUsuario, &motivo, &horario, &s.DataSubmissao,
		&mentorStatus, &usuarioStatus, &erro, &s.NotificadoEm,
	)
	if err != nil {
		return nil, err
	}

	s.Motivo = deref(motivo)
	s.HorarioEscolhido = deref(horario)
	s.NotificacaoErro = deref(erro)
	s.NotificacaoMentor = NotificationStatus(mentorStatus)
	s.NotificacaoUsuario = NotificationStatus(usuarioStatus)

	return &s, nil
}

// SubmissionMentor is the slice of the mentor shown next to a submission
type SubmissionMentor struct {
	Nome    string `json:"nome"`
	Setor   string `json:"setor"`
	FotoURL string `json:"foto_url"`
}

// SubmissionWithMentor is a submission joined with its mentor
type SubmissionWithMentor struct {
	*Submission
	Mentor SubmissionMentor `json:"mentores"`
}

// SubmissionWithMentorColumns extends SubmissionColumns with the joined mentor
const SubmissionWithMentorColumns = SubmissionColumns + `, m.nome, m.setor, m.foto_url`

// ScanSubmissionWithMentor scans a row selected with SubmissionWithMentorColumns
func ScanSubmissionWithMentor(row pgx.Row) (*SubmissionWithMentor, error) {
	var (
		s                     Submission
		motivo, horario, erro *string
		mentorStatus          string
		usuarioStatus         string
		nome                  string
		setor, fotoURL        *string
	)

	err := row.Scan(
		&s.ID, &s.MentorID, &s.NomeUsuario, &s.EmailUsuario,
		&s.TelefoneUsuario, &motivo, &horario, &s.DataSubmissao,
		&mentorStatus, &usuarioStatus, &erro, &s.NotificadoEm,
		&nome, &setor, &fotoURL,
	)
	if err != nil {
		return nil, err
	}

	s.Motivo = deref(motivo)
	s.HorarioEscolhido = deref(horario)
	s.NotificacaoErro = deref(erro)
	s.NotificacaoMentor = NotificationStatus(mentorStatus)
	s.NotificacaoUsuario = NotificationStatus(usuarioStatus)

	return &SubmissionWithMentor{
		Submission: &s,
		Mentor: SubmissionMentor{
			Nome:    nome,
			Setor:   deref(setor),
			FotoURL: deref(fotoURL),
		},
	}, nil
}

// NewSubmission is a validated submission ready to be stored
type NewSubmission struct {
	MentorID         string
	NomeUsuario      string
	EmailUsuario     string
	TelefoneUsuario  string // digits only
	Motivo           string
	HorarioEscolhido string
}

// ChooseMentorRequest is the body of the choose-mentor form
type ChooseMentorRequest struct {
	NomeUsuario      string `json:"nome_usuario" binding:"required,min=2,max=120"`
	EmailUsuario     string `json:"email_usuario" binding:"required,email,max=254"`
	TelefoneUsuario  string `json:"telefone_usuario" binding:"required,br_phone"`
	Motivo           string `json:"motivo" binding:"max=2000"`
	HorarioEscolhido string `json:"horario_escolhido" binding:"max=200"`
}

// ChooseMentorResponse is returned after a submission is stored
type ChooseMentorResponse struct {
	Submission  *Submission   `json:"submissao"`
	Estado      WorkflowState `json:"estado"`
	Notificacao string        `json:"notificacao"`
}

// Notification outcomes reported to the requester
const (
	NotificationQueued   = "queued"
	NotificationDisabled = "disabled"
	NotificationDropped  = "dropped"
)

// DeliveryResult records what happened to both messages of a submission
type DeliveryResult struct {
	SubmissionID string
	Mentor       NotificationStatus
	Requester    NotificationStatus
	Error        string
	At           time.Time
}
