package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

// Mentor represents a mentor profile
type Mentor struct {
	ID                      string    `json:"id"`
	Nome                    string    `json:"nome"`
	Email                   string    `json:"-"`
	Telefone                string    `json:"-"`
	Cidade                  string    `json:"cidade"`
	CargoAtual              string    `json:"cargo_atual"`
	EmpresaAtual            string    `json:"empresa_atual"`
	Setor                   string    `json:"setor"`
	Especialidades          []string  `json:"especialidades"`
	Tags                    []string  `json:"tags"`
	Descricao               string    `json:"descricao"`
	ExperienciaProfissional string    `json:"experiencia_profissional"`
	FormacaoAcademica       string    `json:"formacao_academica"`
	Disponibilidade         string    `json:"disponibilidade"`
	OpcaoAgendaUm           string    `json:"opcao_agenda_um"`
	OpcaoAgendaDois         string    `json:"opcao_agenda_dois"`
	OpcaoAgendaTres         string    `json:"opcao_agenda_tres"`
	Disponivel              bool      `json:"disponivel"`
	FotoURL                 string    `json:"foto_url"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

// MentorColumns is the column list ScanMentor expects, in order
const MentorColumns = `m.id::text, m.nome, m.email, m.telefone, m.cidade, m.cargo_atual, m.empresa_atual,
	m.setor, m.especialidades, m.tags, m.descricao, m.experiencia_profissional,
	m.formacao_academica, m.disponibilidade, m.opcao_agenda_um, m.opcao_agenda_dois,
	m.opcao_agenda_tres, m.disponivel, m.foto_url, m.created_at, m.updated_at`

// ScanMentor scans a row selected with MentorColumns and normalizes it.
// NULL text becomes "", NULL disponivel means available.
func ScanMentor(row pgx.Row) (*Mentor, error) {
	var (
		m                                       Mentor
		email, telefone, cidade, cargo, empresa *string
		setor, descricao, experiencia, formacao *string
		disponibilidade, agendaUm, agendaDois   *string
		agendaTres, fotoURL                     *string
		especialidades, tags                    []byte
		disponivel                              *bool
	)

	err := row.Scan(
		&m.ID, &m.Nome, &email, &telefone, &cidade, &cargo, &empresa,
		&setor, &especialidades, &tags, &descricao, &experiencia,
		&formacao, &disponibilidade, &agendaUm, &agendaDois,
		&agendaTres, &disponivel, &fotoURL, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	m.Nome = strings.TrimSpace(m.Nome)
	m.Email = deref(email)
	m.Telefone = deref(telefone)
	m.Cidade = deref(cidade)
	m.CargoAtual = deref(cargo)
	m.EmpresaAtual = deref(empresa)
	m.Setor = deref(setor)
	m.Especialidades = NormalizeList(especialidades)
	m.Tags = NormalizeList(tags)
	m.Descricao = deref(descricao)
	m.ExperienciaProfissional = deref(experiencia)
	m.FormacaoAcademica = deref(formacao)
	m.Disponibilidade = deref(disponibilidade)
	m.OpcaoAgendaUm = deref(agendaUm)
	m.OpcaoAgendaDois = deref(agendaDois)
	m.OpcaoAgendaTres = deref(agendaTres)
	m.Disponivel = disponivel == nil || *disponivel
	m.FotoURL = deref(fotoURL)

	return &m, nil
}

// NormalizeList turns a jsonb value that may hold either an array or a
// comma-separated string into a list of trimmed, non-empty strings.
// NULL and malformed JSON yield an empty list.
func NormalizeList(raw []byte) []string {
	out := []string{}
	if len(raw) == 0 {
		return out
	}

	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return out
	}

	switch v := value.(type) {
	case []interface{}:
		for _, item := range v {
			switch s := item.(type) {
			case string:
				out = appendTrimmed(out, s)
			case float64, bool:
				out = appendTrimmed(out, fmt.Sprint(s))
			}
		}
	case string:
		for _, part := range strings.Split(v, ",") {
			out = appendTrimmed(out, part)
		}
	}

	return out
}

// SplitList is NormalizeList for values that arrive as plain text
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		out = appendTrimmed(out, part)
	}
	return out
}

func appendTrimmed(list []string, s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return list
	}
	return append(list, s)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// ScheduleSlots returns the mentor's non-empty proposed slots in order
func (m *Mentor) ScheduleSlots() []string {
	slots := make([]string, 0, 3)
	for _, s := range []string{m.OpcaoAgendaUm, m.OpcaoAgendaDois, m.OpcaoAgendaTres} {
		if strings.TrimSpace(s) != "" {
			slots = append(slots, s)
		}
	}
	return slots
}

// HasSlot reports whether slot is exactly one of the mentor's proposed slots
func (m *Mentor) HasSlot(slot string) bool {
	for _, s := range m.ScheduleSlots() {
		if s == slot {
			return true
		}
	}
	return false
}

// MentorDetails is the detail view of a mentor
type MentorDetails struct {
	*Mentor
	Horarios     []string `json:"horarios"`
	Categorias   []string `json:"categorias"`
	PodeEscolher bool     `json:"pode_escolher"`
}

// MentorFilter narrows the mentor list
type MentorFilter struct {
	Query         string // name substring
	Setor         string // sector substring
	OnlyAvailable bool
}
