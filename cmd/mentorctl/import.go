package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/impulso-stone/mentores-api/config"
	"github.com/impulso-stone/mentores-api/internal/database/postgres"
	"github.com/impulso-stone/mentores-api/internal/models"
	"github.com/impulso-stone/mentores-api/pkg/db"
	"github.com/impulso-stone/mentores-api/pkg/logger"
	"github.com/impulso-stone/mentores-api/pkg/phone"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// mentorNamespace seeds the deterministic IDs of imported mentors
var mentorNamespace = uuid.MustParse("5b1d8a0e-3c44-4f7e-9d2b-6a1f0c9e7b35")

// stringList accepts either a YAML sequence or a comma-separated scalar
type stringList []string

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*l = models.SplitList(value.Value)
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("line %d: expected a list or a string", value.Line)
	}
}

type importedMentor struct {
	ID                      string     `yaml:"id"`
	Nome                    string     `yaml:"nome"`
	Email                   string     `yaml:"email"`
	Telefone                string     `yaml:"telefone"`
	Cidade                  string     `yaml:"cidade"`
	CargoAtual              string     `yaml:"cargo_atual"`
	EmpresaAtual            string     `yaml:"empresa_atual"`
	Setor                   string     `yaml:"setor"`
	Especialidades          stringList `yaml:"especialidades"`
	Tags                    stringList `yaml:"tags"`
	Descricao               string     `yaml:"descricao"`
	ExperienciaProfissional string     `yaml:"experiencia_profissional"`
	FormacaoAcademica       string     `yaml:"formacao_academica"`
	Disponibilidade         string     `yaml:"disponibilidade"`
	OpcaoAgendaUm           string     `yaml:"opcao_agenda_um"`
	OpcaoAgendaDois         string     `yaml:"opcao_agenda_dois"`
	OpcaoAgendaTres         string     `yaml:"opcao_agenda_tres"`
	Disponivel              *bool      `yaml:"disponivel"`
	FotoURL                 string     `yaml:"foto_url"`
}

type importFile struct {
	Mentores []importedMentor `yaml:"mentores"`
}

// mentorID keeps re-imports of the same person on the same row. An explicit
// id wins; otherwise the ID is derived from the email, or the name.
func mentorID(m importedMentor) (string, error) {
	if m.ID != "" {
		id, err := uuid.Parse(m.ID)
		if err != nil {
			return "", fmt.Errorf("invalid id %q: %w", m.ID, err)
		}
		return id.String(), nil
	}

	key := strings.ToLower(strings.TrimSpace(m.Email))
	if key == "" {
		key = "nome:" + strings.ToLower(strings.TrimSpace(m.Nome))
	}
	return uuid.NewSHA1(mentorNamespace, []byte(key)).String(), nil
}

// parseImportFile decodes and validates every mentor in data. All problems
// are reported together.
func parseImportFile(data []byte) ([]*models.Mentor, error) {
	var file importFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse import file: %w", err)
	}

	var problems []string
	seen := map[string]int{}
	mentors := make([]*models.Mentor, 0, len(file.Mentores))

	for i, in := range file.Mentores {
		pos := i + 1
		if strings.TrimSpace(in.Nome) == "" {
			problems = append(problems, fmt.Sprintf("mentor %d: nome is required", pos))
			continue
		}

		id, err := mentorID(in)
		if err != nil {
			problems = append(problems, fmt.Sprintf("mentor %d: %v", pos, err))
			continue
		}
		if prev, dup := seen[id]; dup {
			problems = append(problems, fmt.Sprintf("mentor %d: same identity as mentor %d", pos, prev))
			continue
		}
		seen[id] = pos

		telefone := phone.Digits(in.Telefone)
		if in.Telefone != "" {
			if _, err := phone.Validate(in.Telefone); err != nil {
				problems = append(problems, fmt.Sprintf("mentor %d: telefone: %v", pos, err))
				continue
			}
		}

		disponivel := true
		if in.Disponivel != nil {
			disponivel = *in.Disponivel
		}

		mentors = append(mentors, &models.Mentor{
			ID:                      id,
			Nome:                    strings.TrimSpace(in.Nome),
			Email:                   strings.TrimSpace(in.Email),
			Telefone:                telefone,
			Cidade:                  in.Cidade,
			CargoAtual:              in.CargoAtual,
			EmpresaAtual:            in.EmpresaAtual,
			Setor:                   strings.TrimSpace(in.Setor),
			Especialidades:          nonNil(in.Especialidades),
			Tags:                    nonNil(in.Tags),
			Descricao:               in.Descricao,
			ExperienciaProfissional: in.ExperienciaProfissional,
			FormacaoAcademica:       in.FormacaoAcademica,
			Disponibilidade:         in.Disponibilidade,
			OpcaoAgendaUm:           strings.TrimSpace(in.OpcaoAgendaUm),
			OpcaoAgendaDois:         strings.TrimSpace(in.OpcaoAgendaDois),
			OpcaoAgendaTres:         strings.TrimSpace(in.OpcaoAgendaTres),
			Disponivel:              disponivel,
			FotoURL:                 in.FotoURL,
		})
	}

	if len(problems) > 0 {
		return nil, errors.New(strings.Join(problems, "\n"))
	}
	return mentors, nil
}

func nonNil(l stringList) []string {
	if l == nil {
		return []string{}
	}
	return l
}

// mentorUpserter is the slice of the postgres client import needs. It may
// replace m.ID with the ID of a row that already holds the same email.
type mentorUpserter interface {
	UpsertMentor(ctx context.Context, m *models.Mentor) (bool, error)
}

type importSummary struct {
	Inserted int
	Updated  int
	// MatchedByEmail counts updates that landed on a row with another ID
	MatchedByEmail int
}

func importMentors(ctx context.Context, store mentorUpserter, mentors []*models.Mentor) (importSummary, error) {
	var summary importSummary
	for _, m := range mentors {
		importID := m.ID
		inserted, err := store.UpsertMentor(ctx, m)
		if err != nil {
			return summary, fmt.Errorf("failed to import %q: %w", m.Nome, err)
		}
		if m.ID != importID {
			summary.MatchedByEmail++
		}
		if inserted {
			summary.Inserted++
		} else {
			summary.Updated++
		}
	}
	return summary, nil
}

func newImportCmd() *cobra.Command {
	var (
		file    string
		dryRun  bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Upsert mentors from a YAML file",
		Long: `Reads a YAML file with a top-level "mentores" list and upserts every entry.

Mentors keep a stable ID across imports (explicit id, else derived from the
email). Re-importing updates the profile but never reopens a mentor that
was already chosen.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", file, err)
			}

			mentors, err := parseImportFile(data)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dryRun {
				for _, m := range mentors {
					fmt.Fprintf(out, "%s\t%s\t%s\n", m.ID, m.Nome, m.Setor)
				}
				fmt.Fprintf(out, "%d mentors valid, nothing written\n", len(mentors))
				return nil
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if err := logger.Initialize(logger.Config{
				Level:       cfg.Logging.Level,
				Environment: cfg.Server.AppEnv,
				ServiceName: "mentorctl",
			}); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer logger.Sync()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			pool, err := db.NewPool(ctx, db.PoolConfig{
				URL:      cfg.Database.URL,
				MaxConns: 2,
				MinConns: 1,
			})
			if err != nil {
				return err
			}
			client := postgres.NewClient(pool)
			defer client.Close()

			summary, err := importMentors(ctx, client, mentors)
			if err != nil {
				return err
			}

			logger.Info("Mentor import finished",
				zap.String("file", file),
				zap.Int("inserted", summary.Inserted),
				zap.Int("updated", summary.Updated),
				zap.Int("matched_by_email", summary.MatchedByEmail))
			fmt.Fprintf(out, "%d inserted, %d updated (%d matched by email)\n",
				summary.Inserted, summary.Updated, summary.MatchedByEmail)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file to import")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate and print without writing")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall import timeout")
	_ = cmd.MarkFlagRequired("file") //nolint:errcheck // flag is defined above

	return cmd
}
