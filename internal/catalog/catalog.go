// Package catalog groups mentors into the four business areas shown on the
// landing page. Membership is derived from free text, never stored.
package catalog

import (
	"sort"
	"strings"

	"github.com/impulso-stone/mentores-api/internal/models"
)

// Category is one of the fixed business areas
type Category struct {
	Slug         string `json:"slug"`
	Nome         string `json:"nome"`
	Descricao    string `json:"descricao"`
	SubDescricao string `json:"sub_descricao"`
}

const (
	SlugMarketing = "marketing-comunicacao"
	SlugComercial = "comercial-vendas-relacionamento"
	SlugFinancas  = "financas"
	SlugGestao    = "gestao-inovacao-estrategia"
)

// Categories in landing page order
var Categories = []Category{
	{
		Slug:         SlugMarketing,
		Nome:         "Comunicação e Marketing",
		Descricao:    "Divulgue melhor o seu negócio.",
		SubDescricao: "Mentores que sabem usar redes sociais, criar conteúdo e fortalecer sua marca.",
	},
	{
		Slug:         SlugComercial,
		Nome:         "Comercial, Vendas e Relacionamento",
		Descricao:    "Venda mais e atenda melhor.",
		SubDescricao: "Mentores com experiência em negociação, atendimento e estratégias de vendas.",
	},
	{
		Slug:         SlugFinancas,
		Nome:         "Contabilidade e Finanças",
		Descricao:    "Cuide bem do seu dinheiro.",
		SubDescricao: "Mentores que orientam sobre controle financeiro, precificação e fluxo de caixa.",
	},
	{
		Slug:         SlugGestao,
		Nome:         "Gestão, Inovação e Estratégia",
		Descricao:    "Organize e faça seu negócio crescer.",
		SubDescricao: "Mentores que ajudam com planejamento, rotina e ideias para inovar.",
	},
}

// keywords maps each category slug to the lowercase substrings that place a
// mentor in it. Accented and unaccented spellings are both listed.
var keywords = map[string][]string{
	SlugMarketing: {
		"marketing", "comunicação", "comunicacao", "redes sociais", "social media",
		"conteúdo", "conteudo", "criatividade", "campanhas", "divulgação", "divulgacao",
		"branding", "posicionamento de marca", "gestão de tempo", "gestao de tempo",
	},
	SlugComercial: {
		"vendas", "comercial", "relacionamento", "sales", "negociação", "negociacao",
		"atendimento", "customer", "cliente", "gestão de negócio", "gestao de negocio",
		"crescimento", "prospecção", "prospeccao", "funil de vendas",
	},
	SlugFinancas: {
		"finanças", "financas", "financeiro", "financeira", "contabil", "contabilidade",
		"investimento", "controladoria", "planejamento financeiro", "fluxo de caixa",
		"precificação", "precificacao", "formação de preço", "formacao de preco", "dre",
		"fp&a", "organização financeira", "organizacao financeira",
	},
	SlugGestao: {
		"gestão", "gestao", "inovação", "inovacao", "estratégia", "estrategia",
		"liderança", "lideranca", "tecnologia", "tech", "desenvolvimento",
		"programação", "programacao", "treinamento", "planejamento",
		"definição de metas", "definicao de metas", "adaptabilidade", "gerenciamento",
		"organização", "organizacao", "processos", "melhoria contínua", "melhoria continua",
		"automação", "automacao", "inteligência artificial", "inteligencia artificial",
		"data", "dados", "analytics", "kpi", "produto", "negócio", "negocio",
	},
}

// CategoryBySlug looks up a category
func CategoryBySlug(slug string) (Category, bool) {
	for _, c := range Categories {
		if c.Slug == slug {
			return c, true
		}
	}
	return Category{}, false
}

// Keywords returns a copy of the keyword list for a category slug
func Keywords(slug string) []string {
	return append([]string(nil), keywords[slug]...)
}

// MatchesText reports whether any keyword of the category is a
// case-insensitive substring of text. Empty text matches nothing.
func MatchesText(slug, text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return false
	}
	for _, kw := range keywords[slug] {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// Matches reports whether the mentor's sector or any of its specialties
// falls in the category. A nil mentor matches nothing.
func Matches(m *models.Mentor, slug string) bool {
	if m == nil {
		return false
	}
	if MatchesText(slug, m.Setor) {
		return true
	}
	for _, esp := range m.Especialidades {
		if MatchesText(slug, esp) {
			return true
		}
	}
	return false
}

// Classify returns the slugs of every category the mentor belongs to, in
// landing page order. A mentor may belong to several or none.
func Classify(m *models.Mentor) []string {
	slugs := []string{}
	for _, c := range Categories {
		if Matches(m, c.Slug) {
			slugs = append(slugs, c.Slug)
		}
	}
	return slugs
}

// InCategory filters mentors belonging to the category and orders them
// available first, then by name.
func InCategory(mentors []*models.Mentor, slug string) []*models.Mentor {
	out := make([]*models.Mentor, 0)
	for _, m := range mentors {
		if Matches(m, slug) {
			out = append(out, m)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Disponivel != out[j].Disponivel {
			return out[i].Disponivel
		}
		return strings.ToLower(out[i].Nome) < strings.ToLower(out[j].Nome)
	})

	return out
}

// CategorySummary is a landing page card
type CategorySummary struct {
	Category
	Total       int `json:"total"`
	Disponiveis int `json:"disponiveis"`
}

// Overview is the landing page data
type Overview struct {
	Categorias       []CategorySummary `json:"categorias"`
	TotalMentores    int               `json:"total_mentores"`
	TotalDisponiveis int               `json:"total_disponiveis"`
}

// BuildOverview counts mentors per category and overall
func BuildOverview(mentors []*models.Mentor) Overview {
	ov := Overview{Categorias: make([]CategorySummary, 0, len(Categories))}

	for _, c := range Categories {
		summary := CategorySummary{Category: c}
		for _, m := range mentors {
			if !Matches(m, c.Slug) {
				continue
			}
			summary.Total++
			if m.Disponivel {
				summary.Disponiveis++
			}
		}
		ov.Categorias = append(ov.Categorias, summary)
	}

	for _, m := range mentors {
		if m == nil {
			continue
		}
		ov.TotalMentores++
		if m.Disponivel {
			ov.TotalDisponiveis++
		}
	}

	return ov
}
