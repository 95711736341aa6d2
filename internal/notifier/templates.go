package notifier

import (
	"bytes"
	"text/template"
)

var mentorTemplate = template.Must(template.New("mentor").Parse(`Oi, {{.MentorNome}}!
Temos um match confirmado: o(a) empreendedor(a) {{.RequesterNome}} escolheu você como mentor(a) no Programa Impulso!

Aqui estão os dados de contato:
📞 Telefone: {{.RequesterTelefone}}
📧 E-mail: {{.RequesterEmail}}
{{- if .Horario}}
🗓️ Horário escolhido: {{.Horario}}
{{- end}}

Agora é com você: entre em contato com o(a) {{.RequesterNome}} pra alinhar o dia, o horário e os próximos passos da mentoria individual.

Seu apoio vai fazer toda a diferença, e o(a) empreendedor(a) já tá esperando esse encontro com você.

Obrigado por caminhar com a gente nessa jornada! Qualquer dúvida, conte com a gente.`))

var requesterTemplate = template.Must(template.New("requester").Parse(`Oi, {{.RequesterNome}}! Tudo certo?
Você escolheu sua mentoria e a conexão foi feita com sucesso!

Agora é só aguardar: em breve, {{.MentorNome}} vai entrar em contato com você pra combinar o dia e horário da mentoria individual.

Esse será um momento de troca, escuta e apoio feito pra te ajudar com o que você mais precisa no seu negócio.

Fica de olho no celular - tá chegando coisa boa!

Qualquer dúvida, estamos aqui.`))

type messageData struct {
	MentorNome        string
	RequesterNome     string
	RequesterTelefone string
	RequesterEmail    string
	Horario           string
}

func render(t *template.Template, data messageData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
