package contact

import (
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

var htmlBody = htmltemplate.Must(htmltemplate.New("html").Parse(`<div style="font-family: system-ui, -apple-system, Segoe UI, Roboto, Arial; font-size: 16px; color: #111;">
  <h2 style="margin: 0 0 12px;">Nova mensagem de contato</h2>
  <p><strong>Nome:</strong> {{.Nome}}</p>
  <p><strong>E-mail:</strong> {{.Email}}</p>
  {{- if .Telefone}}
  <p><strong>Telefone:</strong> {{.Telefone}}</p>
  {{- end}}
  <p><strong>Assunto:</strong> {{.Assunto}}</p>
  <p><strong>Mensagem:</strong></p>
  <div style="white-space: pre-wrap; border-left: 3px solid #e5e7eb; padding-left: 10px; margin-top: 6px;">{{.Mensagem}}</div>
</div>
`))

var textBody = texttemplate.Must(texttemplate.New("text").Parse(`Nova mensagem de contato

Nome: {{.Nome}}
E-mail: {{.Email}}
Telefone: {{.Telefone}}
Assunto: {{.Assunto}}

Mensagem:
{{.Mensagem}}`))

func renderBodies(msg Message) (html, text string, err error) {
	var hb, tb strings.Builder
	if err := htmlBody.Execute(&hb, msg); err != nil {
		return "", "", err
	}
	if err := textBody.Execute(&tb, msg); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}
