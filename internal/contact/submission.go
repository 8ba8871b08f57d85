package contact

import (
	"encoding/json"
	"strconv"
	"strings"

	"greenline/internal/services"
)

const (
	defaultSubject = "Contato"
	subjectPrefix  = "Contato via site • "
)

// requiredFields lists mandatory form fields in validation order.
var requiredFields = []string{"nome", "email", "mensagem"}

// Submission is the contact form as posted by the site.
type Submission struct {
	Nome     string
	Email    string
	Telefone string
	Assunto  string
	Mensagem string
	Honey    string
}

// ParseSubmission decodes a request body. Bodies that are not a JSON object
// decode to an empty submission so validation reports the missing fields.
func ParseSubmission(body []byte) Submission {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return Submission{}
	}
	return Submission{
		Nome:     coerce(raw["nome"]),
		Email:    coerce(raw["email"]),
		Telefone: coerce(raw["telefone"]),
		Assunto:  coerce(raw["assunto"]),
		Mensagem: coerce(raw["mensagem"]),
		Honey:    coerce(raw["_honey"]),
	}
}

// coerce turns a JSON value into form text. Falsy values become "".
func coerce(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(value)
	case bool:
		if value {
			return "true"
		}
		return ""
	case float64:
		if value == 0 {
			return ""
		}
		return strconv.FormatFloat(value, 'f', -1, 64)
	default:
		data, err := json.Marshal(value)
		if err != nil {
			return ""
		}
		return string(data)
	}
}

func (s Submission) field(name string) string {
	switch name {
	case "nome":
		return s.Nome
	case "email":
		return s.Email
	case "mensagem":
		return s.Mensagem
	}
	return ""
}

// Validate reports the first missing required field.
func (s Submission) Validate() error {
	for _, name := range requiredFields {
		if s.field(name) == "" {
			return services.Wrap(services.ErrValidation, "contact", "validate",
				"Campo obrigatório ausente: "+name, nil)
		}
	}
	return nil
}

// IsSpam reports whether the honeypot field was filled in.
func (s Submission) IsSpam() bool {
	return s.Honey != ""
}

// Message is a validated submission ready for a provider.
type Message struct {
	Submission
	Subject string
}

// NewMessage applies defaults to a submission and builds the email subject.
func NewMessage(sub Submission) Message {
	if sub.Assunto == "" {
		sub.Assunto = defaultSubject
	}
	return Message{Submission: sub, Subject: subjectPrefix + sub.Assunto}
}
