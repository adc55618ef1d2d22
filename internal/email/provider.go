package email

// Email is an outgoing message.
type Email struct {
	From     string
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData feeds the message templates.
type TemplateData map[string]interface{}

// Provider sends email. The production implementation speaks SMTP; tests
// substitute a fake.
type Provider interface {
	Send(email *Email) error
	SendWithTemplate(templateName string, data TemplateData, email *Email) error
	Validate() error
	Close() error
}
