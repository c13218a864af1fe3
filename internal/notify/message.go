package notify

import (
	"strings"

	"github.com/jmehdipour/customers-api/internal/model"
)

const DefaultWelcomeTemplate = "Welcome {{CompanyName}} to the Nimble Pros family!"

// MessageFactory renders message bodies for a customer.
type MessageFactory interface {
	WelcomeMessage(c model.Customer) string
}

// TemplateMessageFactory substitutes {{CompanyName}} in a fixed template.
type TemplateMessageFactory struct {
	Template string
}

func NewTemplateMessageFactory() TemplateMessageFactory {
	return TemplateMessageFactory{Template: DefaultWelcomeTemplate}
}

func (f TemplateMessageFactory) WelcomeMessage(c model.Customer) string {
	tpl := f.Template
	if tpl == "" {
		tpl = DefaultWelcomeTemplate
	}
	return strings.ReplaceAll(tpl, "{{CompanyName}}", c.CompanyName)
}
