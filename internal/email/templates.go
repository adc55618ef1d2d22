package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// TemplateRenderer renders named message templates.
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name string, template string) error
}

// TemplateManager is an in-memory TemplateRenderer.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

const verificationCodeTemplate = `<html>
<body style="font-family: sans-serif;">
  <h2>Verify your email</h2>
  <p>Hello {{.Name}},</p>
  <p>Your verification code is:</p>
  <p style="font-size: 28px; letter-spacing: 6px; font-weight: bold;">{{.Code}}</p>
  <p>The code expires in {{.ExpiresMinutes}} minutes. If you did not request it, ignore this message.</p>
</body>
</html>`

const passwordResetTemplate = `<html>
<body style="font-family: sans-serif;">
  <h2>Reset your password</h2>
  <p>Hello {{.Name}},</p>
  <p>Use this token to reset your password:</p>
  <p style="font-size: 20px; font-weight: bold;">{{.Token}}</p>
  <p>The token expires in {{.ExpiresMinutes}} minutes. If you did not request a reset, ignore this message.</p>
</body>
</html>`

// NewTemplateManager returns a manager preloaded with the built-in templates.
func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{templates: make(map[string]*template.Template)}
	// Built-ins cannot fail to parse.
	_ = tm.AddTemplate("verification_code", verificationCodeTemplate)
	_ = tm.AddTemplate("password_reset", passwordResetTemplate)
	return tm
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}
