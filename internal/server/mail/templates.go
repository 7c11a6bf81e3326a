package mail

import (
	"fmt"
	"sync"

	"github.com/osteele/liquid"
)

// Имена встроенных шаблонов.
const (
	TemplateActivation    = "activation"
	TemplatePasswordReset = "password_reset"
)

type template struct {
	Subject string
	Body    string
}

var defaultTemplates = map[string]template{
	TemplateActivation: {
		Subject: "Подтверждение почты на AdHub",
		Body: `Здравствуйте!

Для активации аккаунта {{ email }} перейдите по ссылке:
{{ link }}

Если вы не регистрировались на AdHub, просто проигнорируйте это письмо.
`,
	},
	TemplatePasswordReset: {
		Subject: "Сброс пароля на AdHub",
		Body: `Здравствуйте!

Для аккаунта {{ email }} запрошен сброс пароля. Задать новый пароль можно по ссылке:
{{ link }}

Если вы не запрашивали сброс, проигнорируйте это письмо: пароль останется прежним.
`,
	},
}

// Templates рендерит письма Liquid-шаблонами. Разобранные шаблоны кэшируются.
type Templates struct {
	engine *liquid.Engine
	src    map[string]template

	mu     sync.Mutex
	parsed map[string]*liquid.Template
}

// NewTemplates создаёт набор со встроенными шаблонами.
func NewTemplates() *Templates {
	src := make(map[string]template, len(defaultTemplates))
	for k, v := range defaultTemplates {
		src[k] = v
	}
	return &Templates{
		engine: liquid.NewEngine(),
		src:    src,
		parsed: make(map[string]*liquid.Template),
	}
}

// Override заменяет встроенный шаблон.
func (t *Templates) Override(name, subject, body string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.src[name] = template{Subject: subject, Body: body}
	delete(t.parsed, name)
}

// Render возвращает тему и тело письма.
func (t *Templates) Render(name string, bindings map[string]any) (string, string, error) {
	t.mu.Lock()
	src, ok := t.src[name]
	if !ok {
		t.mu.Unlock()
		return "", "", fmt.Errorf("mail: unknown template %q", name)
	}
	tpl, ok := t.parsed[name]
	if !ok {
		var err error
		tpl, err = t.engine.ParseString(src.Body)
		if err != nil {
			t.mu.Unlock()
			return "", "", fmt.Errorf("mail: parse %s: %w", name, err)
		}
		t.parsed[name] = tpl
	}
	t.mu.Unlock()

	body, err := tpl.RenderString(bindings)
	if err != nil {
		return "", "", fmt.Errorf("mail: render %s: %w", name, err)
	}
	return src.Subject, body, nil
}
