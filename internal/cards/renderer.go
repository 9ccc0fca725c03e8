package cards

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"text/template"

	"catering-bot/internal/models"

	"go.uber.org/zap"
)

//go:embed templates/*.json
var templatesFS embed.FS

// Renderer подставляет контекст в шаблон карточки и парсит результат
// в структурированный payload. Шаблоны неизменяемы, кэш не нужен.
type Renderer struct {
	logger *zap.Logger
}

// NewRenderer создает новый Renderer.
func NewRenderer(logger *zap.Logger) *Renderer {
	return &Renderer{logger: logger.Named("CardRenderer")}
}

// Render читает ресурс карточки, подставляет контекст (если он передан)
// и возвращает payload карточки. Неразрешенные переменные шаблона
// заменяются пустой строкой: на ранних ходах истории заказов еще нет,
// и это штатная ситуация, а не ошибка.
func (r *Renderer) Render(card Card, context map[string]string) (map[string]any, error) {
	raw, err := templatesFS.ReadFile(card.TemplateFile())
	if err != nil {
		// Отсутствующий ресурс - дефект упаковки, как и непарсящийся
		r.logger.Error("Card template resource is missing",
			zap.String("card", card.String()),
			zap.String("file", card.TemplateFile()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: read %s: %v", models.ErrMalformedTemplate, card.TemplateFile(), err)
	}

	text := raw
	if context != nil {
		text, err = r.substitute(card, raw, context)
		if err != nil {
			return nil, err
		}
	}

	var payload map[string]any
	if err := json.Unmarshal(text, &payload); err != nil {
		r.logger.Error("Card template did not parse after substitution",
			zap.String("card", card.String()),
			zap.String("file", card.TemplateFile()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: parse %s: %v", models.ErrMalformedTemplate, card.TemplateFile(), err)
	}

	return payload, nil
}

// substitute выполняет подстановку переменных. missingkey=zero дает пустую
// строку для отсутствующих ключей контекста.
func (r *Renderer) substitute(card Card, raw []byte, context map[string]string) ([]byte, error) {
	tmpl, err := template.New(card.TemplateFile()).Option("missingkey=zero").Parse(string(raw))
	if err != nil {
		r.logger.Error("Card template failed to compile",
			zap.String("card", card.String()),
			zap.String("file", card.TemplateFile()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: compile %s: %v", models.ErrMalformedTemplate, card.TemplateFile(), err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, context); err != nil {
		r.logger.Error("Card template failed to execute",
			zap.String("card", card.String()),
			zap.String("file", card.TemplateFile()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: execute %s: %v", models.ErrMalformedTemplate, card.TemplateFile(), err)
	}

	return buf.Bytes(), nil
}
