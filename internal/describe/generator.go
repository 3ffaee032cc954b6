package describe

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"padelmania/internal/models"
)

// Pre-authored copy for the launch catalog, keyed by product id.
var defaultSentences = map[string]string{
	"1": "Pelota PadelNature Pro: Sentí la energía del juego y la suavidad del impacto, creada para quienes viven el pádel con pasión. Su construcción premium te conecta con cada punto como una extensión natural de tu técnica.",
	"2": "EcoSpin Soft: La pelota que respeta tu aprendizaje y el medio ambiente. Cada rebote es una oportunidad de crecer, diseñada para que sientas la confianza desde el primer golpe hasta el último punto.",
	"3": "Grip Wave Control: Tu conexión perfecta con la pala. Sentí cómo cada movimiento se transmite con precisión absoluta, donde el control y la comodidad se encuentran en armonía natural.",
	"4": "Cubregrip EcoFeel: La textura que habla tu idioma de juego. Fabricado pensando en la sostenibilidad y en esas sensaciones únicas que solo un verdadero jugador puede apreciar.",
	"5": "Gorra AirFlow Verde: Protección que fluye contigo. Cuando el sol es intenso y el juego se alarga, sentí la libertad de moverte sin límites bajo su cuidado técnico.",
	"6": "Gorra ArenaWave: Elegancia que acompaña tu estilo. Inspirada en las texturas naturales de la arena y las olas, para jugadores que entienden que el pádel es arte en movimiento.",
	"7": "Muñequera SoftShield Azul: Tu escudo contra la humedad, tu aliado en cada intercambio. Tecnología que desaparece en tu muñeca para que solo sientas el juego puro.",
	"8": "Muñequera FreshGrip Blanca: Frescura que perdura partido tras partido. Sentí la diferencia de jugar con las manos secas y libres, porque tu rendimiento no conoce de interrupciones.",
}

var defaultTemplates = map[string]string{
	models.CategoryPelotas:    "{{.Title}}: Cada golpe suena distinto cuando la pelota acompaña tu juego. Rebote parejo y durabilidad para que solo pienses en el próximo punto.",
	models.CategoryGrips:      "{{.Title}}: Un agarre que se siente propio. Absorbe, responde y te deja concentrarte en la técnica.",
	models.CategoryGorras:     "{{.Title}}: Sombra y frescura para los partidos al sol, con el estilo de siempre.",
	models.CategoryMunequeras: "{{.Title}}: Manos secas de principio a fin, para que nada corte tu ritmo.",
	models.CategoryAccesorios: "{{.Title}}: El detalle que completa tu bolso de pádel y hace la diferencia en la cancha.",
}

// Generator produces the "AI" product copy shown on the detail page.
// Nothing leaves the process: the text comes from fixed sentences and
// per-category templates.
type Generator struct {
	sentences map[string]string
	templates map[string]*template.Template
}

type Option func(*Generator)

// WithSentence sets or replaces the fixed copy for one product id.
func WithSentence(productID, text string) Option {
	return func(g *Generator) { g.sentences[productID] = text }
}

// New builds a generator with the default copy. It fails only when a
// category template does not parse.
func New(opts ...Option) (*Generator, error) {
	g := &Generator{
		sentences: make(map[string]string, len(defaultSentences)),
		templates: make(map[string]*template.Template, len(defaultTemplates)),
	}
	for id, s := range defaultSentences {
		g.sentences[id] = s
	}
	for category, text := range defaultTemplates {
		tmpl, err := template.New(category).Parse(text)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", category, err)
		}
		g.templates[category] = tmpl
	}
	for _, o := range opts {
		o(g)
	}
	return g, nil
}

// Describe returns the fixed sentence for the product when there is one,
// then the category template, then the product's own description.
func (g *Generator) Describe(p models.Product) string {
	if s, ok := g.sentences[p.ID]; ok {
		return s
	}
	if tmpl, ok := g.templates[p.Category]; ok && strings.TrimSpace(p.Title) != "" {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, p); err == nil {
			return buf.String()
		}
	}
	return p.Description
}
