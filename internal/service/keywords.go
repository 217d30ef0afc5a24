package service

import "strings"

// KeywordCategory asocia una etiqueta con las palabras clave que la activan.
// Weight solo aplica a la tabla de emociones: aporte al mood score por coincidencia.
type KeywordCategory struct {
	Name     string
	Keywords []string
	Weight   float64
}

// KeywordTable es una tabla ordenada; el orden define desempates y first-match.
type KeywordTable []KeywordCategory

const (
	positiveEmotionWeight = 0.3
	negativeEmotionWeight = -0.25
)

// DefaultEmotionKeywords devuelve una copia nueva de la tabla de emociones.
func DefaultEmotionKeywords() KeywordTable {
	return KeywordTable{
		{Name: "anxiety", Weight: negativeEmotionWeight, Keywords: []string{"anxious", "worried", "nervous", "panic", "fear", "scared", "stress"}},
		{Name: "depression", Weight: negativeEmotionWeight, Keywords: []string{"sad", "depressed", "hopeless", "empty", "numb", "worthless"}},
		{Name: "joy", Weight: positiveEmotionWeight, Keywords: []string{"happy", "joyful", "excited", "grateful", "blessed", "amazing"}},
		{Name: "anger", Weight: negativeEmotionWeight, Keywords: []string{"angry", "frustrated", "irritated", "furious", "mad"}},
		{Name: "calm", Weight: positiveEmotionWeight, Keywords: []string{"peaceful", "relaxed", "calm", "serene", "content"}},
		{Name: "hope", Weight: positiveEmotionWeight, Keywords: []string{"hope", "optimistic", "better", "improve", "growing"}},
		{Name: "gratitude", Weight: positiveEmotionWeight, Keywords: []string{"thank", "grateful", "appreciate", "blessing", "fortunate"}},
		{Name: "loneliness", Weight: negativeEmotionWeight, Keywords: []string{"lonely", "alone", "isolated", "disconnected"}},
		{Name: "overwhelm", Keywords: []string{"overwhelmed", "too much", "exhausted", "burnout", "drained"}},
	}
}

// DefaultSeedTypeKeywords devuelve la tabla de tipos de semilla.
// reflection va antes que gratitude: "I think I'm grateful" es reflection.
func DefaultSeedTypeKeywords() KeywordTable {
	return KeywordTable{
		{Name: "reflection", Keywords: []string{"think", "realize", "understand", "learn", "notice"}},
		{Name: "gratitude", Keywords: []string{"grateful", "thank", "appreciate", "blessing"}},
		{Name: "concern", Keywords: []string{"worried", "anxious", "fear", "concern"}},
		{Name: "joy", Keywords: []string{"happy", "excited", "love", "amazing"}},
		{Name: "growth", Keywords: []string{"trying", "learning", "working", "practicing"}},
	}
}

// matches asume que lowered ya esta en minusculas.
func (c KeywordCategory) matches(lowered string) bool {
	for _, kw := range c.Keywords {
		if kw != "" && strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
