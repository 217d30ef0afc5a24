package service

import (
	"strings"

	"echo-bloom/internal/domain"
)

const maxEmotionTags = 3

// MoodResult es la senal emocional derivada de un texto.
type MoodResult struct {
	Score     float64
	Tags      []string
	IsDefault bool // true cuando ninguna categoria coincidio
}

// MoodClassifier detecta emociones por coincidencia de palabras clave.
type MoodClassifier struct {
	Table KeywordTable
}

func NewMoodClassifier(table KeywordTable) *MoodClassifier {
	if len(table) == 0 {
		table = DefaultEmotionKeywords()
	}
	return &MoodClassifier{Table: table}
}

// ClassifyMood nunca falla: texto vacio o sin coincidencias produce ["neutral"] con score 0.
func (c *MoodClassifier) ClassifyMood(text string) MoodResult {
	lowered := strings.ToLower(text)
	var tags []string
	score := 0.0
	for _, category := range c.Table {
		if !category.matches(lowered) {
			continue
		}
		tags = append(tags, category.Name)
		score += category.Weight
	}

	if len(tags) == 0 {
		return MoodResult{Score: 0, Tags: []string{domain.NeutralEmotion}, IsDefault: true}
	}
	if len(tags) > maxEmotionTags {
		tags = tags[:maxEmotionTags]
	}
	return MoodResult{Score: clamp(score, -1, 1), Tags: tags}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
