package service

import (
	"strings"

	"echo-bloom/internal/domain"
)

// SeedTypeClassifier asigna el primer tipo de la tabla con alguna coincidencia.
type SeedTypeClassifier struct {
	Table KeywordTable
}

func NewSeedTypeClassifier(table KeywordTable) *SeedTypeClassifier {
	if len(table) == 0 {
		table = DefaultSeedTypeKeywords()
	}
	return &SeedTypeClassifier{Table: table}
}

func (c *SeedTypeClassifier) ClassifySeedType(text string) domain.SeedType {
	lowered := strings.ToLower(text)
	for _, category := range c.Table {
		if category.matches(lowered) {
			return domain.SeedType(category.Name)
		}
	}
	return domain.SeedTypeReflection
}
