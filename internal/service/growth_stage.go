package service

import "echo-bloom/internal/domain"

// GrowthStageFor mapea el mood score al estadio visual. Flower no se asigna nunca.
func GrowthStageFor(moodScore float64) domain.GrowthStage {
	switch {
	case moodScore > 0.3:
		return domain.GrowthStageBloom
	case moodScore > 0:
		return domain.GrowthStageSprout
	default:
		return domain.GrowthStageSeed
	}
}
