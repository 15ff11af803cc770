package resolution

import "fmt"

// ThresholdConfig пороги уверенности движка разрешения. Все значения
// настраиваются извне — разные проекты калибруют их эмпирически под свои
// справочники, значения по умолчанию откалиброваны под профиль Дайса.
type ThresholdConfig struct {
	// ConfirmThreshold нижняя граница зоны "нужно подтверждение человеком"
	ConfirmThreshold float64 `json:"confirm_threshold"`
	// AutoThreshold нижняя граница зоны автоматического разрешения
	AutoThreshold float64 `json:"auto_threshold"`
	// TieProximity окно близости к верхней оценке, внутри которого
	// кандидаты считаются претендентами на разбор ничьей
	TieProximity float64 `json:"tie_proximity"`
	// MaxCandidates максимум кандидатов в ранжированных списках исходов
	// Candidates и Unresolved
	MaxCandidates int `json:"max_candidates"`
}

// DefaultThresholdConfig возвращает пороги по умолчанию.
func DefaultThresholdConfig() ThresholdConfig {
	return ThresholdConfig{
		ConfirmThreshold: 0.86,
		AutoThreshold:    0.92,
		TieProximity:     0.02,
		MaxCandidates:    20,
	}
}

// Validate проверяет согласованность порогов.
func (c ThresholdConfig) Validate() error {
	if c.ConfirmThreshold <= 0 || c.ConfirmThreshold > 1 {
		return fmt.Errorf("confirm_threshold must be in (0,1], got %f", c.ConfirmThreshold)
	}
	if c.AutoThreshold <= 0 || c.AutoThreshold > 1 {
		return fmt.Errorf("auto_threshold must be in (0,1], got %f", c.AutoThreshold)
	}
	if c.ConfirmThreshold > c.AutoThreshold {
		return fmt.Errorf("confirm_threshold %f must not exceed auto_threshold %f",
			c.ConfirmThreshold, c.AutoThreshold)
	}
	if c.TieProximity < 0 {
		return fmt.Errorf("tie_proximity must be non-negative, got %f", c.TieProximity)
	}
	if c.MaxCandidates <= 0 {
		return fmt.Errorf("max_candidates must be positive, got %d", c.MaxCandidates)
	}
	return nil
}
