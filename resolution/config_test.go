package resolution

import "testing"

func TestDefaultThresholdConfig(t *testing.T) {
	cfg := DefaultThresholdConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("пороги по умолчанию не проходят валидацию: %v", err)
	}
	if cfg.ConfirmThreshold != 0.86 || cfg.AutoThreshold != 0.92 ||
		cfg.TieProximity != 0.02 || cfg.MaxCandidates != 20 {
		t.Errorf("неожиданные пороги по умолчанию: %+v", cfg)
	}
}

func TestThresholdConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ThresholdConfig)
		wantErr bool
	}{
		{"по умолчанию", func(*ThresholdConfig) {}, false},
		{"нулевой порог подтверждения", func(c *ThresholdConfig) { c.ConfirmThreshold = 0 }, true},
		{"порог больше единицы", func(c *ThresholdConfig) { c.AutoThreshold = 1.5 }, true},
		{"подтверждение выше авто", func(c *ThresholdConfig) { c.ConfirmThreshold = 0.95 }, true},
		{"отрицательное окно", func(c *ThresholdConfig) { c.TieProximity = -0.01 }, true},
		{"нулевой лимит кандидатов", func(c *ThresholdConfig) { c.MaxCandidates = 0 }, true},
		{"равные пороги допустимы", func(c *ThresholdConfig) { c.ConfirmThreshold = 0.92 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultThresholdConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
