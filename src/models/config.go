package models

// OnboardingConfigYAML carries the workflow defaults loaded from the service
// config file.
type OnboardingConfigYAML struct {
	DefaultAccountType string `yaml:"default_account_type"`
	Currency           string `yaml:"currency"`
}

func NewDefaultOnboardingConfig() OnboardingConfigYAML {
	return OnboardingConfigYAML{
		DefaultAccountType: string(AccountTypeSavings),
		Currency:           "USD",
	}
}
