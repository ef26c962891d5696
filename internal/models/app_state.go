package models

// ThemeMode is the UI colour scheme.
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// Valid reports whether m is a known theme.
func (m ThemeMode) Valid() bool {
	return m == ThemeLight || m == ThemeDark
}

// AppState is the persisted part of the application context. API keys are
// stored exactly as given here; sealing happens before a state reaches a
// backend.
type AppState struct {
	APIKey           string    `json:"apiKey"`
	OpenAIAPIKey     string    `json:"openaiApiKey"`
	SettingsComplete bool      `json:"isSettingsComplete"`
	Initialized      bool      `json:"isInitialized"`
	SidebarExpanded  bool      `json:"isSidebarExpanded"`
	Theme            ThemeMode `json:"theme"`
}

// DefaultAppState returns the state of a fresh installation.
func DefaultAppState() AppState {
	return AppState{Theme: ThemeLight}
}
