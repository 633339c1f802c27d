package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config is the persistent application configuration
type Config struct {
	// Gemini API access
	Gemini GeminiConfig `json:"gemini"`

	// Language generated content is written in
	Language string `json:"language"`

	// Audio playback
	Audio AudioConfig `json:"audio"`

	// UI preferences
	UI UIConfig `json:"ui"`

	// DBPath overrides the saved-books database location
	DBPath string `json:"db_path,omitempty"`
}

// GeminiConfig holds model settings for each generation operation
type GeminiConfig struct {
	APIKey string `json:"api_key,omitempty"`

	PlanModel    string `json:"plan_model"`
	SummaryModel string `json:"summary_model"`
	FigureModel  string `json:"figure_model"`
	CourseModel  string `json:"course_model"`
	TopicModel   string `json:"topic_model"`
	SpeechModel  string `json:"speech_model"`
	Voice        string `json:"voice"`

	// Client-side pacing, 0 = unlimited
	RequestsPerMinute int `json:"requests_per_minute"`
}

// AudioConfig selects the external PCM player
type AudioConfig struct {
	Command string   `json:"command,omitempty"` // e.g. "aplay"; empty = autodetect
	Args    []string `json:"args,omitempty"`    // {rate} and {channels} are substituted
}

// UIConfig holds UI preferences
type UIConfig struct {
	Theme     string `json:"theme"`      // glamour style: "dark", "light", "notty"
	HomeSteps int    `json:"home_steps"` // plan steps previewed on home
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Gemini: GeminiConfig{
			PlanModel:    "gemini-3-flash-preview",
			SummaryModel: "gemini-3-flash-preview",
			FigureModel:  "gemini-3-flash-preview",
			CourseModel:  "gemini-3-pro-preview",
			TopicModel:   "gemini-3-flash-preview",
			SpeechModel:  "gemini-2.5-flash-preview-tts",
			Voice:        "Kore",
		},
		Language: "Spanish",
		UI: UIConfig{
			Theme:     "dark",
			HomeSteps: 2,
		},
	}
}

// Dir returns the HeadStart data directory. HEADSTART_HOME overrides it.
func Dir() string {
	if dir := os.Getenv("HEADSTART_HOME"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".headstart")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(Dir(), "config.json")
}

// DatabasePath returns where saved books are stored
func (c *Config) DatabasePath() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return filepath.Join(Dir(), "headstart.db")
}

// EventsPath returns the JSONL event log location
func EventsPath() string {
	return filepath.Join(Dir(), "events.jsonl")
}

// Load reads config from disk, or returns defaults. Environment variables
// always override the file.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		// Unknown or malformed files fall back to defaults
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			cfg = DefaultConfig()
		}
	}

	cfg.AutoPopulateFromEnv()
	return cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	path := ConfigPath()

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600) // Restrictive permissions for API keys
}

// AutoPopulateFromEnv fills in the API key and language from environment variables
func (c *Config) AutoPopulateFromEnv() {
	// Later names win: GEMINI_API_KEY takes precedence
	for _, name := range []string{"API_KEY", "GOOGLE_API_KEY", "GEMINI_API_KEY"} {
		if key := os.Getenv(name); key != "" {
			c.Gemini.APIKey = key
		}
	}
	if lang := os.Getenv("HEADSTART_LANGUAGE"); lang != "" {
		c.Language = lang
	}
}
