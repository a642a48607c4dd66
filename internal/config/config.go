package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	domainerrors "github.com/satyadev-truss/truss-review/internal/domain/errors"
)

type (
	Config struct {
		Port         int    `json:"port"`
		Language     string `json:"language"`
		Model        string `json:"model"`
		TriggerLabel string `json:"trigger_label"`

		// MaxDiffChars acota el diff incluido en el prompt. Un diff más grande
		// se trunca con una nota. Cero toma el default; un valor negativo
		// deshabilita el truncado.
		MaxDiffChars int `json:"max_diff_chars"`

		GitHubTimeoutSeconds     int `json:"github_timeout_seconds"`
		CompletionTimeoutSeconds int `json:"completion_timeout_seconds"`
		MediaTimeoutSeconds      int `json:"media_timeout_seconds"`

		// AllowedRepos restringe los repositorios "owner/repo" sobre los que
		// actúa el bot. Vacío significa sin restricción.
		AllowedRepos []string `json:"allowed_repos,omitempty"`

		// Profiles mapea logins (en minúsculas) a contexto biográfico libre
		// que se inyecta en el prompt del roast.
		Profiles map[string]string `json:"profiles,omitempty"`

		// StyleGuidePath apunta al archivo de la guía de estilo. Vacío
		// significa que ningún prompt lleva guía de estilo.
		StyleGuidePath string `json:"style_guide_path,omitempty"`

		PathFile string `json:"path_file"`

		// Secretos: solo por entorno, nunca se serializan al archivo.
		GeminiAPIKey  string `json:"-"`
		GiphyAPIKey   string `json:"-"`
		GitHubToken   string `json:"-"`
		WebhookSecret string `json:"-"`
	}
)

const (
	defaultPort              = 8080
	defaultLang              = "en"
	defaultModel             = string(ModelGeminiV25Flash)
	defaultTriggerLabel      = "truss-review"
	defaultMaxDiffChars      = 100000
	defaultGitHubTimeout     = 30
	defaultCompletionTimeout = 90
	defaultMediaTimeout      = 15
)

func LoadConfig(path string) (*Config, error) {
	var configPath string

	if filepath.Ext(path) == ".json" {
		configPath = path
	} else {
		configDir := filepath.Join(path, ".truss-review")
		configPath = filepath.Join(configDir, "config.json")

		if _, err := os.Stat(configDir); os.IsNotExist(err) {
			if err := os.MkdirAll(configDir, 0755); err != nil {
				return nil, fmt.Errorf("error al crear el directorio de configuración: %w", err)
			}
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error al leer el archivo de configuración: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error al decodificar el archivo JSON: %w", err)
	}
	config.PathFile = configPath
	applyDefaults(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("la configuración cargada no es válida: %w", err)
	}

	return &config, nil
}

func createDefaultConfig(path string) (*Config, error) {
	config := &Config{
		PathFile: path,
	}
	applyDefaults(config)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error al crear el directorio de configuración: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error al codificar la configuración por defecto: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("error al guardar la configuración por defecto: %w", err)
	}

	return config, nil
}

func SaveConfig(config *Config) error {
	if err := validateConfig(config); err != nil {
		return fmt.Errorf("la configuración a guardar no es válida: %w", err)
	}

	if config.PathFile == "" {
		return domainerrors.NewConfigError("path_file", "la ruta del archivo de configuración no está definida", nil)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("error al codificar la configuración: %w", err)
	}

	if err := os.WriteFile(config.PathFile, data, 0644); err != nil {
		return fmt.Errorf("error al guardar la configuración: %w", err)
	}

	return nil
}

func applyDefaults(config *Config) {
	if config.Port == 0 {
		config.Port = defaultPort
	}
	if config.Language == "" {
		config.Language = defaultLang
	}
	if config.Model == "" {
		config.Model = defaultModel
	}
	if config.TriggerLabel == "" {
		config.TriggerLabel = defaultTriggerLabel
	}
	if config.MaxDiffChars == 0 {
		config.MaxDiffChars = defaultMaxDiffChars
	}
	if config.GitHubTimeoutSeconds == 0 {
		config.GitHubTimeoutSeconds = defaultGitHubTimeout
	}
	if config.CompletionTimeoutSeconds == 0 {
		config.CompletionTimeoutSeconds = defaultCompletionTimeout
	}
	if config.MediaTimeoutSeconds == 0 {
		config.MediaTimeoutSeconds = defaultMediaTimeout
	}
}

func validateConfig(config *Config) error {
	if config.Port <= 0 || config.Port > 65535 {
		return domainerrors.NewConfigError("port", "el puerto debe estar entre 1 y 65535", nil)
	}
	if config.Language == "" {
		return domainerrors.NewConfigError("language", "el idioma no puede estar vacío", nil)
	}
	if !IsSupportedModel(config.Model) {
		return domainerrors.NewConfigError("model", fmt.Sprintf("modelo '%s' no soportado", config.Model), nil)
	}
	if config.TriggerLabel == "" {
		return domainerrors.NewConfigError("trigger_label", "la etiqueta de activación no puede estar vacía", nil)
	}
	for _, repo := range config.AllowedRepos {
		if !strings.Contains(repo, "/") {
			return domainerrors.NewConfigError("allowed_repos", fmt.Sprintf("'%s' no tiene el formato owner/repo", repo), nil)
		}
	}
	return nil
}

// LoadSecrets lee los secretos del entorno. Los dos requeridos (completions y
// media) fallan rápido acá, al arranque, nunca a mitad de un request.
func LoadSecrets(config *Config) error {
	_ = godotenv.Load()

	config.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	if config.GeminiAPIKey == "" {
		return domainerrors.NewConfigError("GEMINI_API_KEY", "variable de entorno requerida no definida", nil)
	}

	config.GiphyAPIKey = os.Getenv("GIPHY_API_KEY")
	if config.GiphyAPIKey == "" {
		return domainerrors.NewConfigError("GIPHY_API_KEY", "variable de entorno requerida no definida", nil)
	}

	config.GitHubToken = os.Getenv("GITHUB_TOKEN")
	if config.GitHubToken == "" {
		return domainerrors.NewConfigError("GITHUB_TOKEN", "variable de entorno requerida no definida", nil)
	}

	// Opcional: sin secreto no se valida la firma del webhook.
	config.WebhookSecret = os.Getenv("GITHUB_WEBHOOK_SECRET")

	return nil
}

// LoadStyleGuide lee la guía de estilo configurada. Retorna string vacío
// cuando no hay guía configurada; un path configurado pero ilegible es un
// error de arranque.
func LoadStyleGuide(config *Config) (string, error) {
	if config.StyleGuidePath == "" {
		return "", nil
	}
	data, err := os.ReadFile(config.StyleGuidePath)
	if err != nil {
		return "", domainerrors.NewConfigError("style_guide_path", "no se pudo leer la guía de estilo", err)
	}
	return string(data), nil
}

func (c *Config) GitHubTimeout() time.Duration {
	return time.Duration(c.GitHubTimeoutSeconds) * time.Second
}

func (c *Config) CompletionTimeout() time.Duration {
	return time.Duration(c.CompletionTimeoutSeconds) * time.Second
}

func (c *Config) MediaTimeout() time.Duration {
	return time.Duration(c.MediaTimeoutSeconds) * time.Second
}

// RepoAllowed indica si el bot debe actuar sobre el repositorio dado.
func (c *Config) RepoAllowed(slug string) bool {
	if len(c.AllowedRepos) == 0 {
		return true
	}
	for _, allowed := range c.AllowedRepos {
		if strings.EqualFold(allowed, slug) {
			return true
		}
	}
	return false
}
