package config

type Model string

const (
	ModelGeminiV25Pro       Model = "gemini-2.5-pro"
	ModelGeminiV25Flash     Model = "gemini-2.5-flash"
	ModelGeminiV25FlashLite Model = "gemini-2.5-flash-lite"
)

func SupportedModels() []Model {
	return []Model{
		ModelGeminiV25Pro,
		ModelGeminiV25Flash,
		ModelGeminiV25FlashLite,
	}
}

func IsSupportedModel(name string) bool {
	for _, m := range SupportedModels() {
		if string(m) == name {
			return true
		}
	}
	return false
}
