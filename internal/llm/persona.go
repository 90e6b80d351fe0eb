package llm

import "github.com/lorenzotomasdiez/quorum/internal/config"

// personas give each participant a distinct analytical angle. Cosmetic: the
// reply contract is identical for all of them.
var personas = map[string]string{
	config.ProviderOpenAI:    "You are an expert advisor participating in a multi-AI debate. Your strength is balanced analysis and practical trade-offs. Always respond with valid JSON as instructed.",
	config.ProviderGemini:    "You are an expert advisor participating in a multi-AI debate. Your strength is spotting emerging trends and unconventional angles. Always respond with valid JSON as instructed.",
	config.ProviderAnthropic: "You are an expert advisor participating in a multi-AI debate. Your strength is identifying risks and unintended consequences. Always respond with valid JSON as instructed.",
	config.ProviderGrok:      "You are an expert advisor participating in a multi-AI debate. Your strength is cutting through complexity to find simple truths. Always respond with valid JSON as instructed.",
}

// Persona returns the system prompt for a participant, defaulting to the
// balanced-analysis persona for unknown ids.
func Persona(participantID string) string {
	if p, ok := personas[participantID]; ok {
		return p
	}
	return personas[config.ProviderOpenAI]
}
