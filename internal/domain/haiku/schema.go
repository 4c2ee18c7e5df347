package haiku

import "fmt"

// Structured answers expected from the provider. Field shapes drive the
// JSON schema sent with each call.

type haikuAnswer struct {
	Title string `json:"title"`
	Haiku string `json:"haiku"`
}

type critiqueAnswer struct {
	CreativityScore   int `json:"creativity_score"`
	VocabularyDensity int `json:"vocabulary_density"`
	RizzLevel         int `json:"rizz_level"`
}

type imagePromptAnswer struct {
	Prompt string `json:"prompt"`
}

// validate enforces the 1-5 bound the generation prompt promises. The bound
// is checked here, at the service boundary, not by the storage layer.
func (a critiqueAnswer) validate() error {
	for name, score := range map[string]int{
		"creativity_score":   a.CreativityScore,
		"vocabulary_density": a.VocabularyDensity,
		"rizz_level":         a.RizzLevel,
	} {
		if score < 1 || score > 5 {
			return fmt.Errorf("critique score %s out of range: %d", name, score)
		}
	}
	return nil
}
