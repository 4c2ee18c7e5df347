package haiku

import "fmt"

// Prompt builders for the generation actions. Scores and shapes here must
// stay in sync with the response schemas in schema.go.

func haikuPrompt(description string) string {
	return fmt.Sprintf("Generate a haiku about %s.", description)
}

func critiquePrompt(title, text string) string {
	return fmt.Sprintf(
		"Critique the following haiku titled %q:\n\n%s\n\n"+
			"Score it on creativity, vocabulary density and rizz level. "+
			"Each score is an integer from 1 to 5 inclusive.",
		title, text,
	)
}

// variantStyles gives each concurrent image-prompt branch a distinct
// artistic direction.
var variantStyles = []string{
	"a vivid, photorealistic scene",
	"a minimalist ink-wash painting",
	"a dreamlike, surreal illustration",
}

func imagePromptVariant(title, text string, variant int) string {
	style := variantStyles[variant%len(variantStyles)]
	return fmt.Sprintf(
		"Write a single image-generation prompt depicting the haiku %q as %s.\n\n%s",
		title, style, text,
	)
}
