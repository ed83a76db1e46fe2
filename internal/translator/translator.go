// internal/translator/translator.go
package translator

import "context"

// Translator converts English prose and keyword phrases into European
// Portuguese. The pipeline treats it as an opaque collaborator.
type Translator interface {
	// TranslateText translates multi-paragraph prose, preserving the
	// paragraph structure of the input.
	TranslateText(ctx context.Context, text string) (string, error)

	// TranslateKeywords translates short phrases one for one, in order.
	TranslateKeywords(ctx context.Context, keywords []string) ([]string, error)
}
