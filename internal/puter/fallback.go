// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package puter

import (
	"fmt"
	"strings"

	"github.com/cosmicai/cosmic-chat/internal/catalog"
	"github.com/cosmicai/cosmic-chat/internal/util"
)

// =============================================================================
// FALLBACK RESPONSES
// =============================================================================

// Fallback synthesizes a local response when the service cannot be
// reached. The template is chosen deterministically from the message
// content so the same input always yields the same shape: coding questions
// get coding tips, explanation requests get guidance, everything else gets
// one of three generic templates keyed off the message length.
func Fallback(message, modelID string, cause error) string {
	modelName := "AI"
	if modelID != "" {
		modelName = catalog.DisplayName(modelID)
	}

	lower := strings.ToLower(message)
	var body string
	switch {
	case strings.Contains(lower, "code") || strings.Contains(lower, "program"):
		body = codingFallback(modelName)
	case strings.Contains(lower, "explain") || strings.Contains(lower, "what is"):
		body = explainFallback(message, modelName)
	default:
		body = genericFallback(message, modelName)
	}

	if cause != nil {
		return body + "\n\nTechnical details: " + cause.Error()
	}
	return body
}

func codingFallback(modelName string) string {
	return fmt.Sprintf(`I'd be happy to help with coding! However, I'm currently experiencing connectivity issues with the %s service.

Quick Coding Tips:
1. For debugging: Check syntax, indentation, and variable names
2. For new projects: Start with a basic structure and build incrementally
3. For algorithms: Break down the problem into smaller steps

Please try again in a moment when the connection is restored.`, modelName)
}

func explainFallback(message, modelName string) string {
	return fmt.Sprintf(`I understand you're looking for an explanation about: "%s..."

I'm currently experiencing connectivity issues with the %s service, but I'd be happy to help once the connection is restored.

In the meantime:
- Try rephrasing your question
- Break complex topics into smaller questions
- Check if there are specific aspects you'd like me to focus on

Please try again shortly!`, util.TruncateRunesNoEllipsis(message, 100), modelName)
}

func genericFallback(message, modelName string) string {
	templates := []string{
		`Hello! I'm %[1]s and I'd love to help with: "%[2]s..."

However, I'm currently experiencing connectivity issues. Please try again in a moment - I'll be back online shortly!`,

		`Your message has been received by %[1]s! Unfortunately, there seems to be a temporary service issue.

I'm working to get back online and assist you with your question about "%[3]s..."`,

		`%[1]s here! I see your question about "%[3]s..." and I want to help, but I'm experiencing some technical difficulties.

Please try again in a few moments - I should be back online soon!`,
	}

	tmpl := templates[len([]rune(message))%len(templates)]
	return fmt.Sprintf(tmpl,
		modelName,
		util.TruncateRunesNoEllipsis(message, 80),
		util.TruncateRunesNoEllipsis(message, 60))
}
