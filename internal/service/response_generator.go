package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"echo-bloom/internal/llm"
)

const defaultGenerationTimeout = 15 * time.Second

var errEmptyGeneration = errors.New("empty generation")

const fallbackDefaultKey = "default"

var fallbackResponses = map[string]string{
	"anxiety":    "I hear the worry in your words. Remember: anxiety is your mind trying to protect you, even if it feels overwhelming. You're safe in this moment. 🌱",
	"joy":        "Your joy is contagious and beautiful! Savor this moment—positive emotions are seeds for resilience. You deserve this happiness. ✨",
	"depression": "I see you in your pain, and your feelings are completely valid. Even in darkness, you're showing courage by reaching out. One small step at a time. 💙",
	"gratitude":  "Gratitude is a powerful practice for the mind. By noticing the good, you're rewiring your brain for wellbeing. Beautiful work. 🌸",
	"default":    "Thank you for trusting me with these words. Your experience matters, and you're not alone in this garden. 🌿",
}

// GeneratedResponse indica si el texto vino del modelo o de la tabla de respaldo.
type GeneratedResponse struct {
	Text         string
	FromFallback bool
}

// ResponseGenerator produce la respuesta empatica de un echo.
// Cualquier falla del modelo se absorbe con una respuesta fija por emocion primaria.
type ResponseGenerator struct {
	client  llm.LLMClient
	timeout time.Duration
	logger  *zap.Logger
}

func NewResponseGenerator(client llm.LLMClient, timeout time.Duration, logger *zap.Logger) *ResponseGenerator {
	if timeout <= 0 {
		timeout = defaultGenerationTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResponseGenerator{client: client, timeout: timeout, logger: logger}
}

func (g *ResponseGenerator) GenerateResponse(ctx context.Context, text string, tags []string, moodScore float64) GeneratedResponse {
	reply, err := g.generate(ctx, buildEchoPrompt(text, tags, moodScore))
	if err == nil {
		return GeneratedResponse{Text: reply}
	}

	primary := fallbackDefaultKey
	if len(tags) > 0 {
		primary = tags[0]
	}
	g.logger.Warn("generation failed, using fallback response",
		zap.String("primary_emotion", primary),
		zap.Error(err),
	)
	return GeneratedResponse{Text: FallbackResponse(primary), FromFallback: true}
}

func (g *ResponseGenerator) generate(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.client == nil {
		return "", llm.ErrServiceUnavailable
	}
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	raw, err := g.client.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	reply := cleanGeneratedReply(raw)
	if reply == "" {
		return "", errEmptyGeneration
	}
	return reply, nil
}

// FallbackResponse devuelve la respuesta fija para la emocion; desconocidas usan la generica.
func FallbackResponse(primaryEmotion string) string {
	if resp, ok := fallbackResponses[primaryEmotion]; ok {
		return resp
	}
	return fallbackResponses[fallbackDefaultKey]
}

func moodDescriptor(moodScore float64) string {
	switch {
	case moodScore > 0:
		return "positive"
	case moodScore < 0:
		return "challenging"
	default:
		return "neutral"
	}
}

func buildEchoPrompt(text string, tags []string, moodScore float64) string {
	var b strings.Builder
	b.WriteString("As an empathetic mental wellness guide trained in Cognitive Behavioral Therapy and positive psychology,\n")
	b.WriteString("respond to this reflection with deep empathy and validation.\n\n")
	fmt.Fprintf(&b, "User's reflection: %q\n", text)
	fmt.Fprintf(&b, "Detected emotions: %s\n", strings.Join(tags, ", "))
	fmt.Fprintf(&b, "Mood context: %s\n\n", moodDescriptor(moodScore))
	b.WriteString("Provide a nurturing, validating response that:\n")
	b.WriteString("1. Acknowledges their feelings without judgment\n")
	b.WriteString("2. Offers a gentle psychological insight or reframe\n")
	b.WriteString("3. Ends with an empowering affirmation\n")
	b.WriteString("4. Keep it concise (2-3 sentences) and warm\n\n")
	b.WriteString("Response:")
	return b.String()
}
