// Package assistant implements the S.O.S EnergIA conversational helper.
// Replies come from one of two remote OpenAI-compatible providers or from a
// deterministic canned generator when no provider is configured.
package assistant

import (
	"context"

	"github.com/sume/estra/internal/curve"
	"github.com/sume/estra/internal/endpoint"
)

// Request carries everything a generator may use to answer one prompt.
type Request struct {
	Prompt  string
	Machine string
	Period  curve.Period
	// Data is the last energy-summary snapshot, or nil when the endpoint has
	// not been queried.
	Data endpoint.Summary
}

// TextGenerator produces one natural-language reply per request.
type TextGenerator interface {
	// Name identifies the provider in logs and metrics.
	Name() string
	Reply(ctx context.Context, req Request) (string, error)
}

// WelcomeMessage is the greeting seeded into every new chat session.
func WelcomeMessage(smart bool) string {
	msg := "¿En qué puedo ayudarte desde nuestro centro de analítica de datos para el Sistema de Gestión Energética?"
	if smart {
		msg += " IA avanzada activada."
	}
	return msg
}

// SuggestedQuestions lists the canned prompts offered at the start of a
// session.
func SuggestedQuestions() []string {
	return []string{
		"¿Cuál es el consumo energético actual de esta máquina?",
		"¿Cómo está la eficiencia energética de esta máquina?",
		"¿Cuál es el estado actual de la máquina?",
		"¿Qué información tienes del sistema de energía en tiempo real?",
	}
}
