package services

import (
	"strings"

	"github.com/satyadev-truss/truss-review/internal/domain/ports"
)

var _ ports.ContextProvider = (*StaticContextProvider)(nil)

// StaticContextProvider resuelve contexto de autor y guía de estilo desde
// datos inyectados al arranque. Los lookups son locales y no pueden fallar.
type StaticContextProvider struct {
	profiles   map[string]string
	styleGuide string
}

// NewStaticContextProvider crea el provider normalizando las claves de los
// perfiles a minúsculas.
func NewStaticContextProvider(profiles map[string]string, styleGuide string) *StaticContextProvider {
	normalized := make(map[string]string, len(profiles))
	for login, context := range profiles {
		normalized[strings.ToLower(login)] = context
	}
	return &StaticContextProvider{
		profiles:   normalized,
		styleGuide: styleGuide,
	}
}

// AuthorContext retorna el contexto del autor. La ausencia es un estado
// válido, no un error.
func (p *StaticContextProvider) AuthorContext(login string) (string, bool) {
	context, ok := p.profiles[strings.ToLower(login)]
	return context, ok
}

// StyleGuide retorna la guía de estilo configurada, si existe.
func (p *StaticContextProvider) StyleGuide() (string, bool) {
	if p.styleGuide == "" {
		return "", false
	}
	return p.styleGuide, true
}
