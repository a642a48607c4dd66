package ports

// ContextProvider define los lookups estáticos de contexto que aumentan el
// prompt. Son locales y síncronos, no pueden fallar: la ausencia de contexto
// es un estado válido.
type ContextProvider interface {
	// AuthorContext retorna el contexto biográfico del autor, si existe.
	// La búsqueda es por login en minúsculas.
	AuthorContext(login string) (string, bool)
	// StyleGuide retorna el texto de la guía de estilo, si está configurada.
	StyleGuide() (string, bool)
}
