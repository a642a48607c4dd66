package errors

import "fmt"

// ConfigError representa un error de configuración
type ConfigError struct {
	Field   string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config error [%s]: %s: %v", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("config error [%s]: %s", e.Field, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError crea un nuevo error de configuración
func NewConfigError(field, message string, err error) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// UpstreamError indica que una llamada a un colaborador externo (proveedor de
// completions o API del VCS) falló: red, auth, rate limit o respuesta inusable.
// Dispara el camino de comentario fallback en el pipeline.
type UpstreamError struct {
	Provider string
	Op       string
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fallo upstream en '%s' durante %s: %v", e.Provider, e.Op, e.Err)
	}
	return fmt.Sprintf("fallo upstream en '%s' durante %s: respuesta inusable", e.Provider, e.Op)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError crea un nuevo error de colaborador externo
func NewUpstreamError(provider, op string, err error) *UpstreamError {
	return &UpstreamError{
		Provider: provider,
		Op:       op,
		Err:      err,
	}
}

// DeliveryError indica que la publicación del comentario falló. Se loguea para
// visibilidad del operador, sin reintentos: el evento queda terminalmente
// fallado pero la clave de dedup se libera igual.
type DeliveryError struct {
	Owner  string
	Repo   string
	Number int
	Err    error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("no se pudo publicar el comentario en %s/%s#%d: %v", e.Owner, e.Repo, e.Number, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// NewDeliveryError crea un nuevo error de publicación de comentario
func NewDeliveryError(owner, repo string, number int, err error) *DeliveryError {
	return &DeliveryError{
		Owner:  owner,
		Repo:   repo,
		Number: number,
		Err:    err,
	}
}
