package services

import (
	"github.com/puzpuzpuz/xsync/v4"
	"github.com/satyadev-truss/truss-review/internal/domain/ports"
)

var _ ports.InFlightRegistry = (*InFlightRegistry)(nil)

// InFlightRegistry es el set en memoria de claves de PR en procesamiento.
// El check-and-insert es atómico respecto de handlers concurrentes sobre la
// misma clave. Vida útil: la del proceso; un redelivery después de un restart
// se acepta como reprocesamiento legítimo.
type InFlightRegistry struct {
	keys *xsync.Map[string, struct{}]
}

// NewInFlightRegistry crea un registro vacío.
func NewInFlightRegistry() *InFlightRegistry {
	return &InFlightRegistry{
		keys: xsync.NewMap[string, struct{}](),
	}
}

// TryAcquire inserta la clave de forma atómica. Retorna false si ya estaba
// presente: dos corridas concurrentes para la misma clave nunca pasan las dos.
func (r *InFlightRegistry) TryAcquire(key string) bool {
	_, loaded := r.keys.LoadOrStore(key, struct{}{})
	return !loaded
}

// Release remueve la clave. Remover una clave ausente es un no-op.
func (r *InFlightRegistry) Release(key string) {
	r.keys.Delete(key)
}

// Size retorna la cantidad de claves en vuelo, para logs y tests.
func (r *InFlightRegistry) Size() int {
	return r.keys.Size()
}
