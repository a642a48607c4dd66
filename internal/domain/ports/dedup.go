package ports

// InFlightRegistry define el guard de idempotencia del pipeline: un set de
// claves de PR "en procesamiento". Es un lock de reentrada del mismo instante,
// no un ledger durable: la clave se libera incondicionalmente al final de cada
// intento, con éxito o sin él.
type InFlightRegistry interface {
	// TryAcquire inserta la clave de forma atómica. Retorna false si la clave
	// ya estaba presente (hay un procesamiento en vuelo para ese PR).
	TryAcquire(key string) bool
	// Release remueve la clave. Es idempotente.
	Release(key string)
}
