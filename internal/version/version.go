package version

// Version es la versión actual de truss-review
// Esta versión debe actualizarse en cada release
const Version = "0.3.0"

// FullVersion retorna la versión con el prefijo v
func FullVersion() string {
	return "v" + Version
}
