package errx

import (
	"fmt"
	"sync"
)

// codeDefinition describes a registered error code
type codeDefinition struct {
	errType    Type
	httpStatus int
	message    string
}

// Registry agrupa los códigos de error de un módulo bajo un prefijo común
type Registry struct {
	prefix string

	mu    sync.RWMutex
	codes map[string]codeDefinition
}

// NewRegistry creates a registry whose codes are prefixed with prefix
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		codes:  make(map[string]codeDefinition),
	}
}

// Register defines a code and returns its fully qualified name (PREFIX_CODE).
// Registering the same code twice panics; registries are built at init time.
func (r *Registry) Register(code string, errType Type, httpStatus int, message string) string {
	full := r.prefix + "_" + code

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.codes[full]; exists {
		panic(fmt.Sprintf("errx: code %s registered twice", full))
	}
	r.codes[full] = codeDefinition{
		errType:    errType,
		httpStatus: httpStatus,
		message:    message,
	}
	return full
}

// New builds a fresh error for a registered code
func (r *Registry) New(code string) *Error {
	r.mu.RLock()
	def, ok := r.codes[code]
	r.mu.RUnlock()

	if !ok {
		return &Error{
			Code:       code,
			Type:       TypeInternal,
			Message:    "unregistered error code",
			HTTPStatus: TypeInternal.HTTPStatus(),
		}
	}

	return &Error{
		Code:       code,
		Type:       def.errType,
		Message:    def.message,
		HTTPStatus: def.httpStatus,
	}
}

// NewWithCause builds an error for a registered code wrapping err
func (r *Registry) NewWithCause(code string, err error) *Error {
	return r.New(code).WithCause(err)
}

// Prefix returns the registry prefix
func (r *Registry) Prefix() string {
	return r.prefix
}
