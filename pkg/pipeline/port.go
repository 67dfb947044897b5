package pipeline

import "context"

// DefinitionSource define el contrato para obtener la definición del pipeline
type DefinitionSource interface {
	Load(ctx context.Context) (*Definition, error)
}

// Load fetches a definition from the source and validates it
func Load(ctx context.Context, src DefinitionSource, opts ...Option) (*Config, error) {
	def, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	return NewConfig(def, opts...)
}
