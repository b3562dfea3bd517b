package domain

import "encoding/json"

// Nullable representa um valor opcional no nível da célula.
// Valid=false significa que a célula estava vazia ou não pôde ser convertida.
type Nullable[T any] struct {
	Value T
	Valid bool
}

func Some[T any](value T) Nullable[T] {
	return Nullable[T]{Value: value, Valid: true}
}

func None[T any]() Nullable[T] {
	return Nullable[T]{}
}

// OrElse retorna o valor ou o padrão informado quando ausente
func (n Nullable[T]) OrElse(def T) T {
	if !n.Valid {
		return def
	}
	return n.Value
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}
