package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoRecords = errors.New("planilha sem registros com ORD preenchido")
	ErrNotFound  = errors.New("registro não encontrado")
)

// SchemaError indica que a planilha não possui todas as colunas obrigatórias
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("colunas obrigatórias ausentes na planilha: %s", strings.Join(e.Missing, ", "))
}

// AcquisitionError indica que a planilha não pôde ser baixada ou lida
type AcquisitionError struct {
	Source string
	Err    error
}

func NewAcquisitionError(source string, err error) *AcquisitionError {
	return &AcquisitionError{Source: source, Err: err}
}

func (e *AcquisitionError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("erro ao carregar arquivo (%s): %v", e.Source, e.Err)
	}
	return fmt.Sprintf("erro ao carregar arquivo: %v", e.Err)
}

func (e *AcquisitionError) Unwrap() error {
	return e.Err
}
