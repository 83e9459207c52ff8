package entity

import "time"

// Cfop código fiscal de operações e prestações.
type Cfop struct {
	Cfop         string // 4 dígitos, primeiro entre 1 e 7
	Descricao    string
	DataCadastro time.Time
}
