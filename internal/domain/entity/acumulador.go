package entity

import "time"

// Acumulador agrupa produtos para fins de apuração fiscal. Cada acumulador
// aponta para um CFOP; a exclusão é recusada enquanto houver produtos associados.
type Acumulador struct {
	Codigo        string // chave natural, ex. VENDAS_ST
	Descricao     string
	Cfop          string
	DataCadastro  time.Time
	DataAlteracao time.Time
}
