package entity

import "time"

// Empresa representa o contribuinte dono dos arquivos SPED importados.
// Criada automaticamente a partir do registro 0000 na primeira importação.
type Empresa struct {
	ID                string
	CNPJ              string // somente dígitos, único
	RazaoSocial       string
	InscricaoEstadual string
	UF                string
	CriadoEm          time.Time
}
