package dto

// ImportacaoResponse resultado de uma importação de arquivo SPED Fiscal.
// Avisos carrega os erros de linha coletados; a importação é bem-sucedida
// mesmo com avisos, desde que o registro 0000 tenha sido lido.
type ImportacaoResponse struct {
	Empresa      EmpresaResponse `json:"empresa"`
	Competencias []string        `json:"competencias"`
	Produtos     int             `json:"produtos"`
	Documentos   int             `json:"documentos"`
	Vendas       int             `json:"vendas"`
	Apuracoes    int             `json:"apuracoes"`
	Registros    map[string]int  `json:"registros"` // linhas lidas por código
	Avisos       []string        `json:"avisos,omitempty"`
}
