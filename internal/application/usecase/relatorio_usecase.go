package usecase

import (
	"fmt"

	"github.com/contabilize/sped-fiscal-api/internal/application/dto"
	"github.com/contabilize/sped-fiscal-api/internal/domain"
	"github.com/contabilize/sped-fiscal-api/internal/domain/entity"
	"github.com/contabilize/sped-fiscal-api/internal/domain/relatorio"
	"github.com/contabilize/sped-fiscal-api/internal/domain/repository"
)

// RelatorioPDFGenerator gera a versão em PDF do relatório de vendas.
// A implementação vive em infrastructure/pdf.
type RelatorioPDFGenerator interface {
	GerarRelatorioVendas(empresa *entity.Empresa, competencia string, rel *relatorio.RelatorioVendas) ([]byte, error)
}

// RelatorioUseCase agregações de venda sobre os dados importados. Os
// relatórios por acumulador e por CFOP partem dos mesmos itens rateados e
// por isso fecham entre si; todos recusam competências com produtos sem
// acumulador em vez de devolver totais parciais.
type RelatorioUseCase struct {
	repo        repository.RelatorioRepository
	empresaRepo repository.EmpresaRepository
	pdf         RelatorioPDFGenerator
}

// NewRelatorioUseCase constrói o caso de uso.
func NewRelatorioUseCase(
	repo repository.RelatorioRepository,
	empresaRepo repository.EmpresaRepository,
	pdf RelatorioPDFGenerator,
) *RelatorioUseCase {
	return &RelatorioUseCase{repo: repo, empresaRepo: empresaRepo, pdf: pdf}
}

// amostraCodigos códigos ofensores devolvidos no erro de classificação pendente.
const amostraCodigos = 20

// Resumo totais por condição de pagamento da competência.
func (uc *RelatorioUseCase) Resumo(empresaID, competencia string) (*dto.ResumoVendasResponse, error) {
	if err := uc.validarEscopo(empresaID, competencia); err != nil {
		return nil, err
	}
	resumo, err := uc.repo.ResumoVendas(empresaID, competencia)
	if err != nil {
		return nil, err
	}
	return &dto.ResumoVendasResponse{
		Competencia:  competencia,
		TotalVendas:  resumo.TotalVendas,
		VendasAVista: resumo.VendasAVista,
		VendasAPrazo: resumo.VendasAPrazo,
	}, nil
}

// RelatorioVendas vendas rateadas agrupadas por acumulador, com abertura por data.
func (uc *RelatorioUseCase) RelatorioVendas(empresaID, competencia string) (*dto.RelatorioVendasResponse, error) {
	rel, err := uc.calcularRelatorioVendas(empresaID, competencia)
	if err != nil {
		return nil, err
	}
	out := &dto.RelatorioVendasResponse{
		Competencia:  competencia,
		Acumuladores: make([]dto.GrupoAcumuladorResponse, 0, len(rel.Acumuladores)),
		TotalGeral:   rel.TotalGeral,
	}
	for _, g := range rel.Acumuladores {
		grupo := dto.GrupoAcumuladorResponse{
			Codigo:        g.Codigo,
			Descricao:     g.Descricao,
			Total:         g.Total,
			VendasPorData: make([]dto.VendaPorData, 0, len(g.VendasPorData)),
		}
		for _, d := range g.VendasPorData {
			grupo.VendasPorData = append(grupo.VendasPorData, dto.VendaPorData{Data: d.Data, Total: d.Total})
		}
		out.Acumuladores = append(out.Acumuladores, grupo)
	}
	return out, nil
}

// RelatorioVendasPDF o mesmo relatório de vendas, renderizado em PDF A4.
// Devolve os bytes e o nome de arquivo sugerido.
func (uc *RelatorioUseCase) RelatorioVendasPDF(empresaID, competencia string) ([]byte, string, error) {
	empresa, err := uc.empresaRepo.GetByID(empresaID)
	if err != nil {
		return nil, "", err
	}
	if empresa == nil {
		return nil, "", domain.ErrNotFound
	}
	rel, err := uc.calcularRelatorioVendas(empresaID, competencia)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.pdf.GerarRelatorioVendas(empresa, competencia, rel)
	if err != nil {
		return nil, "", fmt.Errorf("gerar PDF do relatório: %w", err)
	}
	nome := "relatorio-vendas"
	if competencia != "" {
		nome += "-" + competencia
	}
	return pdfBytes, nome + ".pdf", nil
}

// RelatorioCfop vendas rateadas agrupadas pelo CFOP do acumulador de cada
// produto. Como parte dos mesmos itens do relatório por acumulador, a soma
// dos CFOPs é igual ao total geral daquele relatório.
func (uc *RelatorioUseCase) RelatorioCfop(empresaID, competencia string) (*dto.RelatorioCfopResponse, error) {
	itens, err := uc.itensRateados(empresaID, competencia)
	if err != nil {
		return nil, err
	}
	totais := relatorio.AgruparPorCfop(itens)
	out := &dto.RelatorioCfopResponse{
		Competencia: competencia,
		Cfops:       make([]dto.TotalCfopResponse, 0, len(totais)),
	}
	for _, t := range totais {
		out.Cfops = append(out.Cfops, dto.TotalCfopResponse{Cfop: t.Cfop, Total: t.Total})
		out.TotalGeral = out.TotalGeral.Add(t.Total)
	}
	return out, nil
}

// ApuracaoCfop os totais analíticos C190 por CFOP, exatamente como
// declarados no arquivo. Trilha de auditoria: não depende da classificação e
// por isso não exige acumuladores completos.
func (uc *RelatorioUseCase) ApuracaoCfop(empresaID, competencia string) (*dto.ApuracaoCfopResponse, error) {
	if competencia != "" {
		if err := domain.ValidarCompetencia(competencia); err != nil {
			return nil, err
		}
	}
	totais, err := uc.repo.ApuracaoPorCfop(empresaID, competencia)
	if err != nil {
		return nil, err
	}
	out := &dto.ApuracaoCfopResponse{
		Competencia: competencia,
		Cfops:       make([]dto.TotalCfopResponse, 0, len(totais)),
	}
	for _, t := range totais {
		out.Cfops = append(out.Cfops, dto.TotalCfopResponse{Cfop: t.Cfop, Total: t.Total})
	}
	return out, nil
}

// Competencias períodos YYYY-MM com vendas da empresa, mais recente primeiro.
func (uc *RelatorioUseCase) Competencias(empresaID string) (*dto.CompetenciasResponse, error) {
	competencias, err := uc.repo.Competencias(empresaID)
	if err != nil {
		return nil, err
	}
	return &dto.CompetenciasResponse{Items: competencias}, nil
}

// Estatisticas visão geral dos dados importados da empresa.
func (uc *RelatorioUseCase) Estatisticas(empresaID string) (*dto.EstatisticasResponse, error) {
	est, err := uc.repo.Estatisticas(empresaID)
	if err != nil {
		return nil, err
	}
	out := &dto.EstatisticasResponse{
		TotalProdutos:         est.TotalProdutos,
		ProdutosSemAcumulador: est.ProdutosSemAcumulador,
		TotalDocumentos:       est.TotalDocumentos,
		TotalVendas:           est.TotalVendas,
		ValorTotalVendas:      est.ValorTotalVendas,
	}
	if est.PrimeiraVenda != nil {
		out.PrimeiraVenda = est.PrimeiraVenda.Format("2006-01-02")
	}
	if est.UltimaVenda != nil {
		out.UltimaVenda = est.UltimaVenda.Format("2006-01-02")
	}
	return out, nil
}

func (uc *RelatorioUseCase) calcularRelatorioVendas(empresaID, competencia string) (*relatorio.RelatorioVendas, error) {
	itens, err := uc.itensRateados(empresaID, competencia)
	if err != nil {
		return nil, err
	}
	return relatorio.AgruparPorAcumulador(itens), nil
}

func (uc *RelatorioUseCase) itensRateados(empresaID, competencia string) ([]relatorio.ItemRateado, error) {
	if err := uc.validarEscopo(empresaID, competencia); err != nil {
		return nil, err
	}
	itens, err := uc.repo.ItensVenda(empresaID, competencia)
	if err != nil {
		return nil, err
	}
	return relatorio.CalcularRateio(itens), nil
}

// validarEscopo valida a competência e recusa o relatório enquanto houver
// produtos com vendas no período e sem acumulador: total parcial silencioso
// é pior que erro.
func (uc *RelatorioUseCase) validarEscopo(empresaID, competencia string) error {
	if empresaID == "" {
		return fmt.Errorf("%w: empresa_id é obrigatório", domain.ErrInvalidInput)
	}
	if competencia != "" {
		if err := domain.ValidarCompetencia(competencia); err != nil {
			return err
		}
	}
	total, codigos, err := uc.repo.ProdutosSemAcumulador(empresaID, competencia, amostraCodigos)
	if err != nil {
		return err
	}
	if total > 0 {
		return &domain.ProdutosSemAcumuladorError{Total: total, Codigos: codigos}
	}
	return nil
}
