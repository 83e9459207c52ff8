package sped

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/contabilize/sped-fiscal-api/internal/application/dto"
	"github.com/contabilize/sped-fiscal-api/internal/domain/entity"
	"github.com/contabilize/sped-fiscal-api/internal/domain/repository"
	domsped "github.com/contabilize/sped-fiscal-api/internal/domain/sped"
	"github.com/contabilize/sped-fiscal-api/pkg/logger"
)

// ImportUseCase orquestra a importação de um arquivo SPED Fiscal: leitura,
// identificação do contribuinte e substituição atômica dos dados das
// competências presentes no arquivo. Reimportar o mesmo arquivo produz o
// mesmo estado final (substitui, nunca duplica).
type ImportUseCase struct {
	parser   *domsped.Parser
	txRunner TxRunner
	log      *logger.Logger

	// Importações concorrentes da mesma empresa são serializadas: a
	// substituição é delete-então-insert e não é segura sob dois escritores.
	mu    sync.Mutex
	locks map[string]*sync.Mutex // por CNPJ
}

// NewImportUseCase constrói o caso de uso.
func NewImportUseCase(parser *domsped.Parser, txRunner TxRunner, log *logger.Logger) *ImportUseCase {
	return &ImportUseCase{
		parser:   parser,
		txRunner: txRunner,
		log:      log,
		locks:    make(map[string]*sync.Mutex),
	}
}

// Importar lê o arquivo e persiste o resultado em uma única transação.
// Erros fatais de leitura (codificação, registro 0000, arquivo vazio, sem
// movimento) abortam sem persistir nada; erros de linha viram avisos no
// resultado.
func (uc *ImportUseCase) Importar(ctx context.Context, r io.Reader, nomeArquivo string) (*dto.ImportacaoResponse, error) {
	arq, err := uc.parser.Parse(r)
	if err != nil {
		return nil, err
	}

	lock := uc.lockEmpresa(arq.Contribuinte.CNPJ)
	lock.Lock()
	defer lock.Unlock()

	competencias := arq.Competencias()
	var empresa *entity.Empresa

	err = uc.txRunner.Run(ctx, func(
		empresaRepo repository.EmpresaRepository,
		produtoRepo repository.ProdutoRepository,
		documentoRepo repository.DocumentoFiscalRepository,
		vendaRepo repository.VendaRepository,
		apuracaoRepo repository.ApuracaoCfopRepository,
	) error {
		empresa, err = encontrarOuCriarEmpresa(empresaRepo, arq.Contribuinte)
		if err != nil {
			return err
		}

		// Substituição por competência: os documentos das competências do
		// arquivo saem antes dos novos entrarem; vendas e apurações caem em
		// cascata.
		if _, err := documentoRepo.DeleteByCompetencias(empresa.ID, competencias); err != nil {
			return fmt.Errorf("substituir competências: %w", err)
		}

		agora := time.Now()
		for _, p := range arq.Produtos {
			produto := &entity.Produto{
				ID:            uuid.New().String(),
				EmpresaID:     empresa.ID,
				CodigoItem:    p.CodigoItem,
				DescricaoItem: p.Descricao,
				Unidade:       p.Unidade,
				NCM:           p.NCM,
				Ativo:         true,
				DataCadastro:  agora,
				DataAlteracao: agora,
			}
			if err := produtoRepo.Upsert(produto); err != nil {
				return fmt.Errorf("upsert produto %s: %w", p.CodigoItem, err)
			}
		}

		docIDs := make(map[string]string, len(arq.Documentos))
		documentos := make([]*entity.DocumentoFiscal, 0, len(arq.Documentos))
		for _, d := range arq.Documentos {
			id := uuid.New().String()
			docIDs[d.NumDocumento+"|"+d.Serie] = id
			documentos = append(documentos, &entity.DocumentoFiscal{
				ID:             id,
				EmpresaID:      empresa.ID,
				NumDocumento:   d.NumDocumento,
				Serie:          d.Serie,
				Data:           d.Data,
				ValorTotal:     d.ValorTotal,
				IndOper:        "1",
				IndPagamento:   d.IndPagamento,
				DataImportacao: agora,
			})
		}
		if err := documentoRepo.InsertMany(documentos); err != nil {
			return fmt.Errorf("inserir documentos: %w", err)
		}

		datas := make(map[string]time.Time, len(arq.Documentos))
		for _, d := range arq.Documentos {
			datas[d.NumDocumento+"|"+d.Serie] = d.Data
		}
		vendas := make([]*entity.Venda, 0, len(arq.Vendas))
		for _, v := range arq.Vendas {
			chave := v.NumDocumento + "|" + v.Serie
			vendas = append(vendas, &entity.Venda{
				ID:            uuid.New().String(),
				DocumentoID:   docIDs[chave],
				EmpresaID:     empresa.ID,
				Data:          datas[chave],
				CodigoItem:    v.CodigoItem,
				Quantidade:    v.Quantidade,
				ValorUnitario: v.ValorUnitario,
				ValorTotal:    v.ValorTotal,
				ValorDesconto: v.ValorDesconto,
				BaseICMS:      v.BaseICMS,
				ValorICMS:     v.ValorICMS,
				AliquotaICMS:  v.AliquotaICMS,
			})
		}
		if err := vendaRepo.InsertMany(vendas); err != nil {
			return fmt.Errorf("inserir vendas: %w", err)
		}

		apuracoes := make([]*entity.ApuracaoCfop, 0, len(arq.Apuracoes))
		for _, ap := range arq.Apuracoes {
			apuracoes = append(apuracoes, &entity.ApuracaoCfop{
				ID:            uuid.New().String(),
				DocumentoID:   docIDs[ap.NumDocumento+"|"+ap.Serie],
				CstICMS:       ap.CstICMS,
				Cfop:          ap.Cfop,
				AliquotaICMS:  ap.AliquotaICMS,
				ValorOperacao: ap.ValorOperacao,
				BaseICMS:      ap.BaseICMS,
				ValorICMS:     ap.ValorICMS,
			})
		}
		if err := apuracaoRepo.InsertMany(apuracoes); err != nil {
			return fmt.Errorf("inserir apurações: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("arquivo", nomeArquivo).
		Str("cnpj", empresa.CNPJ).
		Strs("competencias", competencias).
		Int("documentos", len(arq.Documentos)).
		Int("vendas", len(arq.Vendas)).
		Int("avisos", len(arq.Erros)).
		Msg("arquivo SPED importado")

	avisos := make([]string, 0, len(arq.Erros))
	for _, e := range arq.Erros {
		avisos = append(avisos, e.String())
	}
	return &dto.ImportacaoResponse{
		Empresa: dto.EmpresaResponse{
			ID:                empresa.ID,
			CNPJ:              empresa.CNPJ,
			RazaoSocial:       empresa.RazaoSocial,
			InscricaoEstadual: empresa.InscricaoEstadual,
			UF:                empresa.UF,
			CriadoEm:          empresa.CriadoEm,
		},
		Competencias: competencias,
		Produtos:     len(arq.Produtos),
		Documentos:   len(arq.Documentos),
		Vendas:       len(arq.Vendas),
		Apuracoes:    len(arq.Apuracoes),
		Registros:    arq.Registros,
		Avisos:       avisos,
	}, nil
}

// lockEmpresa devolve o mutex da empresa, criando-o na primeira importação.
func (uc *ImportUseCase) lockEmpresa(cnpj string) *sync.Mutex {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	lock, ok := uc.locks[cnpj]
	if !ok {
		lock = &sync.Mutex{}
		uc.locks[cnpj] = lock
	}
	return lock
}

// encontrarOuCriarEmpresa busca a empresa pelo CNPJ do registro 0000 e a cria
// na primeira importação. Uma criação concorrente perde a corrida na unique
// de CNPJ; nesse caso a busca é repetida.
func encontrarOuCriarEmpresa(repo repository.EmpresaRepository, c domsped.Contribuinte) (*entity.Empresa, error) {
	empresa, err := repo.GetByCNPJ(c.CNPJ)
	if err != nil {
		return nil, fmt.Errorf("buscar empresa: %w", err)
	}
	if empresa != nil {
		return empresa, nil
	}
	empresa = &entity.Empresa{
		ID:                uuid.New().String(),
		CNPJ:              c.CNPJ,
		RazaoSocial:       c.RazaoSocial,
		InscricaoEstadual: c.InscricaoEstadual,
		UF:                c.UF,
		CriadoEm:          time.Now(),
	}
	if err := repo.Create(empresa); err != nil {
		existente, lookupErr := repo.GetByCNPJ(c.CNPJ)
		if lookupErr == nil && existente != nil {
			return existente, nil
		}
		return nil, fmt.Errorf("criar empresa: %w", err)
	}
	return empresa, nil
}
