package usecase

import (
	"context"
	"log"

	"github.com/xavierca1/ligue-outreach/internal/entity"
)

// MigrateLocalDataUseCase transfere as quatro coleções do cache local para o
// Remote Store, uma vez por usuário, e só então limpa o cache. Duas fases:
// transferir tudo, depois commitar apagando o local. Qualquer upsert que
// falhe aborta o lote inteiro com o cache intacto — purge parcial depois de
// migração parcial seria perda de dados silenciosa.
type MigrateLocalDataUseCase struct {
	Cache  LocalCache
	Remote RemoteStore
}

func NewMigrateLocalDataUseCase(cache LocalCache, remote RemoteStore) *MigrateLocalDataUseCase {
	return &MigrateLocalDataUseCase{Cache: cache, Remote: remote}
}

// CheckStatus conta as quatro coleções sem tocar em nada. HasLocalData=false
// e falha de migração são estados diferentes e o chamador trata diferente.
func (uc *MigrateLocalDataUseCase) CheckStatus(ctx context.Context, userID string) (*entity.MigrationStatus, error) {
	stages, starredDir, starredExt, threads, err := uc.loadAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	count := len(stages) + len(starredDir) + len(starredExt) + len(threads)
	return &entity.MigrationStatus{
		HasLocalData:   count > 0,
		LocalDataCount: count,
	}, nil
}

func (uc *MigrateLocalDataUseCase) Execute(ctx context.Context, userID string) (*entity.MigrationReceipt, error) {
	stages, starredDir, starredExt, threads, err := uc.loadAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	receipt := &entity.MigrationReceipt{}
	if len(stages)+len(starredDir)+len(starredExt)+len(threads) == 0 {
		return nil, ErrNoLocalData
	}

	for businessID, stage := range stages {
		if err := uc.Remote.SetStage(ctx, userID, businessID, stage); err != nil {
			return nil, migrationFailed("estágio de "+businessID, err)
		}
		receipt.StageAssignments++
	}

	// SetStarred idempotente: repetir a migração nunca des-favorita.
	for _, businessID := range starredDir {
		if err := uc.Remote.SetStarred(ctx, userID, businessID, entity.StarDirectory); err != nil {
			return nil, migrationFailed("favorito (diretório) "+businessID, err)
		}
		receipt.StarredDirectory++
	}
	for _, businessID := range starredExt {
		if err := uc.Remote.SetStarred(ctx, userID, businessID, entity.StarExternal); err != nil {
			return nil, migrationFailed("favorito (externo) "+businessID, err)
		}
		receipt.StarredExternal++
	}

	// Uma thread vira UM registro remoto por negócio (array de e-mails),
	// e o contador conta threads, não e-mails individuais.
	for businessID, thread := range threads {
		if err := uc.Remote.SaveThread(ctx, userID, businessID, thread); err != nil {
			return nil, migrationFailed("thread de "+businessID, err)
		}
		receipt.EmailThreads++
	}

	// Transferência completa: só agora o cache pode sumir.
	receipt.CachePurged = true
	if err := uc.Cache.PurgeAll(ctx); err != nil {
		// Migração já está no remoto; rerodar é seguro (upserts + SetStarred).
		// O recibo carrega o aviso para o cliente saber que sobrou cache.
		log.Printf("⚠️ CRITICAL: migração ok mas purge do cache falhou: %v", err)
		receipt.CachePurged = false
	}

	return receipt, nil
}

func (uc *MigrateLocalDataUseCase) loadAll(ctx context.Context, userID string) (map[string]entity.Stage, []string, []string, map[string]entity.EmailThread, error) {
	stages, err := uc.Cache.StageAssignments(ctx, userID)
	if err != nil {
		return nil, nil, nil, nil, migrationFailed("leitura de estágios locais", err)
	}
	starredDir, err := uc.Cache.StarredIDs(ctx, userID, entity.StarDirectory)
	if err != nil {
		return nil, nil, nil, nil, migrationFailed("leitura de favoritos (diretório)", err)
	}
	starredExt, err := uc.Cache.StarredIDs(ctx, userID, entity.StarExternal)
	if err != nil {
		return nil, nil, nil, nil, migrationFailed("leitura de favoritos (externo)", err)
	}
	threads, err := uc.Cache.Threads(ctx, userID)
	if err != nil {
		return nil, nil, nil, nil, migrationFailed("leitura de threads locais", err)
	}
	return stages, starredDir, starredExt, threads, nil
}

func migrationFailed(step string, err error) error {
	return &TechnicalError{
		Code:    "MIGRATION_FAILED",
		Message: "migração abortada em " + step + ": " + err.Error(),
	}
}
