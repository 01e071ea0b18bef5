package entity

// MigrationReceipt é o resultado de uma rodada de migração. Efêmero:
// devolvido ao chamador uma vez e descartado, nunca persistido.
// EmailThreads conta threads transferidas, não e-mails individuais.
// CachePurged=false avisa que os dados já estão no remoto mas o cache
// local sobreviveu; rerodar a migração é seguro e limpa o resto.
type MigrationReceipt struct {
	StageAssignments int  `json:"stage_assignments"`
	StarredDirectory int  `json:"starred_directory"`
	StarredExternal  int  `json:"starred_external"`
	EmailThreads     int  `json:"email_threads"`
	CachePurged      bool `json:"cache_purged"`
}

func (r MigrationReceipt) Total() int {
	return r.StageAssignments + r.StarredDirectory + r.StarredExternal + r.EmailThreads
}

type MigrationStatus struct {
	HasLocalData   bool `json:"has_local_data"`
	LocalDataCount int  `json:"local_data_count"`
}
