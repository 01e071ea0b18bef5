package entity

// Stage é o estado do negócio no funil de outreach. Grafo livre: qualquer
// estágio pode ir para qualquer outro, sempre por ação manual do usuário.
type Stage string

const (
	StageNew       Stage = "NEW"
	StageContacted Stage = "CONTACTED"
	StageEngaged   Stage = "ENGAGED"
	StageQualified Stage = "QUALIFIED"
	StageConverted Stage = "CONVERTED"
)

func (s Stage) Valid() bool {
	switch s {
	case StageNew, StageContacted, StageEngaged, StageQualified, StageConverted:
		return true
	}
	return false
}

// StageOf resolve o estágio de um negócio. Ausência de registro significa
// StageNew (default implícito, nunca persistido até a primeira transição).
func StageOf(assignments map[string]Stage, businessID string) Stage {
	if stage, ok := assignments[businessID]; ok {
		return stage
	}
	return StageNew
}

type StageAssignment struct {
	BusinessID string `json:"business_id"`
	Stage      Stage  `json:"stage"`
}
