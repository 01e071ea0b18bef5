package entity

// StarKind distingue as duas listas de favoritos: diretório e busca externa.
// Um negócio aparece no máximo uma vez por kind.
type StarKind string

const (
	StarDirectory StarKind = "directory"
	StarExternal  StarKind = "external"
)

func (k StarKind) Valid() bool {
	return k == StarDirectory || k == StarExternal
}

type StarredRecord struct {
	BusinessID string   `json:"business_id"`
	Kind       StarKind `json:"kind"`
}
