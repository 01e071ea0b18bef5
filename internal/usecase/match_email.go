package usecase

import (
	"regexp"
	"strings"

	"github.com/xavierca1/ligue-outreach/internal/entity"
)

// Cada heurística devolve o ID do negócio ou "" quando não reconheceu.
// A cascata roda na ordem e para no primeiro acerto; tudo puro, sem I/O.
type matchHeuristic struct {
	Name string
	Fn   func(email entity.EmailRecord, businesses []entity.Business) string
}

var matchWaterfall = []matchHeuristic{
	{"explicit_tag", matchExplicitTag},
	{"subject_name", matchSubjectName},
	{"body_name", matchBodyName},
	{"sender_address", matchSenderAddress},
}

var (
	replyPrefixRe = regexp.MustCompile(`(?i)^(re|reply|fwd|forward):\s*`)
	htmlTagRe     = regexp.MustCompile(`<[^>]*>`)
	capitalRunRe  = regexp.MustCompile(`[A-Z][a-z]+(?: [A-Z][a-z]+)*`)
)

// MatchBusiness resolve um e-mail para um negócio. ok=false significa
// Unmatched: não é erro, o e-mail continua ingerível sem vínculo.
func MatchBusiness(email entity.EmailRecord, businesses []entity.Business) (string, bool) {
	id, _ := MatchBusinessWithHeuristic(email, businesses)
	return id, id != ""
}

// MatchBusinessWithHeuristic devolve também o nome da heurística que
// acertou, para os contadores de métricas.
func MatchBusinessWithHeuristic(email entity.EmailRecord, businesses []entity.Business) (string, string) {
	for _, h := range matchWaterfall {
		if id := h.Fn(email, businesses); id != "" {
			return id, h.Name
		}
	}
	return "", ""
}

// 1) Tag explícita atribuída por sistema upstream vence tudo.
func matchExplicitTag(email entity.EmailRecord, _ []entity.Business) string {
	return email.BusinessID
}

// 2) Candidato extraído do assunto: tira o prefixo de resposta/encaminhamento
// e quebra nos delimitadores "-", "(" e "[". Cada segmento é testado na ordem
// contra os nomes conhecidos (o primeiro segmento é o trecho antes do
// primeiro delimitador; os demais cobrem assuntos tipo
// "Regarding your listing - Acme Vet Clinic", onde o nome vem depois do traço).
func matchSubjectName(email entity.EmailRecord, businesses []entity.Business) string {
	subject := replyPrefixRe.ReplaceAllString(email.Subject, "")
	for _, candidate := range strings.FieldsFunc(subject, isSubjectDelimiter) {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		if id := matchByName(candidate, businesses); id != "" {
			return id
		}
	}
	return ""
}

func isSubjectDelimiter(r rune) bool {
	return r == '-' || r == '(' || r == '['
}

// 3) Primeira sequência de palavras capitalizadas do corpo (tags HTML fora).
func matchBodyName(email entity.EmailRecord, businesses []entity.Business) string {
	body := email.Text
	if body == "" {
		body = email.HTML
	}
	body = htmlTagRe.ReplaceAllString(body, " ")

	candidate := capitalRunRe.FindString(body)
	if candidate == "" {
		return ""
	}
	return matchByName(candidate, businesses)
}

// 4) Igualdade exata (case-insensitive) do remetente com algum endereço
// conhecido do negócio.
func matchSenderAddress(email entity.EmailRecord, businesses []entity.Business) string {
	for _, b := range businesses {
		if b.HasEmail(email.From) {
			return b.ID
		}
	}
	return ""
}

// matchByName: substring bidirecional, case-insensitive. Ou o candidato
// contém o nome do negócio, ou o nome contém o candidato.
func matchByName(candidate string, businesses []entity.Business) string {
	candidate = strings.ToLower(strings.TrimSpace(candidate))
	if candidate == "" {
		return ""
	}
	for _, b := range businesses {
		name := strings.ToLower(strings.TrimSpace(b.Name))
		if name == "" {
			continue
		}
		if strings.Contains(candidate, name) || strings.Contains(name, candidate) {
			return b.ID
		}
	}
	return ""
}
