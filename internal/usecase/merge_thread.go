package usecase

import (
	"sort"

	"github.com/xavierca1/ligue-outreach/internal/entity"
)

// MergeThread insere um e-mail na thread do negócio preservando as duas
// invariantes: ordem não-decrescente por timestamp e nenhum ID repetido.
// O webhook entrega at-least-once, então reprocessar a mesma mensagem
// tem que ser no-op.
func MergeThread(businessID string, rec entity.EmailRecord, threads map[string]entity.EmailThread) map[string]entity.EmailThread {
	if threads == nil {
		threads = make(map[string]entity.EmailThread)
	}

	thread := threads[businessID]
	if thread.Contains(rec.ID) {
		return threads
	}

	thread = append(thread, rec)

	// Sort estável: empates de timestamp mantêm a ordem relativa original.
	sort.SliceStable(thread, func(i, j int) bool {
		return thread[i].Timestamp.Before(thread[j].Timestamp)
	})

	threads[businessID] = thread
	return threads
}
