package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/usecase"
)

func emailAt(id string, ts time.Time) entity.EmailRecord {
	return entity.EmailRecord{
		ID:        id,
		From:      "owner@acmevet.com",
		Subject:   "Re: proposta",
		Timestamp: ts,
		Direction: entity.DirectionReceived,
	}
}

// Reaplicar o mesmo e-mail tem que dar exatamente a mesma thread
// (o webhook entrega at-least-once).
func TestMergeThreadIdempotent(t *testing.T) {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	rec := emailAt("msg-1", base)

	threads := usecase.MergeThread("biz-42", rec, nil)
	once := append(entity.EmailThread{}, threads["biz-42"]...)

	threads = usecase.MergeThread("biz-42", rec, threads)

	assert.Len(t, threads["biz-42"], 1)
	assert.Equal(t, once, threads["biz-42"])
}

func TestMergeThreadOrdering(t *testing.T) {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	threads := map[string]entity.EmailThread{}
	threads = usecase.MergeThread("biz-42", emailAt("msg-3", base.Add(2*time.Hour)), threads)
	threads = usecase.MergeThread("biz-42", emailAt("msg-1", base), threads)
	threads = usecase.MergeThread("biz-42", emailAt("msg-2", base.Add(time.Hour)), threads)

	thread := threads["biz-42"]
	assert.Len(t, thread, 3)
	for i := 1; i < len(thread); i++ {
		assert.False(t, thread[i].Timestamp.Before(thread[i-1].Timestamp),
			"thread fora de ordem na posição %d", i)
	}
	assert.Equal(t, "msg-1", thread[0].ID)
	assert.Equal(t, "msg-2", thread[1].ID)
	assert.Equal(t, "msg-3", thread[2].ID)
}

// Empate de timestamp preserva a ordem relativa de chegada (sort estável).
func TestMergeThreadTieStability(t *testing.T) {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	threads := map[string]entity.EmailThread{}
	threads = usecase.MergeThread("biz-42", emailAt("msg-a", base), threads)
	threads = usecase.MergeThread("biz-42", emailAt("msg-b", base), threads)
	threads = usecase.MergeThread("biz-42", emailAt("msg-c", base), threads)

	thread := threads["biz-42"]
	assert.Equal(t, []string{"msg-a", "msg-b", "msg-c"},
		[]string{thread[0].ID, thread[1].ID, thread[2].ID})
}

// Thread inexistente é criada na primeira mensagem; as outras ficam intactas.
func TestMergeThreadCreateOnMiss(t *testing.T) {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	threads := map[string]entity.EmailThread{
		"biz-7": {emailAt("msg-old", base)},
	}
	threads = usecase.MergeThread("biz-42", emailAt("msg-new", base), threads)

	assert.Len(t, threads, 2)
	assert.Len(t, threads["biz-42"], 1)
	assert.Len(t, threads["biz-7"], 1)
}
