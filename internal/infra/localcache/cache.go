package localcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/xavierca1/ligue-outreach/internal/entity"
)

// As cinco coleções do cache local. Valores são JSON; time.Time serializa
// em RFC 3339 (ISO-8601) de graça pelo encoding/json.
const (
	KeyStages           = "stages"
	KeyStarredDirectory = "starred_directory"
	KeyStarredExternal  = "starred_external"
	KeyThreads          = "threads"
	KeyMessages         = "messages"
)

// Cache é o armazenamento efêmero single-user, por processo. Implementa a
// mesma interface de pipeline do Remote Store; ownerID é ignorado porque
// aqui não existe multi-tenant.
type Cache struct {
	db *badger.DB
	mu sync.Mutex // serializa o read-modify-write por processo
}

func Open(dir string) (*Cache, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir cache local em %s: %w", dir, err)
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// get devolve (nil, false) para chave ausente. Erro só para falha real de IO.
func (c *Cache) get(key string) ([]byte, bool, error) {
	var raw []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (c *Cache) put(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("falha ao serializar %s: %w", key, err)
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), raw)
	})
}

// loadJSON preenche out a partir da chave. Cache é best-effort: chave
// ausente ou JSON podre contam como "sem dados" e deixam out no default.
func (c *Cache) loadJSON(key string, out any) error {
	raw, ok, err := c.get(key)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errCorrupt
	}
	return nil
}

var errCorrupt = errors.New("corrupt cache value")

func (c *Cache) StageAssignments(ctx context.Context, _ string) (map[string]entity.Stage, error) {
	stages := make(map[string]entity.Stage)
	if err := c.loadJSON(KeyStages, &stages); err != nil {
		if errors.Is(err, errCorrupt) {
			return make(map[string]entity.Stage), nil
		}
		return nil, err
	}
	return stages, nil
}

func (c *Cache) SetStage(ctx context.Context, ownerID, businessID string, stage entity.Stage) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	stages, err := c.StageAssignments(ctx, ownerID)
	if err != nil {
		return err
	}
	stages[businessID] = stage
	return c.put(KeyStages, stages)
}

func (c *Cache) StarredIDs(ctx context.Context, _ string, kind entity.StarKind) ([]string, error) {
	var ids []string
	if err := c.loadJSON(starKey(kind), &ids); err != nil {
		if errors.Is(err, errCorrupt) {
			return nil, nil
		}
		return nil, err
	}
	return ids, nil
}

// ToggleStar flipa a presença do negócio na lista do kind. Um negócio
// aparece no máximo uma vez por kind.
func (c *Cache) ToggleStar(ctx context.Context, ownerID, businessID string, kind entity.StarKind) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids, err := c.StarredIDs(ctx, ownerID, kind)
	if err != nil {
		return false, err
	}

	for i, id := range ids {
		if id == businessID {
			ids = append(ids[:i], ids[i+1:]...)
			return false, c.put(starKey(kind), ids)
		}
	}

	ids = append(ids, businessID)
	return true, c.put(starKey(kind), ids)
}

func (c *Cache) Threads(ctx context.Context, _ string) (map[string]entity.EmailThread, error) {
	threads := make(map[string]entity.EmailThread)
	if err := c.loadJSON(KeyThreads, &threads); err != nil {
		if errors.Is(err, errCorrupt) {
			return make(map[string]entity.EmailThread), nil
		}
		return nil, err
	}
	return threads, nil
}

func (c *Cache) SaveThread(ctx context.Context, ownerID, businessID string, thread entity.EmailThread) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	threads, err := c.Threads(ctx, ownerID)
	if err != nil {
		return err
	}
	threads[businessID] = thread
	return c.put(KeyThreads, threads)
}

func (c *Cache) Messages(ctx context.Context) ([]entity.ChatMessage, error) {
	var msgs []entity.ChatMessage
	if err := c.loadJSON(KeyMessages, &msgs); err != nil {
		if errors.Is(err, errCorrupt) {
			return nil, nil
		}
		return nil, err
	}
	return msgs, nil
}

func (c *Cache) SaveMessages(ctx context.Context, msgs []entity.ChatMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.put(KeyMessages, msgs)
}

// PurgeAll apaga as cinco chaves. Só pode rodar depois de uma migração
// completa — quem garante a ordem é o orquestrador.
func (c *Cache) PurgeAll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.db.Update(func(txn *badger.Txn) error {
		for _, key := range []string{KeyStages, KeyStarredDirectory, KeyStarredExternal, KeyThreads, KeyMessages} {
			if err := txn.Delete([]byte(key)); err != nil {
				return err
			}
		}
		return nil
	})
}

func starKey(kind entity.StarKind) string {
	if kind == entity.StarExternal {
		return KeyStarredExternal
	}
	return KeyStarredDirectory
}
