package usecase

import "sync"

// keyLock serializa escritas read-modify-write por ID de negócio.
// O webhook entrega async enquanto o usuário edita, então "carregar thread,
// mesclar, salvar" não pode ser interrompido por outra escrita na mesma chave.
type keyLock struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyLock() *keyLock {
	return &keyLock{locks: make(map[string]*sync.Mutex)}
}

// threadLocks é o lock único de todos os escritores de thread. O worker da
// fila e o envio de outreach gravam a mesma chave de negócio; cada um com o
// seu mutex ainda perderia escrita (o save regrava a thread inteira).
var threadLocks = newKeyLock()

// Lock trava a chave e devolve a função de unlock.
func (k *keyLock) Lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}
