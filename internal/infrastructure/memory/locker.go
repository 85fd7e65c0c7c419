package memory

import (
	"context"
	"sort"
	"sync"
)

// keyedLocker un mutex por clave, creado bajo demanda y liberado cuando nadie lo usa.
// La espera respeta la cancelación del contexto.
type keyedLocker struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	ch   chan struct{}
	refs int
}

func newKeyedLocker() *keyedLocker {
	return &keyedLocker{locks: make(map[string]*keyLock)}
}

func (k *keyedLocker) lock(ctx context.Context, key string) error {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyLock{ch: make(chan struct{}, 1)}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	select {
	case l.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		k.release(key, l, false)
		return ctx.Err()
	}
}

func (k *keyedLocker) unlock(key string) {
	k.mu.Lock()
	l, ok := k.locks[key]
	k.mu.Unlock()
	if !ok {
		return
	}
	k.release(key, l, true)
}

func (k *keyedLocker) release(key string, l *keyLock, held bool) {
	if held {
		<-l.ch
	}
	k.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(k.locks, key)
	}
	k.mu.Unlock()
}

// lockAll adquiere las claves ordenadas y sin duplicados. Devuelve la función de liberación.
func (k *keyedLocker) lockAll(ctx context.Context, keys []string) (func(), error) {
	sorted := uniqueSorted(keys)
	acquired := make([]string, 0, len(sorted))
	unlockAll := func() {
		for i := len(acquired) - 1; i >= 0; i-- {
			k.unlock(acquired[i])
		}
	}
	for _, key := range sorted {
		if err := k.lock(ctx, key); err != nil {
			unlockAll()
			return nil, err
		}
		acquired = append(acquired, key)
	}
	return unlockAll, nil
}

func uniqueSorted(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
