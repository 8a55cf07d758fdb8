package navigation

import "sync"

type listeners[T any] struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(T)
	// order keeps emission in subscription order.
	order []int
}

func (l *listeners[T]) add(fn func(T)) func() {
	if fn == nil {
		return func() {}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.fns == nil {
		l.fns = make(map[int]func(T))
	}
	id := l.next
	l.next++
	l.fns[id] = fn
	l.order = append(l.order, id)

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if _, ok := l.fns[id]; !ok {
			return
		}
		delete(l.fns, id)
		for i, v := range l.order {
			if v == id {
				l.order = append(l.order[:i], l.order[i+1:]...)
				break
			}
		}
	}
}

func (l *listeners[T]) emit(v T) {
	l.mu.Lock()
	fns := make([]func(T), 0, len(l.order))
	for _, id := range l.order {
		fns = append(fns, l.fns[id])
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}
