package hmap

import "github.com/benbjohnson/immutable"

// A simple implementation of a mutable hash map keyed by structural hash.
// Useful when keys are not comparable with ==, and we want to avoid the
// overhead of using immutable maps.

// Uses linked lists to resolve hash collisions.

type node[K, V any] struct {
	key   K
	value V
	next  *node[K, V]
}

type Map[K, V any] struct {
	hasher immutable.Hasher[K]
	mp     map[uint32]*node[K, V]
	// Insertion order of the keys, for deterministic iteration.
	order []*node[K, V]
}

// Order of V and K are swapped since K can be inferred by the argument.
func NewMap[V, K any](hasher immutable.Hasher[K]) *Map[K, V] {
	return &Map[K, V]{
		hasher: hasher,
		mp:     make(map[uint32]*node[K, V]),
	}
}

func (m *Map[K, V]) Set(key K, value V) {
	h := m.hasher.Hash(key)
	snode, found := m.mp[h]
	if !found {
		m.mp[h] = m.push(key, value)
		return
	}
	for {
		if m.hasher.Equal(key, snode.key) {
			snode.value = value
			return
		}

		if next := snode.next; next == nil {
			// Hash collision :(
			snode.next = m.push(key, value)
			return
		} else {
			snode = next
		}
	}
}

func (m *Map[K, V]) push(key K, value V) *node[K, V] {
	n := &node[K, V]{key, value, nil}
	m.order = append(m.order, n)
	return n
}

func (m *Map[K, V]) GetOk(key K) (res V, ok bool) {
	for node := m.mp[m.hasher.Hash(key)]; node != nil; node = node.next {
		if m.hasher.Equal(key, node.key) {
			return node.value, true
		}
	}

	return
}

func (m *Map[K, V]) Get(key K) V {
	v, _ := m.GetOk(key)
	return v
}

func (m *Map[K, V]) Len() int {
	return len(m.order)
}

// ForEach visits the entries in insertion order.
func (m *Map[K, V]) ForEach(do func(K, V)) {
	for _, n := range m.order {
		do(n.key, n.value)
	}
}
