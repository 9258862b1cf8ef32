package util

// IDMap assigns dense ids to keys in first-seen order.
type IDMap[K comparable] struct {
	keyToID map[K]int
	idToKey []K
}

func NewIdMap[K comparable]() *IDMap[K] {
	return &IDMap[K]{
		keyToID: make(map[K]int),
		idToKey: make([]K, 0),
	}
}

// GetID returns the id of key, assigning the next free id if the key is new.
func (m *IDMap[K]) GetID(key K) int {
	if id, ok := m.keyToID[key]; ok {
		return id
	}
	id := len(m.idToKey)
	m.keyToID[key] = id
	m.idToKey = append(m.idToKey, key)
	return id
}

// Lookup returns the id of key without assigning one.
func (m *IDMap[K]) Lookup(key K) (int, bool) {
	id, ok := m.keyToID[key]
	return id, ok
}

func (m *IDMap[K]) GetKey(id int) K {
	return m.idToKey[id]
}

func (m *IDMap[K]) Keys() []K {
	keys := make([]K, len(m.idToKey))
	copy(keys, m.idToKey)
	return keys
}

func (m *IDMap[K]) Len() int {
	return len(m.idToKey)
}
