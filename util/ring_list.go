package util

import (
	"sync"
)

// RingList is a fixed-size list of recently seen strings. Once it is
// full, each Add overwrites the oldest entry. It is safe to share
// across goroutines.
type RingList struct {
	capacity int
	index    int
	items    []string
	mutex    sync.RWMutex
}

// NewRingList creates a new RingList with the specified capacity.
func NewRingList(capacity int) *RingList {
	return &RingList{
		capacity: capacity,
		index:    -1,
		items:    make([]string, capacity),
	}
}

// Add adds an item to the RingList. If capacity is ten, then
// the eleventh item you add overwrites item #1.
func (list *RingList) Add(item string) {
	list.mutex.Lock()
	defer list.mutex.Unlock()
	list.index = (list.index + 1) % list.capacity
	list.items[list.index] = item
}

// Contains returns true if the item is in the RingList.
func (list *RingList) Contains(item string) bool {
	if item == "" {
		return false
	}
	list.mutex.RLock()
	defer list.mutex.RUnlock()
	return StringListContains(list.items, item)
}

// Del removes all instances of the item from the list.
func (list *RingList) Del(item string) {
	list.mutex.Lock()
	defer list.mutex.Unlock()
	for i, value := range list.items {
		if value == item {
			list.items[i] = ""
		}
	}
}
