// Package events delivers badge unlocks and profile changes to in-process subscribers.
package events

import (
	"sync"

	"github.com/example/sakura/pkg/models"
)

// BadgeListener receives a badge as it is unlocked
type BadgeListener func(models.Badge)

// ProfileListener receives the sanitized profile after every update
type ProfileListener func(models.Profile)

// Broadcaster is a registry of listeners. Delivery is synchronous and in
// subscription order; late subscribers see nothing that was published before.
type Broadcaster struct {
	mu       sync.Mutex
	nextID   int
	badges   map[int]BadgeListener
	profiles map[int]ProfileListener
	order    []int
}

// NewBroadcaster creates an empty registry.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		badges:   make(map[int]BadgeListener),
		profiles: make(map[int]ProfileListener),
	}
}

// OnBadgeUnlock registers fn and returns a function that removes it.
func (b *Broadcaster) OnBadgeUnlock(fn BadgeListener) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.register()
	b.badges[id] = fn
	return b.remover(id)
}

// OnProfileChange registers fn and returns a function that removes it.
func (b *Broadcaster) OnProfileChange(fn ProfileListener) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.register()
	b.profiles[id] = fn
	return b.remover(id)
}

// PublishBadge calls every badge listener with badge.
func (b *Broadcaster) PublishBadge(badge models.Badge) {
	for _, fn := range b.snapshotBadges() {
		fn(badge)
	}
}

// PublishProfile calls every profile listener with p.
func (b *Broadcaster) PublishProfile(p models.Profile) {
	for _, fn := range b.snapshotProfiles() {
		fn(p)
	}
}

func (b *Broadcaster) register() int {
	b.nextID++
	b.order = append(b.order, b.nextID)
	return b.nextID
}

func (b *Broadcaster) remover(id int) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()

			delete(b.badges, id)
			delete(b.profiles, id)
			for i, v := range b.order {
				if v == id {
					b.order = append(b.order[:i], b.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Listeners are copied out so they may unsubscribe while being called.
func (b *Broadcaster) snapshotBadges() []BadgeListener {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]BadgeListener, 0, len(b.badges))
	for _, id := range b.order {
		if fn, ok := b.badges[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func (b *Broadcaster) snapshotProfiles() []ProfileListener {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]ProfileListener, 0, len(b.profiles))
	for _, id := range b.order {
		if fn, ok := b.profiles[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}
