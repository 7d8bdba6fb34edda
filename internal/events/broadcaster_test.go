package events

import (
	"testing"

	"github.com/example/sakura/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestPublishInSubscriptionOrder(t *testing.T) {
	b := NewBroadcaster()
	var got []string

	b.OnBadgeUnlock(func(badge models.Badge) { got = append(got, "first:"+badge.ID) })
	b.OnProfileChange(func(p models.Profile) { got = append(got, "profile:"+p.Username) })
	b.OnBadgeUnlock(func(badge models.Badge) { got = append(got, "second:"+badge.ID) })

	b.PublishBadge(models.Badge{ID: "night_owl"})
	b.PublishProfile(models.Profile{Username: "kenji"})

	assert.Equal(t, []string{"first:night_owl", "second:night_owl", "profile:kenji"}, got)
}

func TestUnsubscribe(t *testing.T) {
	b := NewBroadcaster()
	calls := 0

	unsubscribe := b.OnBadgeUnlock(func(models.Badge) { calls++ })
	b.PublishBadge(models.Badge{ID: "a"})
	unsubscribe()
	unsubscribe()
	b.PublishBadge(models.Badge{ID: "b"})

	assert.Equal(t, 1, calls)
}

func TestNoReplayForLateSubscribers(t *testing.T) {
	b := NewBroadcaster()
	b.PublishProfile(models.Profile{Username: "early"})

	var got []models.Profile
	b.OnProfileChange(func(p models.Profile) { got = append(got, p) })

	assert.Empty(t, got)
}

func TestUnsubscribeDuringDelivery(t *testing.T) {
	b := NewBroadcaster()
	calls := 0

	var unsubscribe func()
	unsubscribe = b.OnProfileChange(func(models.Profile) {
		calls++
		unsubscribe()
	})

	b.PublishProfile(models.Profile{})
	b.PublishProfile(models.Profile{})
	assert.Equal(t, 1, calls)
}
