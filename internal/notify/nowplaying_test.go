package notify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/reel/internal/catalog"
	"github.com/llehouerou/reel/internal/playback"
)

type fakeNotifier struct {
	sent   []Notification
	closed []uint32
	nextID uint32
	err    error
}

func (f *fakeNotifier) Notify(n Notification) (uint32, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.sent = append(f.sent, n)
	f.nextID++
	if n.ReplacesID != 0 {
		return n.ReplacesID, nil
	}
	return f.nextID, nil
}

func (f *fakeNotifier) Close(id uint32) error {
	f.closed = append(f.closed, id)
	return nil
}

func TestNowPlaying_ReplacesNotification(t *testing.T) {
	f := &fakeNotifier{}
	p := NewNowPlaying(f, "http://host/videos/", "Noname", nil)

	p.Update(playback.ItemChange{Current: &catalog.Item{Name: "One"}, Index: 0})
	p.Update(playback.ItemChange{Current: &catalog.Item{}, Index: 1})

	if assert.Len(t, f.sent, 2) {
		assert.Equal(t, "One", f.sent[0].Title)
		assert.Equal(t, "http://host/videos/", f.sent[0].Body)
		assert.Equal(t, uint32(0), f.sent[0].ReplacesID)
		assert.Equal(t, "Noname", f.sent[1].Title)
		assert.Equal(t, uint32(1), f.sent[1].ReplacesID)
	}
}

func TestNowPlaying_StopClosesNotification(t *testing.T) {
	f := &fakeNotifier{}
	p := NewNowPlaying(f, "src", "Noname", nil)

	p.Update(playback.ItemChange{Current: nil})
	assert.Empty(t, f.closed, "nothing to close before the first item")

	p.Update(playback.ItemChange{Current: &catalog.Item{Name: "One"}})
	p.Update(playback.ItemChange{Current: nil})

	assert.Equal(t, []uint32{1}, f.closed)
}

func TestNowPlaying_NotifyErrorKeepsState(t *testing.T) {
	f := &fakeNotifier{err: errors.New("no notification daemon")}
	p := NewNowPlaying(f, "src", "Noname", nil)

	p.Update(playback.ItemChange{Current: &catalog.Item{Name: "One"}})
	p.Update(playback.ItemChange{Current: nil})

	assert.Empty(t, f.closed)
}

func TestStubNotifier(t *testing.T) {
	var n Notifier = stubNotifier{}
	id, err := n.Notify(Notification{Title: "x"})
	assert.NoError(t, err)
	assert.Zero(t, id)
	assert.NoError(t, n.Close(1))
}
