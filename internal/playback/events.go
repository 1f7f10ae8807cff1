package playback

import "github.com/llehouerou/reel/internal/catalog"

// StateChange is emitted when the controller moves between Idle and Playing.
type StateChange struct {
	Previous State
	Current  State
}

// ItemChange is emitted whenever the current item is replaced, including
// re-selection of the same item and transitions to or from Idle.
//
// Index is the catalog position of Current, or catalog.NotFound when idle.
type ItemChange struct {
	Previous *catalog.Item
	Current  *catalog.Item
	Index    int
}
