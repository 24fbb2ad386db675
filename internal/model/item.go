package model

// Item is one todo record as served by the remote endpoint.
// Field tags follow the upstream JSON (`userId`, not `ownerId`).
type Item struct {
	ID        int    `json:"id"`
	OwnerID   int    `json:"userId"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Stats counts completed and pending items.
func Stats(items []Item) (done, pending int) {
	for _, it := range items {
		if it.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}
