package storage

type expEntry struct {
	id        string
	expiresAt int64
}

type expHeap []expEntry

func (h *expHeap) Len() int { return len(*h) }
func (h *expHeap) Less(i, j int) bool {
	return (*h)[i].expiresAt < (*h)[j].expiresAt
}
func (h *expHeap) Swap(i, j int) {
	(*h)[i], (*h)[j] = (*h)[j], (*h)[i]
}

func (h *expHeap) Push(x interface{}) {
	*h = append(*h, x.(expEntry))
}

func (h *expHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
