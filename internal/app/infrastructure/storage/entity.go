package storage

type record struct {
	payload   string
	expiresAt int64 // UnixNano
	viewsLeft int
}
