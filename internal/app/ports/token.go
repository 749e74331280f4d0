package ports

type TokenPort interface {
	Generate() (string, error)
}
