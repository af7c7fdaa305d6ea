package ports

// PayloadLoader reads the payload to transmit.
type PayloadLoader interface {
	Load(path string) ([]byte, error)
}
