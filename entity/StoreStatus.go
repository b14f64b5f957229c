package entity

const (
	StoreAvailable   = "AVAILABLE"
	StoreUnavailable = "UNAVAILABLE"
)

func ValidStoreStatus(s string) bool { return s == StoreAvailable || s == StoreUnavailable }
