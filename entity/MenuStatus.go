package entity

const (
	MenuForSale = "FOR_SALE"
	MenuSoldOut = "SOLD_OUT"
)

func ValidMenuStatus(s string) bool { return s == MenuForSale || s == MenuSoldOut }
