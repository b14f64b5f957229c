package entity

const (
	CategoryChicken  = "CHICKEN"
	CategoryPizza    = "PIZZA"
	CategoryKorean   = "KOREAN"
	CategoryChinese  = "CHINESE"
	CategoryJapanese = "JAPANESE"
	CategoryWestern  = "WESTERN"
	CategorySnack    = "SNACK"
	CategoryDessert  = "DESSERT"
)

var storeCategories = map[string]bool{
	CategoryChicken: true, CategoryPizza: true, CategoryKorean: true, CategoryChinese: true,
	CategoryJapanese: true, CategoryWestern: true, CategorySnack: true, CategoryDessert: true,
}

func ValidStoreCategory(c string) bool { return storeCategories[c] }
