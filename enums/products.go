package enums

type ProductStatus string

const (
	ProductStatusAvailable ProductStatus = "disponible"
	ProductStatusDraft     ProductStatus = "borrador"
	ProductStatusSoldOut   ProductStatus = "agotado"
)
