package model

// 商品カテゴリ
const (
	CategoryAll         = "Semua"
	CategoryElectronics = "Elektronik"
	CategoryAccessories = "Aksesoris"
	CategoryFurniture   = "Furniture"
)

// Categories はフィルタ用のカテゴリ一覧（先頭は全件）。
var Categories = []string{CategoryAll, CategoryElectronics, CategoryAccessories, CategoryFurniture}

type Product struct {
	ID           int64    `json:"id"`
	Name         string   `json:"nama"`
	PriceDisplay string   `json:"harga"`
	Description  string   `json:"deskripsi"`
	Rating       int      `json:"rating"`
	Category     string   `json:"kategori"`
	Images       []string `json:"gambar"` // 表示順
}

// 表示価格から整数額を得る
func (p Product) PriceAmount() int64 {
	return ParseAmount(p.PriceDisplay)
}

// 先頭画像（無ければ既定画像）
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return DefaultImage
	}
	return p.Images[0]
}

// 画像が無いときの既定
const DefaultImage = "1.jpeg"

// ImagePath は先頭に "/" を付けた公開パスを返す。
func ImagePath(ref string) string {
	if ref == "" {
		return "/" + DefaultImage
	}
	if ref[0] == '/' {
		return ref
	}
	return "/" + ref
}

// 商品から新しいカート明細を作る。
func NewCartItem(p Product, qty int64) CartItem {
	return CartItem{
		ID:               p.ID,
		Name:             p.Name,
		UnitPriceDisplay: p.PriceDisplay,
		UnitPriceAmount:  p.PriceAmount(),
		Quantity:         ClampQuantity(qty),
		ImageRef:         p.PrimaryImage(),
	}
}
