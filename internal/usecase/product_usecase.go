package usecase

import (
	"net/http"
	"strings"

	"scm/internal/domain/model"
)

// デモ用の固定商品（画像は public/1.jpeg ... 24.jpeg）
var defaultCatalog = []model.Product{
	{ID: 1, Name: "Monitor LED 24 inch", PriceDisplay: "Rp 2.500.000", Description: "Tampilan jernih Full HD...", Rating: 4, Category: model.CategoryElectronics, Images: []string{"1.jpeg", "2.jpeg", "3.jpeg"}},
	{ID: 2, Name: "Printer LaserJet Pro", PriceDisplay: "Rp 1.800.000", Description: "Cepat dan hemat tinta...", Rating: 5, Category: model.CategoryElectronics, Images: []string{"4.jpeg", "5.jpeg", "6.jpeg"}},
	{ID: 3, Name: "Keyboard Mechanical RGB", PriceDisplay: "Rp 750.000", Description: "Sensasi mengetik menyenangkan...", Rating: 4, Category: model.CategoryAccessories, Images: []string{"7.jpeg", "8.jpeg", "9.jpeg"}},
	{ID: 4, Name: "Kursi Ergonomis Kantor", PriceDisplay: "Rp 1.200.000", Description: "Nyaman digunakan seharian...", Rating: 5, Category: model.CategoryFurniture, Images: []string{"10.jpeg", "11.jpeg", "12.jpeg"}},
	{ID: 5, Name: "Mouse Wireless Precision", PriceDisplay: "Rp 350.000", Description: "Akurasi tinggi dengan desain ergonomis...", Rating: 4, Category: model.CategoryAccessories, Images: []string{"13.jpeg", "14.jpeg", "15.jpeg"}},
	{ID: 6, Name: "Headset Gaming Stereo", PriceDisplay: "Rp 420.000", Description: "Suara jernih, mikrofon noise-cancelling...", Rating: 4, Category: model.CategoryElectronics, Images: []string{"16.jpeg", "17.jpeg", "18.jpeg"}},
	{ID: 7, Name: "SSD NVMe 1TB", PriceDisplay: "Rp 1.400.000", Description: "Kecepatan baca tulis tinggi...", Rating: 5, Category: model.CategoryElectronics, Images: []string{"19.jpeg", "20.jpeg", "21.jpeg"}},
	{ID: 8, Name: "Rak Serbaguna Kayu", PriceDisplay: "Rp 650.000", Description: "Desain minimalis, cocok untuk kantor...", Rating: 4, Category: model.CategoryFurniture, Images: []string{"22.jpeg", "23.jpeg", "24.jpeg"}},
}

type ProductUsecase struct {
	products []model.Product
}

// products が nil なら固定カタログを使う
func NewProductUsecase(products []model.Product) *ProductUsecase {
	if products == nil {
		products = defaultCatalog
	}
	return &ProductUsecase{products: products}
}

// GET /products の入力
type ListProductsInput struct {
	Category string
	Q        string
}

type ProductOutput struct {
	model.Product
	PriceAmount int64    `json:"harga_int"`
	ImageURLs   []string `json:"image_urls"`
}

type ProductListOutput struct {
	Items      []ProductOutput `json:"items"`
	Total      int             `json:"total"`
	Categories []string        `json:"categories"`
}

func (u *ProductUsecase) ListProducts(in ListProductsInput) (ProductListOutput, error) {
	if len(in.Q) > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "q too long")
	}

	category := strings.TrimSpace(in.Category)
	q := strings.ToLower(strings.TrimSpace(in.Q))

	items := make([]ProductOutput, 0, len(u.products))
	for _, p := range u.products {
		if category != "" && category != model.CategoryAll && p.Category != category {
			continue
		}
		if !strings.Contains(strings.ToLower(p.Name), q) {
			continue
		}
		items = append(items, toProductOutput(p))
	}

	return ProductListOutput{
		Items:      items,
		Total:      len(items),
		Categories: model.Categories,
	}, nil
}

// Find はカート追加用に商品を引く。
func (u *ProductUsecase) Find(productID int64) (model.Product, bool) {
	for _, p := range u.products {
		if p.ID == productID {
			return p, true
		}
	}
	return model.Product{}, false
}

func (u *ProductUsecase) GetProductDetail(productID int64) (ProductOutput, error) {
	if productID <= 0 {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, ok := u.Find(productID)
	if !ok {
		return ProductOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return toProductOutput(p), nil
}

func toProductOutput(p model.Product) ProductOutput {
	urls := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		urls = append(urls, model.ImagePath(img))
	}
	if len(urls) == 0 {
		urls = append(urls, model.ImagePath(""))
	}
	return ProductOutput{Product: p, PriceAmount: p.PriceAmount(), ImageURLs: urls}
}
