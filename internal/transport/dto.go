package transport

import "time"

type AddToBasketRequest struct {
	CatalogItemID uint `json:"catalog_item_id"`
	Quantity      int  `json:"quantity"`
}

type UpdateBasketItemRequest struct {
	Quantity int `json:"quantity"`
}

type BasketItemResponse struct {
	ID            uint    `json:"id"`
	CatalogItemID uint    `json:"catalog_item_id"`
	ProductName   string  `json:"product_name"`
	PictureURL    string  `json:"picture_url"`
	UnitPrice     float64 `json:"unit_price"`
	OldUnitPrice  float64 `json:"old_unit_price"`
	Quantity      int     `json:"quantity"`
}

type BasketResponse struct {
	ID       uint                 `json:"id"`
	BuyerKey string               `json:"buyer_key"`
	Items    []BasketItemResponse `json:"items"`
	Total    float64              `json:"total"`
}

type CreateOrderRequest struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	ZipCode string `json:"zip_code"`
}

type AddressResponse struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	ZipCode string `json:"zip_code"`
}

type OrderItemResponse struct {
	ID            uint    `json:"id"`
	CatalogItemID uint    `json:"catalog_item_id"`
	ProductName   string  `json:"product_name"`
	PictureURL    string  `json:"picture_url"`
	UnitPrice     float64 `json:"unit_price"`
	Quantity      int     `json:"quantity"`
}

type OrderResponse struct {
	ID        uint                `json:"id"`
	BuyerKey  string              `json:"buyer_key"`
	OrderDate time.Time           `json:"order_date"`
	ShipTo    AddressResponse     `json:"ship_to"`
	Items     []OrderItemResponse `json:"items"`
	Total     float64             `json:"total"`
}

type CreateCatalogItemRequest struct {
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	PictureURI     string  `json:"picture_uri"`
	CatalogBrandID uint    `json:"catalog_brand_id"`
	CatalogTypeID  uint    `json:"catalog_type_id"`
}

type PagedCatalogResponse struct {
	Total int64 `json:"total"`
	Items any   `json:"items"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
