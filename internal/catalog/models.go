package catalog

// Field names as they arrive from the editing surface (form input names).
const (
	FieldEmail    = "email"
	FieldPassword = "password"

	// aliases dari model credential
	FieldIdentifier = "identifier"
	FieldSecret     = "secret"

	FieldName        = "name"
	FieldSKU         = "sku"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldPrice       = "price"
	FieldTags        = "tags"
	FieldStock       = "stock"
	FieldImages      = "images"
)

// Credential adalah draft form login. Identifier = email, Secret = password.
type Credential struct {
	Identifier string
	Secret     string
}

// Product is the editing representation of a product draft. Price and Stock
// stay raw text until the submission boundary (see Payload).
type Product struct {
	Name        string
	SKU         string
	Description string
	Category    string
	Price       string
	Tags        []string
	Stock       string
	Images      []string
}

func NewCredential() Credential { return Credential{} }

func NewProduct() Product {
	return Product{Tags: []string{}, Images: []string{}}
}

// ---- wire types ----

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AccessToken struct {
	AccessToken string `json:"accessToken"`
}

type LoginResponse struct {
	Token AccessToken `json:"token"`
}

// ProductPayload is the validated body of POST /api/products.
type ProductPayload struct {
	Name        string   `json:"name"`
	SKU         string   `json:"sku"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Tags        []string `json:"tags"`
	Stock       int      `json:"stock"`
	Images      []string `json:"images"`
}
