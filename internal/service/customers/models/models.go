package models

// Способ, которым найден клиент
const (
	MatchedByEmail = "email"
	MatchedByPhone = "phone"
	MatchedNone    = "created"
)

// ResolveRequest данные клиента из формы бронирования
type ResolveRequest struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

// ResolveResponse результат поиска или создания клиента
type ResolveResponse struct {
	CustomerID int64  `json:"customerId"`
	Name       string `json:"name,omitempty"`
	Created    bool   `json:"created"`
	MatchedBy  string `json:"matchedBy"`
}
