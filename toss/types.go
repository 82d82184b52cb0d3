package toss

// Tokens is the result of a BrandPay authorization code or refresh token
// exchange.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
}

// Methods is the BrandPay stored payment methods response: the registered
// bank accounts and cards plus the identifier of the currently selected
// method.
type Methods struct {
	SelectedMethodID string    `json:"selectedMethodId"`
	Accounts         []Account `json:"accounts"`
	Cards            []Card    `json:"cards"`
}

// Account is a bank account registered in BrandPay.
type Account struct {
	ID            string `json:"id"`
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
	IconURL       string `json:"iconUrl"`
}

// Card is a card registered in BrandPay.
type Card struct {
	ID         string `json:"id"`
	CardName   string `json:"cardName"`
	CardNumber string `json:"cardNumber"`
	CardType   string `json:"cardType"`
	IconURL    string `json:"iconUrl"`
}

// Method is a flattened payment method record, tagged with whether it is
// the user's currently selected method.
type Method struct {
	Type          string `json:"type"`
	ID            string `json:"id"`
	AccountName   string `json:"accountName,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	CardName      string `json:"cardName,omitempty"`
	CardNumber    string `json:"cardNumber,omitempty"`
	CardType      string `json:"cardType,omitempty"`
	IconURL       string `json:"iconUrl"`
	Select        bool   `json:"select"`
}

// Flatten merges the account and card lists into one ordered sequence of
// method records, accounts first, preserving the gateway order.
func (m *Methods) Flatten() []*Method {
	methods := []*Method{}
	for _, account := range m.Accounts {
		methods = append(methods, &Method{
			Type:          "account",
			ID:            account.ID,
			AccountName:   account.AccountName,
			AccountNumber: account.AccountNumber,
			IconURL:       account.IconURL,
			Select:        m.SelectedMethodID == account.ID,
		})
	}
	for _, card := range m.Cards {
		methods = append(methods, &Method{
			Type:       "card",
			ID:         card.ID,
			CardName:   card.CardName,
			CardNumber: card.CardNumber,
			CardType:   card.CardType,
			IconURL:    card.IconURL,
			Select:     m.SelectedMethodID == card.ID,
		})
	}
	return methods
}
