package types

// ContactProfile identifies one party on a document. Tagline, Website and
// LogoURL are only ever populated for the issuing company.
type ContactProfile struct {
	Name    string `json:"name"`
	Tagline string `json:"tagline,omitempty"`
	Address string `json:"address,omitempty"`
	GST     string `json:"gst,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Website string `json:"website,omitempty"`
	LogoURL string `json:"logo_url,omitempty"`
}

// Tax is one named percentage applied to a line's discounted amount.
type Tax struct {
	Name string  `json:"name"`
	Rate float64 `json:"rate"`
}

// Discount reduces a line's gross amount before any tax is applied.
// Type is either "percent" or "flat".
type Discount struct {
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

// LineItem is one billable row. Order within the document is significant
// and defines display numbering.
type LineItem struct {
	Description string    `json:"description"`
	HSNSAC      string    `json:"hsn_sac,omitempty"`
	Quantity    float64   `json:"quantity"`
	Unit        string    `json:"unit"`
	UnitPrice   float64   `json:"unit_price"`
	Discount    *Discount `json:"discount,omitempty"`
	Tax         []Tax     `json:"tax"`
}

// AdditionalCharge is a labelled amount added after taxes.
type AdditionalCharge struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// BankDetails carries the payee information printed on the document and
// used to build the UPI payment request.
type BankDetails struct {
	AccountName string `json:"account_name,omitempty"`
	Bank        string `json:"bank,omitempty"`
	AccountNo   string `json:"account_no,omitempty"`
	IFSC        string `json:"ifsc,omitempty"`
	UPIID       string `json:"upi_id,omitempty"`
}

// OutputPreferences selects which formats are rendered and which optional
// sections appear in them.
type OutputPreferences struct {
	Formats           []string `json:"formats"`
	ShowAmountInWords bool     `json:"show_amount_in_words"`
	ShowQR            bool     `json:"show_qr"`
}

// DocumentInput is the complete description of an invoice, quotation or
// bill. It is supplied fresh on every generation run and never mutated by
// the engine.
type DocumentInput struct {
	DocumentType      string             `json:"document_type"`
	DocNo             string             `json:"doc_no"`
	DocDate           string             `json:"doc_date"`
	DueDate           string             `json:"due_date,omitempty"`
	ValidUntil        string             `json:"valid_until,omitempty"`
	Company           ContactProfile     `json:"company"`
	BillTo            ContactProfile     `json:"bill_to"`
	LineItems         []LineItem         `json:"line_items"`
	Shipping          float64            `json:"shipping,omitempty"`
	AdditionalCharges []AdditionalCharge `json:"additional_charges,omitempty"`
	Rounding          string             `json:"rounding"`
	Notes             string             `json:"notes,omitempty"`
	Terms             []string           `json:"terms,omitempty"`
	BankDetails       *BankDetails       `json:"bank_details,omitempty"`
	Outputs           OutputPreferences  `json:"outputs"`
}

// WantsFormat reports whether the given format was requested.
func (d *DocumentInput) WantsFormat(format string) bool {
	for _, f := range d.Outputs.Formats {
		if f == format {
			return true
		}
	}
	return false
}
