package draft

import (
	"strings"
	"time"
)

// ValidationError reports the first rule a draft failed. The message is
// written for the person editing the quote, not for logs.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Payload is the submission shape handed to the quote service. Optional
// fields are omitted entirely when absent rather than sent as empty
// values.
type Payload struct {
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	ClientID       string     `json:"clientId"`
	ProjectID      string     `json:"projectId"`
	ClientEmail    string     `json:"clientEmail"`
	ValidUntil     string     `json:"validUntil"`
	Items          []LineItem `json:"items"`
	Tax            float64    `json:"tax"`
	Discount       float64    `json:"discount"`
	Currency       Currency   `json:"currency"`
	Notes          string     `json:"notes,omitempty"`
	Subtotal       float64    `json:"subtotal"`
	TaxAmount      float64    `json:"taxAmount"`
	DiscountAmount float64    `json:"discountAmount"`
	Total          float64    `json:"total"`
}

const canonicalDateLayout = "2006-01-02"

var acceptedDateLayouts = []string{
	canonicalDateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// ParseDate coerces a user-entered date string to a time. The canonical
// payload representation is YYYY-MM-DD.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range acceptedDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// Assemble validates the draft and produces the submission payload.
// Rules run in a fixed order and the first failure wins. On success the
// totals and every per-item amount are recomputed once more so the
// payload can never carry stale derived values.
func Assemble(d *Draft) (*Payload, error) {
	if strings.TrimSpace(d.Title) == "" {
		return nil, invalid("title", "Title is required")
	}
	if d.Client.IsZero() {
		return nil, invalid("clientId", "Client is required")
	}
	if d.Project.IsZero() {
		return nil, invalid("projectId", "Project is required")
	}
	if strings.TrimSpace(d.ClientEmail) == "" {
		return nil, invalid("clientEmail", "Client email is required")
	}
	validUntil, ok := ParseDate(d.ValidUntil)
	if !ok {
		return nil, invalid("validUntil", "A valid expiry date is required")
	}
	for i, item := range d.Items {
		if strings.TrimSpace(item.Name) == "" {
			return nil, invalid("items", itemLabel(i)+" needs a name")
		}
		if item.Rate <= 0 {
			return nil, invalid("items", itemLabel(i)+" needs a rate greater than zero")
		}
	}
	if d.Tax < 0 || d.Tax > 100 {
		return nil, invalid("tax", "Tax must be between 0 and 100")
	}
	if d.Discount < 0 || d.Discount > 100 {
		return nil, invalid("discount", "Discount must be between 0 and 100")
	}

	items := make([]LineItem, len(d.Items))
	copy(items, d.Items)
	for i := range items {
		items[i].Amount = items[i].Quantity * items[i].Rate
	}

	totals := ComputeTotals(items, d.Tax, d.Discount)

	currency := d.Currency
	if currency == "" {
		currency = CurrencyUSD
	}

	return &Payload{
		Title:          strings.TrimSpace(d.Title),
		Description:    strings.TrimSpace(d.Description),
		ClientID:       d.Client.ID(),
		ProjectID:      d.Project.ID(),
		ClientEmail:    strings.TrimSpace(d.ClientEmail),
		ValidUntil:     validUntil.Format(canonicalDateLayout),
		Items:          items,
		Tax:            d.Tax,
		Discount:       d.Discount,
		Currency:       currency,
		Notes:          strings.TrimSpace(d.Notes),
		Subtotal:       totals.Subtotal,
		TaxAmount:      totals.TaxAmount,
		DiscountAmount: totals.DiscountAmount,
		Total:          totals.Total,
	}, nil
}
