package services

import (
	"encoding/json"
	"fmt"

	"github.com/cavedevelopers/finance-docs/internal/constants"
	"github.com/cavedevelopers/finance-docs/internal/types"
)

// canonicalDocument is the archival serialization of a computed result:
// the original document description plus the totals model and any derived
// artifacts. Field order is fixed by the struct; map keys marshal sorted,
// so output is stable across runs for the same input.
type canonicalDocument struct {
	Document      *types.DocumentInput `json:"document"`
	Totals        *types.Totals        `json:"totals"`
	AmountInWords string               `json:"amount_in_words,omitempty"`
	QRString      string               `json:"qr_string,omitempty"`
	QRDataURL     string               `json:"qr_data_url,omitempty"`
}

// RenderJSON renders the canonical machine-readable form of the result.
func RenderJSON(doc *types.DocumentInput, totals *types.Totals, derived *DerivedArtifacts) (string, error) {
	canonical := canonicalDocument{
		Document: doc,
		Totals:   totals,
	}
	if doc.Outputs.ShowAmountInWords {
		canonical.AmountInWords = derived.AmountInWords
	}
	if doc.Outputs.ShowQR {
		canonical.QRString = derived.QRString
		canonical.QRDataURL = derived.QRDataURL
	}

	data, err := json.MarshalIndent(canonical, "", "  ")
	if err != nil {
		return "", &RenderError{Format: constants.FormatJSON, Err: fmt.Errorf("marshal canonical document: %w", err)}
	}
	return string(data) + "\n", nil
}
