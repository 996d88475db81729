// Package qris extracts merchant fields from QRIS (EMVCo QR) payloads.
package qris

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// EMVCo tags the extractor cares about. The payload carries many more
// (including the trailing CRC tag 63), none of which are validated here.
const (
	tagMerchantAccount = "51"
	tagAmount          = "54"
	tagMerchantName    = "59"
	tagAdditionalData  = "62"
)

var (
	// Merchant IDs look like "ID" followed by 8-15 digits. This is the
	// last-resort fallback and can match unrelated substrings of the
	// payload; structured tags always win over it.
	nmidPattern = regexp.MustCompile(`ID[0-9]{8,15}`)

	amountPrinter = message.NewPrinter(language.Indonesian)
)

// Fields is the structured result of parsing one QRIS payload. Every
// field except Raw is optional; an empty string means the payload did
// not carry it and the caller supplies its own default.
type Fields struct {
	MerchantName string `json:"merchant_name,omitempty"`
	NMID         string `json:"nmid,omitempty"`
	Amount       string `json:"amount,omitempty"`
	Raw          string `json:"raw"`
}

// Parse decodes the payload and applies the tag extraction rules.
// It never fails: missing or malformed tags leave fields empty, and
// Raw always carries the input verbatim.
func Parse(payload string) Fields {
	tags := DecodeTLV(payload)

	fields := Fields{Raw: payload}
	fields.MerchantName = tags[tagMerchantName]

	if v, ok := tags[tagAmount]; ok {
		fields.Amount = FormatAmount(v)
	}

	fields.NMID = resolveNMID(tags, payload)

	return fields
}

// FormatAmount renders a tag 54 value as "Rp. " plus the integer
// grouped with Indonesian thousands separators ("150000" becomes
// "Rp. 150.000"). Unparseable input yields "".
func FormatAmount(value string) string {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return ""
	}
	return "Rp. " + amountPrinter.Sprintf("%d", n)
}

// resolveNMID walks the fallback chain for the merchant identifier.
// Issuers place the NMID inconsistently: most put it in the tag 51
// merchant account template (sub-tag 02, sometimes 03), some in the
// tag 62 additional data template (sub-tag 07), and for the rest a raw
// scan of the whole payload is the best that can be done.
func resolveNMID(tags map[string]string, payload string) string {
	if v, ok := tags[tagMerchantAccount]; ok {
		sub := DecodeTLV(v)
		if id := sub["02"]; id != "" {
			return id
		}
		if id := sub["03"]; id != "" {
			return id
		}
	}

	if v, ok := tags[tagAdditionalData]; ok {
		sub := DecodeTLV(v)
		if id := sub["07"]; strings.HasPrefix(id, "ID") {
			return id
		}
	}

	return nmidPattern.FindString(payload)
}
