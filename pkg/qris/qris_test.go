package qris

import "testing"

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"150000", "Rp. 150.000"},
		{"1000000", "Rp. 1.000.000"},
		{"500", "Rp. 500"},
		{"0", "Rp. 0"},
		{"abc", ""},
		{"", ""},
		{"12.50", ""},
	}

	for _, c := range cases {
		if got := FormatAmount(c.in); got != c.want {
			t.Fatalf("FormatAmount(%q): expected %q, got %q", c.in, c.want, got)
		}
	}
}

func TestParseEndToEnd(t *testing.T) {
	payload := "000201" +
		tlv("59", "MERCHANT A") +
		tlv("54", "150000") +
		"5303360" +
		"6304ABCD"

	fields := Parse(payload)
	if fields.MerchantName != "MERCHANT A" {
		t.Fatalf("merchant name: got %q", fields.MerchantName)
	}
	if fields.Amount != "Rp. 150.000" {
		t.Fatalf("amount: got %q", fields.Amount)
	}
	if fields.Raw != payload {
		t.Fatalf("raw must equal the input verbatim")
	}
}

func TestParseMissingTagsLeaveFieldsUnset(t *testing.T) {
	fields := Parse("000201")
	if fields.MerchantName != "" || fields.Amount != "" || fields.NMID != "" {
		t.Fatalf("expected unset fields, got %+v", fields)
	}
	if fields.Raw != "000201" {
		t.Fatalf("raw: got %q", fields.Raw)
	}
}

func TestParseUnparseableAmountLeftUnset(t *testing.T) {
	fields := Parse(tlv("54", "15OO00"))
	if fields.Amount != "" {
		t.Fatalf("expected unset amount, got %q", fields.Amount)
	}
}

func TestNMIDFromTag51SubTag02(t *testing.T) {
	payload := tlv("51", tlv("00", "COM.EXAMPLE")+tlv("02", "ID1234567890"))

	fields := Parse(payload)
	if fields.NMID != "ID1234567890" {
		t.Fatalf("nmid: got %q", fields.NMID)
	}
}

func TestNMIDStructuredBeatsRegex(t *testing.T) {
	// The raw payload matches the regex first with an unrelated id, but
	// the structured sub-tag 02 value must still win.
	payload := tlv("99", "ID9999999999") + tlv("51", tlv("02", "ID1234567890"))

	fields := Parse(payload)
	if fields.NMID != "ID1234567890" {
		t.Fatalf("expected structured nmid to win, got %q", fields.NMID)
	}
}

func TestNMIDFallsBackToSubTag03(t *testing.T) {
	payload := tlv("51", tlv("03", "ID5555555555"))

	fields := Parse(payload)
	if fields.NMID != "ID5555555555" {
		t.Fatalf("nmid: got %q", fields.NMID)
	}
}

func TestNMIDFromTag62RequiresIDPrefix(t *testing.T) {
	withPrefix := Parse(tlv("62", tlv("07", "ID0123456789")))
	if withPrefix.NMID != "ID0123456789" {
		t.Fatalf("nmid: got %q", withPrefix.NMID)
	}

	withoutPrefix := Parse(tlv("62", tlv("07", "9360001234")))
	if withoutPrefix.NMID != "" {
		t.Fatalf("expected tag 62 value without ID prefix to be skipped, got %q", withoutPrefix.NMID)
	}
}

func TestNMIDRegexOnlyFallback(t *testing.T) {
	payload := "000201" + tlv("99", "xxID987654321yy")

	fields := Parse(payload)
	if fields.NMID != "ID987654321" {
		t.Fatalf("nmid: got %q", fields.NMID)
	}
}
