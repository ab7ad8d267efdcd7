package promptpay

import "strings"

// Kind classifies a PromptPay receiving identifier.
type Kind string

const (
	KindPhone      Kind = "PHONE"
	KindNationalID Kind = "NATIONAL_ID"
	KindEWallet    Kind = "EWALLET"
	KindUnknown    Kind = "UNKNOWN"
)

// AID is the PromptPay credit-transfer application identifier.
const AID = "A000000677010111"

const (
	// Merchant account information tags in the outer payload. Static
	// PromptPay QRs normally use tag 29; some issuers put the payload in
	// the generic tag 26 instead.
	tagMerchantCredit  = "29"
	tagMerchantGeneric = "26"

	subtagAID        = "00"
	subtagPhone      = "01"
	subtagNationalID = "02"
	subtagEWallet    = "03"
)

// Result is a decoded receiving identifier. ID is empty when the payload did
// not contain a recognizable PromptPay identifier.
type Result struct {
	ID   string `json:"id"`
	Kind Kind   `json:"type"`
}

// Decoder extracts a receiving identifier from scanned QR text. Implemented
// by the tolerant default decoder; a checksum-validating variant can be
// slotted in without touching callers.
type Decoder interface {
	Decode(payload string) Result
}

// TolerantDecoder decodes without verifying the payload CRC, the way
// consumer-side QR readers in this ecosystem behave.
type TolerantDecoder struct{}

// Decode is total: any input, including garbage, yields a Result and never
// an error. Unparseable or non-PromptPay payloads come back as
// {"", UNKNOWN}.
func (TolerantDecoder) Decode(payload string) Result {
	tags, err := parseTLV(payload)
	if err != nil {
		return Result{Kind: KindUnknown}
	}

	merchant, ok := tags[tagMerchantCredit]
	if !ok {
		// Tag 26 only counts when it actually carries the PromptPay AID.
		generic := tags[tagMerchantGeneric]
		if !strings.Contains(generic, AID) {
			return Result{Kind: KindUnknown}
		}
		merchant = generic
	}

	subtags, err := parseTLV(merchant)
	if err != nil {
		return Result{Kind: KindUnknown}
	}

	// The AID subtag is read but a mismatch does not abort the decode;
	// issuers occasionally deviate from the registered value.
	_ = subtags[subtagAID]

	raw := subtags[subtagPhone]
	if raw == "" {
		raw = subtags[subtagNationalID]
	}
	if raw == "" {
		raw = subtags[subtagEWallet]
	}
	if raw == "" {
		return Result{Kind: KindUnknown}
	}

	return classify(raw)
}

// classify maps a raw identifier to its kind by shape, not by which subtag
// carried it.
func classify(raw string) Result {
	switch {
	case len(raw) == 13 && strings.HasPrefix(raw, "0066"):
		// 0066812345678 -> 0812345678
		return Result{ID: "0" + raw[4:], Kind: KindPhone}
	case len(raw) == 13:
		return Result{ID: raw, Kind: KindNationalID}
	case len(raw) == 15:
		return Result{ID: raw, Kind: KindEWallet}
	default:
		return Result{ID: raw, Kind: KindUnknown}
	}
}

// Decode decodes payload with the default tolerant decoder.
func Decode(payload string) Result {
	return TolerantDecoder{}.Decode(payload)
}
