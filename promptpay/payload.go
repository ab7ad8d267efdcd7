package promptpay

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	tagPayloadFormat = "00"
	tagPointOfInit   = "01"
	tagCurrency      = "53"
	tagAmount        = "54"
	tagCountry       = "58"
	tagCRC           = "63"

	payloadFormatEMV = "01"
	pointOfInitOnce  = "12" // dynamic, carries an amount
	pointOfInitMulti = "11" // static, reusable
	currencyTHB      = "764"
	countryTH        = "TH"
)

// BuildPayload assembles an EMVCo PromptPay payload for the given receiving
// identifier, ready to be rendered as a QR code. A positive amount (in baht)
// makes the QR dynamic; zero builds a reusable static QR.
//
// Phone identifiers are accepted in the local 0-prefixed 10-digit form and
// converted to the 0066 wire form, the inverse of what Decode does.
func BuildPayload(id string, kind Kind, amount decimal.Decimal) (string, error) {
	var subtag, wireID string
	switch kind {
	case KindPhone:
		if len(id) != 10 || !strings.HasPrefix(id, "0") {
			return "", fmt.Errorf("promptpay: invalid phone id %q", id)
		}
		subtag, wireID = subtagPhone, "0066"+id[1:]
	case KindNationalID:
		if len(id) != 13 {
			return "", fmt.Errorf("promptpay: invalid national id %q", id)
		}
		subtag, wireID = subtagNationalID, id
	case KindEWallet:
		if len(id) != 15 {
			return "", fmt.Errorf("promptpay: invalid e-wallet id %q", id)
		}
		subtag, wireID = subtagEWallet, id
	default:
		return "", fmt.Errorf("promptpay: cannot encode identifier kind %q", kind)
	}

	aidRec, err := tlvRecord(subtagAID, AID)
	if err != nil {
		return "", err
	}
	idRec, err := tlvRecord(subtag, wireID)
	if err != nil {
		return "", err
	}
	merchantRec, err := tlvRecord(tagMerchantCredit, aidRec+idRec)
	if err != nil {
		return "", err
	}

	pointOfInit := pointOfInitMulti
	if amount.IsPositive() {
		pointOfInit = pointOfInitOnce
	}

	var b strings.Builder
	for _, rec := range [][2]string{
		{tagPayloadFormat, payloadFormatEMV},
		{tagPointOfInit, pointOfInit},
	} {
		r, err := tlvRecord(rec[0], rec[1])
		if err != nil {
			return "", err
		}
		b.WriteString(r)
	}
	b.WriteString(merchantRec)

	currencyRec, err := tlvRecord(tagCurrency, currencyTHB)
	if err != nil {
		return "", err
	}
	b.WriteString(currencyRec)

	if amount.IsPositive() {
		amountRec, err := tlvRecord(tagAmount, amount.StringFixed(2))
		if err != nil {
			return "", err
		}
		b.WriteString(amountRec)
	}

	countryRec, err := tlvRecord(tagCountry, countryTH)
	if err != nil {
		return "", err
	}
	b.WriteString(countryRec)

	// The CRC covers everything up to and including its own tag and length.
	payload := b.String() + tagCRC + "04"
	return payload + fmt.Sprintf("%04X", crc16([]byte(payload))), nil
}

// ValidateCRC reports whether the payload's trailing CRC tag matches its
// content. The tolerant decoder never calls this; stricter callers can.
func ValidateCRC(payload string) bool {
	marker := tagCRC + "04"
	idx := strings.LastIndex(payload, marker)
	if idx < 0 || idx+len(marker)+4 != len(payload) {
		return false
	}
	body := payload[:idx+len(marker)]
	want := payload[idx+len(marker):]
	return fmt.Sprintf("%04X", crc16([]byte(body))) == want
}

// crc16 is CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF), the checksum the
// EMVCo QR spec mandates for tag 63.
func crc16(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
