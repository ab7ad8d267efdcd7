// Package promptpay reads and writes the EMVCo tag-length-value payloads
// used by Thai PromptPay payment QR codes.
package promptpay

import (
	"errors"
	"strconv"
)

var errMalformed = errors.New("promptpay: malformed TLV payload")

// parseTLV scans a flat EMVCo TLV sequence into a tag→value map. Each record
// is a 2-digit tag, a 2-digit decimal length and that many bytes of value,
// with no terminator; the whole remaining string must be consumed record by
// record. No CRC verification happens here even when a CRC tag is present.
func parseTLV(data string) (map[string]string, error) {
	tags := make(map[string]string)
	for index := 0; index < len(data); {
		if index+4 > len(data) {
			return nil, errMalformed
		}
		tag := data[index : index+2]
		length, err := strconv.Atoi(data[index+2 : index+4])
		if err != nil || length < 0 {
			return nil, errMalformed
		}
		if index+4+length > len(data) {
			return nil, errMalformed
		}
		tags[tag] = data[index+4 : index+4+length]
		index += 4 + length
	}
	return tags, nil
}

// tlvRecord formats a single record as tag + zero-padded length + value.
// Values longer than 99 bytes cannot be represented and yield an error.
func tlvRecord(tag, value string) (string, error) {
	if len(tag) != 2 {
		return "", errMalformed
	}
	if len(value) > 99 {
		return "", errors.New("promptpay: TLV value exceeds 99 bytes")
	}
	length := strconv.Itoa(len(value))
	if len(length) == 1 {
		length = "0" + length
	}
	return tag + length + value, nil
}
