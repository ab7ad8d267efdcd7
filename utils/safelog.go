package utils

// MaskPhone hides the middle of a phone number for log output,
// e.g. "0812345678" becomes "081****678".
func MaskPhone(phone string) string {
	if len(phone) < 7 {
		return "***"
	}
	return phone[:3] + "****" + phone[len(phone)-3:]
}

// MaskID hides all but the last four characters of an identifier,
// suitable for PromptPay receiving IDs in log lines.
func MaskID(id string) string {
	if len(id) <= 4 {
		return "****"
	}
	return "****" + id[len(id)-4:]
}
