package util

// RemoveDuplicateStrings drops duplicates and empty entries, keeping first
// occurrence order.
func RemoveDuplicateStrings(strings []string) []string {
	presentStrings := make(map[string]bool)
	var list []string

	for _, item := range strings {
		if !presentStrings[item] && item != "" {
			presentStrings[item] = true
			list = append(list, item)
		}
	}
	return list
}

func TrimString(s string, length int) string {
	if len(s) <= length {
		return s
	}

	return s[:length]
}
