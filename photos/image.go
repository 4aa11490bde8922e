package photos

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	DefaultImageSize = 900
	MinImageSize     = 200
	MaxImageSize     = 2000
)

// ImageSize parses the requested edge length and clamps it to the supported
// range. Anything unparseable gets DefaultImageSize.
func ImageSize(raw string) int {
	size, err := strconv.Atoi(raw)
	if err != nil {
		return DefaultImageSize
	}
	return min(max(size, MinImageSize), MaxImageSize)
}

// SizedURL appends the Google Photos sizing suffix. Profile photo URLs
// (containing /ppa/) do not accept it and are returned unchanged.
func SizedURL(baseURL string, size int) string {
	if strings.Contains(baseURL, "/ppa/") {
		return baseURL
	}
	return fmt.Sprintf("%s=w%d-h%d", baseURL, size, size)
}
