package ndk

import (
	"fmt"
	"strconv"
	"strings"
)

// FirstSupportedPlatform is the lowest API level that NDK releases
// ship platform headers for.
const FirstSupportedPlatform = 3

var apiLevelsMap = map[string]int{
	"G":     9,
	"I":     14,
	"J":     16,
	"J-MR1": 17,
	"J-MR2": 18,
	"K":     19,
	"L":     21,
	"L-MR1": 22,
	"M":     23,
	"N":     24,
	"N-MR1": 25,
	"O":     26,
}

// PlatformName renders an API level in the directory form the NDK uses
// under platforms/ and in APP_PLATFORM.
func PlatformName(apiLevel int) string {
	return "android-" + strconv.Itoa(apiLevel)
}

// ParsePlatform accepts a bare API level, an android-NN platform name,
// or a release codename.
func ParsePlatform(s string) (int, error) {
	name := strings.TrimPrefix(s, "android-")
	if level, ok := apiLevelsMap[name]; ok {
		return level, nil
	}
	level, err := strconv.Atoi(name)
	if err != nil {
		return 0, fmt.Errorf("invalid platform %q", s)
	}
	if level < FirstSupportedPlatform {
		return 0, fmt.Errorf("invalid platform %q: api level must be at least %d", s, FirstSupportedPlatform)
	}
	return level, nil
}
