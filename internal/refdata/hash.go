package refdata

import (
	"crypto/md5"
	"encoding/hex"
)

// CityID computes the identifier of a city: hex(MD5(name + "_" + country)).
//
// The raw strings are hashed, not the normalized key. Existing databases hold IDs
// produced by this exact scheme, so it must not change.
func CityID(name, country string) string {
	sum := md5.Sum([]byte(name + "_" + country))
	return hex.EncodeToString(sum[:])
}
