package lookup

import "strings"

// Result is what a lookup returns for an address.
type Result struct {
	Address      string `json:"address"`
	ParcelNumber string `json:"parcel_number"`
	Municipality string `json:"municipality,omitempty"`
	SurfaceM2    int    `json:"surface_m2"`
	Found        bool   `json:"found"`
}

// Normalize folds case and whitespace so the same address typed twice maps
// to the same search session.
func Normalize(address string) string {
	return strings.Join(strings.Fields(strings.ToLower(address)), " ")
}
