package enrich

import "math"

// Earth radius used by the distance anomaly signal, in kilometers.
const earthRadiusKM = 6371.0

// Haversine returns the great-circle distance in kilometers between two
// latitude/longitude points on a spherical Earth. Identical points yield
// exactly 0. Inputs are not validated; NaN coordinates produce a NaN
// distance.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)
	a := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda

	return 2 * earthRadiusKM * math.Asin(math.Sqrt(a))
}
