package convert

// pdBands maps ERA to a pitch die, best to worst. Bands are upper-
// exclusive: an ERA of exactly 2.0 falls into the d12 band.
var pdBands = []struct {
	upper float64
	die   string
}{
	{2.0, "d20"},
	{3.0, "d12"},
	{4.0, "d8"},
	{5.0, "d4"},
	{6.0, "-d4"},
	{7.0, "-d8"},
	{8.0, "-d12"},
}

// PitchDie derives the pitch-die code from an ERA. Nil ERA yields the
// empty string.
func PitchDie(era *float64) string {
	if era == nil {
		return ""
	}
	for _, band := range pdBands {
		if *era < band.upper {
			return band.die
		}
	}
	return "-d20"
}
