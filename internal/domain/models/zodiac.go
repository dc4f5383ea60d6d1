package models

// ZodiacIndex identifies one of the twelve 30° sectors, Aries=0 through Pisces=11.
type ZodiacIndex int

const (
	Aries ZodiacIndex = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

// SignCount is the number of sectors on the wheel.
const SignCount = 12

// SignDegrees is the angular width of one sign.
const SignDegrees = 30.0

var thaiSignNames = [SignCount]string{
	"เมษ", "พฤษภ", "เมถุน", "กรกฎ", "สิงห์", "กันย์",
	"ตุลย์", "พิจิก", "ธนู", "มังกร", "กุมภ์", "มีน",
}

var signNames = [SignCount]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// Valid reports whether z is in [0,11].
func (z ZodiacIndex) Valid() bool {
	return z >= 0 && z < SignCount
}

// ThaiName returns the Thai sign name, or "" for an invalid index.
func (z ZodiacIndex) ThaiName() string {
	if !z.Valid() {
		return ""
	}
	return thaiSignNames[z]
}

func (z ZodiacIndex) String() string {
	if !z.Valid() {
		return "Unknown"
	}
	return signNames[z]
}

// ThaiSignNames returns the twelve Thai names in index order.
func ThaiSignNames() [SignCount]string {
	return thaiSignNames
}
