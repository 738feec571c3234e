package valueobjects

import "fmt"

// InputType is how a technician answers an inspection point.
type InputType string

const (
	InputTypeYesNo                 InputType = "YES_NO"
	InputTypeNumeric               InputType = "NUMERIC"
	InputTypeText                  InputType = "TEXT"
	InputTypeChoice                InputType = "CHOICE"
	InputTypeImage                 InputType = "IMAGE"
	InputTypeSignature             InputType = "SIGNATURE"
	InputTypeGPS                   InputType = "GPS"
	InputTypeTemperature           InputType = "TEMPERATURE"
	InputTypeElectricalMeasurement InputType = "ELECTRICAL_MEASUREMENT"
)

var validInputTypes = map[InputType]bool{
	InputTypeYesNo:                 true,
	InputTypeNumeric:               true,
	InputTypeText:                  true,
	InputTypeChoice:                true,
	InputTypeImage:                 true,
	InputTypeSignature:             true,
	InputTypeGPS:                   true,
	InputTypeTemperature:           true,
	InputTypeElectricalMeasurement: true,
}

func (t InputType) String() string { return string(t) }

func (t InputType) IsValid() bool { return validInputTypes[t] }

// IsNumeric reports whether min/max bounds apply to the input.
func (t InputType) IsNumeric() bool {
	return t == InputTypeNumeric || t == InputTypeTemperature || t == InputTypeElectricalMeasurement
}

func NewInputType(s string) (InputType, error) {
	t := InputType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid input type: %s", s)
	}
	return t, nil
}

// GPS is a WGS84 coordinate.
type GPS struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (g GPS) Validate() error {
	if g.Latitude < -90 || g.Latitude > 90 {
		return fmt.Errorf("latitude %v out of range", g.Latitude)
	}
	if g.Longitude < -180 || g.Longitude > 180 {
		return fmt.Errorf("longitude %v out of range", g.Longitude)
	}
	return nil
}
