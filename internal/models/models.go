package models

// ColorMode is how a light is currently expressing colour.
type ColorMode string

const (
	ColorModeHS         ColorMode = "hs"
	ColorModeColorTemp  ColorMode = "color_temp"
	ColorModeBrightness ColorMode = "brightness"
)

const (
	EffectBreathe = "breathe"
	EffectPulse   = "pulse"
)

// DeviceInfo is the device metadata handed to the consuming host.
type DeviceInfo struct {
	Identifiers   []string
	Name          string
	Manufacturer  string
	Model         string
	SuggestedArea string
}
