package openweather

import "fmt"

// Layer is a selectable weather overlay tile set.
type Layer string

const (
	LayerTemperature Layer = "Temperature"
	LayerRain        Layer = "Rain"
	LayerClouds      Layer = "Clouds"
	LayerWind        Layer = "Wind"
	LayerSnow        Layer = "Snow"
	LayerPressure    Layer = "Pressure"
)

// layerCodes maps each overlay layer to its provider tile code.
var layerCodes = map[Layer]string{
	LayerTemperature: "TA2",
	LayerRain:        "PA0",
	LayerClouds:      "CL",
	LayerWind:        "WS10",
	LayerSnow:        "SD0",
	LayerPressure:    "APM",
}

func Layers() []Layer {
	return []Layer{
		LayerTemperature, LayerRain, LayerClouds,
		LayerWind, LayerSnow, LayerPressure,
	}
}

func (l Layer) Valid() bool {
	_, ok := layerCodes[l]
	return ok
}

// TileURL builds the XYZ tile URL for an overlay layer. The empty string is
// returned for an unknown layer.
func (c *Client) TileURL(layer Layer, z, x, y int) string {
	code, ok := layerCodes[layer]
	if !ok {
		return ""
	}
	return fmt.Sprintf("%v/%v/%d/%d/%d?appid=%v", c.tileBaseUrl, code, z, x, y, c.apiKey)
}
