package advice

import "roadweather-service/internal/store"

// Category is one of the five canned advice groups a weather condition
// maps to when the generative provider is unavailable.
type Category string

const (
	CategoryStorm   Category = "storm"
	CategoryRain    Category = "rain"
	CategorySnow    Category = "snow"
	CategoryWind    Category = "wind"
	CategoryGeneral Category = "general"
)

// CategoryFor maps an OpenWeather condition group to an advice category.
func CategoryFor(weather string) Category {
	switch weather {
	case "Thunderstorm":
		return CategoryStorm
	case "Drizzle", "Rain":
		return CategoryRain
	case "Snow":
		return CategorySnow
	case "Mist", "Smoke", "Haze", "Dust", "Fog", "Sand", "Ash", "Squall", "Tornado":
		return CategoryWind
	default:
		return CategoryGeneral
	}
}

var fallbackTexts = map[store.Vehicle]map[Category][]string{
	store.VehicleCar: {
		CategoryStorm: {
			"Pull over safely if visibility drops; thunderstorms can bring sudden standing water.",
			"Avoid flooded sections of road, the depth is hard to judge from the driver's seat.",
		},
		CategoryRain: {
			"Reduce your speed and double your following distance on wet roads.",
			"Watch for aquaplaning on painted lines and standing water.",
		},
		CategorySnow: {
			"Accelerate and brake gently; stopping distances grow tenfold on snow and ice.",
			"Keep to cleared routes and carry a winter kit for long trips.",
		},
		CategoryWind: {
			"Low visibility conditions call for dipped headlights and extra distance.",
			"Expect gusts on exposed stretches and around high-sided vehicles.",
		},
		CategoryGeneral: {
			"Keep a safe following distance and scan well ahead.",
			"Check tyre pressure and fluid levels before longer journeys.",
		},
	},
	store.VehicleMotorbike: {
		CategoryStorm: {
			"Do not ride through thunderstorms; find shelter away from trees and wait it out.",
			"Lightning and sudden downpours make two wheels especially vulnerable.",
		},
		CategoryRain: {
			"Brake earlier and more gently, wet metal and paint offer little grip.",
			"Stay out of the oily centre strip of each lane in the first rain after a dry spell.",
		},
		CategorySnow: {
			"Avoid riding on snow or ice; even gritted roads leave frozen patches.",
			"If you must ride, keep upright, slow, and off the painted markings.",
		},
		CategoryWind: {
			"Crosswinds push a bike hard; grip the tank with your knees and stay loose on the bars.",
			"Give high-sided vehicles extra room, their wake is turbulent.",
		},
		CategoryGeneral: {
			"Ride defensively and assume you have not been seen.",
			"Check tyres and chain tension before setting off.",
		},
	},
	store.VehicleVan: {
		CategoryStorm: {
			"High-sided vans catch storm gusts; slow down on bridges and open stretches.",
			"Secure your load, sudden braking in heavy rain shifts unsecured cargo.",
		},
		CategoryRain: {
			"A laden van needs far longer to stop in the wet; leave a four-second gap.",
			"Spray from your own wheels blinds following traffic, keep your speed down.",
		},
		CategorySnow: {
			"Pull away in a higher gear to avoid wheelspin with a heavy load.",
			"Plan routes along treated main roads and avoid steep gradients.",
		},
		CategoryWind: {
			"Strong side winds can destabilize a high-sided van; both hands on the wheel.",
			"Anticipate gusts at gaps in hedges, bridges and when overtaking.",
		},
		CategoryGeneral: {
			"Mind your blind spots, they are larger than a car's.",
			"Distribute cargo evenly and check mirrors before every manoeuvre.",
		},
	},
}

// Fallback returns the canned two-line advice for a vehicle and weather
// condition, used when the generative call fails.
func Fallback(vehicle store.Vehicle, weather string) []string {
	byCategory, ok := fallbackTexts[vehicle]
	if !ok {
		byCategory = fallbackTexts[store.VehicleCar]
	}
	return byCategory[CategoryFor(weather)]
}
