package risk

const (
	weatherWeight  = 0.25
	trafficWeight  = 0.15
	roadWeight     = 0.10
	timeWeight     = 0.10
	locationWeight = 0.05
	driverWeight   = 0.35

	maxFactorScore = 100
)

var weatherBase = map[WeatherCondition]int{
	WeatherClear:  0,
	WeatherCloudy: 10,
	WeatherRain:   40,
	WeatherFog:    60,
	WeatherSnow:   70,
	WeatherStorm:  85,
}

var trafficBase = map[TrafficDensity]int{
	TrafficLow:      5,
	TrafficMedium:   15,
	TrafficHigh:     35,
	TrafficVeryHigh: 60,
}

var roadConditionBase = map[RoadCondition]int{
	RoadExcellent: 0,
	RoadGood:      5,
	RoadFair:      25,
	RoadPoor:      50,
}

var roadTypeBase = map[RoadType]int{
	RoadLocal:     5,
	RoadCollector: 10,
	RoadArterial:  15,
	RoadHighway:   20,
	RoadRural:     25,
}

var intersectionBase = map[IntersectionType]int{
	IntersectionNone:         0,
	IntersectionTrafficLight: 5,
	IntersectionStopSign:     10,
	IntersectionYield:        15,
	IntersectionRoundabout:   20,
}

var areaBase = map[AreaType]int{
	AreaSuburban: 15,
	AreaRural:    20,
	AreaUrban:    25,
}

var alcoholBase = map[AlcoholLevel]int{
	AlcoholNone:     0,
	AlcoholLight:    40,
	AlcoholModerate: 70,
	AlcoholHeavy:    90,
	AlcoholSevere:   100,
}

var fatigueBase = map[Fatigue]int{
	FatigueFresh:     0,
	FatigueNormal:    10,
	FatigueTired:     35,
	FatigueVeryTired: 60,
}

var experienceBase = map[Experience]int{
	ExperienceProfessional: 0,
	ExperienceExperienced:  5,
	ExperienceIntermediate: 15,
	ExperienceBeginner:     30,
}

// factorBuilder accumulates points and reason keys for one factor.
type factorBuilder struct {
	id      FactorID
	weight  float64
	score   int
	clauses []string
}

func newFactor(id FactorID, weight float64) *factorBuilder {
	return &factorBuilder{id: id, weight: weight}
}

func (b *factorBuilder) add(points int, key string) {
	b.score += points
	if key != "" {
		b.clauses = append(b.clauses, key)
	}
}

func (b *factorBuilder) build() Factor {
	score := b.score
	if score > maxFactorScore {
		score = maxFactorScore
	}
	return Factor{ID: b.id, Weight: b.weight, Score: score, Clauses: b.clauses}
}

func weatherFactor(in Input) Factor {
	f := newFactor(FactorWeather, weatherWeight)

	if in.WeatherCondition != WeatherClear {
		f.add(weatherBase[in.WeatherCondition], conditionKey("weather", string(in.WeatherCondition), weatherBase[in.WeatherCondition]))
	}

	if in.Temperature < 0 {
		f.add(25, "weather.freezing")
	} else if in.Temperature > 35 {
		f.add(15, "weather.extreme_heat")
	}

	if in.Visibility < 1 {
		f.add(50, "weather.very_poor_visibility")
	} else if in.Visibility < 5 {
		f.add(25, "weather.reduced_visibility")
	}

	if in.WindSpeed > 60 {
		f.add(30, "weather.strong_wind")
	} else if in.WindSpeed > 40 {
		f.add(15, "weather.moderate_wind")
	}

	return f.build()
}

func trafficFactor(in Input) Factor {
	f := newFactor(FactorTraffic, trafficWeight)

	switch in.TrafficDensity {
	case TrafficHigh:
		f.add(trafficBase[TrafficHigh], "traffic.high_density")
	case TrafficVeryHigh:
		f.add(trafficBase[TrafficVeryHigh], "traffic.very_high_density")
	default:
		f.add(trafficBase[in.TrafficDensity], "")
	}

	// Only driving above the limit scores; slow traffic is covered by density.
	over := in.AverageSpeed - in.SpeedLimit
	switch {
	case over > 30:
		f.add(50, "traffic.speeding_severe")
	case over > 15:
		f.add(30, "traffic.speeding_major")
	case over > 5:
		f.add(15, "traffic.speeding_minor")
	}

	if in.VehicleCount > 1000 {
		f.add(25, "traffic.heavy_volume")
	} else if in.VehicleCount > 500 {
		f.add(15, "traffic.moderate_volume")
	}

	return f.build()
}

func roadFactor(in Input) Factor {
	f := newFactor(FactorRoad, roadWeight)

	switch in.RoadCondition {
	case RoadFair:
		f.add(roadConditionBase[RoadFair], "road.fair_condition")
	case RoadPoor:
		f.add(roadConditionBase[RoadPoor], "road.poor_condition")
	default:
		f.add(roadConditionBase[in.RoadCondition], "")
	}

	switch in.RoadType {
	case RoadHighway:
		f.add(roadTypeBase[RoadHighway], "road.highway")
	case RoadRural:
		f.add(roadTypeBase[RoadRural], "road.rural")
	default:
		f.add(roadTypeBase[in.RoadType], "")
	}

	if in.NumberOfLanes == 1 {
		f.add(20, "road.single_lane")
	} else if in.NumberOfLanes > 6 {
		f.add(15, "road.complex_lanes")
	}

	switch in.IntersectionType {
	case IntersectionYield:
		f.add(intersectionBase[IntersectionYield], "road.yield")
	case IntersectionRoundabout:
		f.add(intersectionBase[IntersectionRoundabout], "road.roundabout")
	default:
		f.add(intersectionBase[in.IntersectionType], "")
	}

	return f.build()
}

func timeFactor(in Input) Factor {
	f := newFactor(FactorTime, timeWeight)

	if in.IsRushHour {
		f.add(30, "time.rush_hour")
	}

	h := in.HourOfDay
	switch {
	case isNight(h):
		f.add(35, "time.night")
	case h >= 6 && h <= 9:
		f.add(20, "time.morning_peak")
	case h >= 16 && h <= 19:
		f.add(25, "time.evening_peak")
	}

	if in.DayOfWeek == Saturday || in.DayOfWeek == Sunday {
		f.add(15, "time.weekend")
	}
	if in.IsHoliday {
		f.add(20, "time.holiday")
	}
	if isWinterMonth(in.Month) {
		f.add(15, "time.winter")
	}

	return f.build()
}

func locationFactor(in Input) Factor {
	f := newFactor(FactorLocation, locationWeight)

	switch in.UrbanRural {
	case AreaUrban:
		f.add(areaBase[AreaUrban], "location.urban")
	case AreaRural:
		f.add(areaBase[AreaRural], "location.rural")
	default:
		f.add(areaBase[in.UrbanRural], "")
	}

	if in.SchoolZone {
		f.add(20, "location.school_zone")
	}
	if in.ConstructionZone {
		f.add(35, "location.construction_zone")
	}

	return f.build()
}

func driverFactor(in Input) Factor {
	f := newFactor(FactorDriver, driverWeight)

	if in.AlcoholConsumption != AlcoholNone {
		f.add(alcoholBase[in.AlcoholConsumption], conditionKey("driver.alcohol", string(in.AlcoholConsumption), alcoholBase[in.AlcoholConsumption]))
	}

	switch in.DriverFatigue {
	case FatigueTired:
		f.add(fatigueBase[FatigueTired], "driver.tired")
	case FatigueVeryTired:
		f.add(fatigueBase[FatigueVeryTired], "driver.very_tired")
	default:
		f.add(fatigueBase[in.DriverFatigue], "")
	}

	switch in.DriverExperience {
	case ExperienceBeginner:
		f.add(experienceBase[ExperienceBeginner], "driver.beginner")
	case ExperienceIntermediate:
		f.add(experienceBase[ExperienceIntermediate], "driver.intermediate")
	default:
		f.add(experienceBase[in.DriverExperience], "")
	}

	if !in.SeatbeltUsage {
		f.add(50, "driver.no_seatbelt")
	}
	if !in.VehicleMaintenanceCheck {
		f.add(25, "driver.no_maintenance")
	}

	return f.build()
}

// conditionKey names a reason only for values that actually score, so
// unmapped enum values stay silent.
func conditionKey(prefix, value string, points int) string {
	if points == 0 {
		return ""
	}
	return prefix + "." + value
}

func isWinterMonth(m int) bool {
	return m == 11 || m == 12 || m == 1 || m == 2
}

func isNight(hour int) bool {
	return (hour >= 22 && hour < 24) || (hour >= 0 && hour <= 5)
}
