package risk

// recommendations applies each rule in order against the raw input; only the
// catch-all postpone rule looks at factor scores.
func recommendations(in Input, factors []Factor) []string {
	var recs []string
	add := func(keys ...string) {
		recs = append(recs, keys...)
	}

	switch in.AlcoholConsumption {
	case AlcoholSevere, AlcoholHeavy:
		add("rec.alcohol.do_not_drive", "rec.alcohol.alternative_transport")
	case AlcoholModerate:
		add("rec.alcohol.over_limit", "rec.alcohol.alternative_transport")
	case AlcoholLight:
		add("rec.alcohol.wait")
	}

	if !in.SeatbeltUsage {
		add("rec.seatbelt")
	}

	switch in.DriverFatigue {
	case FatigueVeryTired:
		add("rec.fatigue.do_not_drive")
	case FatigueTired:
		add("rec.fatigue.rest")
	}

	if !in.VehicleMaintenanceCheck {
		add("rec.vehicle.check")
	}

	if in.DriverExperience == ExperienceBeginner {
		add("rec.experience.beginner")
	}

	switch in.WeatherCondition {
	case WeatherRain, WeatherSnow:
		add("rec.weather.reduce_speed", "rec.weather.headlights")
	case WeatherFog:
		add("rec.weather.fog_lights", "rec.weather.lane_markers")
	case WeatherStorm:
		add("rec.weather.storm")
	}

	if in.TrafficDensity == TrafficHigh || in.TrafficDensity == TrafficVeryHigh {
		add("rec.traffic.following_distance", "rec.traffic.sudden_stops")
	}

	if in.AverageSpeed-in.SpeedLimit > 5 {
		add("rec.speed.limit")
	}

	if isNight(in.HourOfDay) {
		add("rec.time.night", "rec.time.headlights")
	}

	if in.IsRushHour {
		add("rec.time.rush_hour")
	}

	if in.SchoolZone {
		add("rec.location.school_zone")
	}
	if in.ConstructionZone {
		add("rec.location.construction_signs", "rec.location.construction_workers")
	}

	if countAbove(factors, highRiskThreshold) > 2 {
		add("rec.general.postpone")
	}

	if len(recs) == 0 {
		add("rec.general.safe_driving", "rec.general.stay_alert")
	}

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}
