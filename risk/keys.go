package risk

// MessageKeys lists every clause and recommendation key Predict can emit,
// plus the level labels. The message catalog must translate all of them.
func MessageKeys() []string {
	return []string{
		"weather.cloudy", "weather.rain", "weather.fog", "weather.snow", "weather.storm",
		"weather.freezing", "weather.extreme_heat",
		"weather.very_poor_visibility", "weather.reduced_visibility",
		"weather.strong_wind", "weather.moderate_wind",

		"traffic.high_density", "traffic.very_high_density",
		"traffic.speeding_severe", "traffic.speeding_major", "traffic.speeding_minor",
		"traffic.heavy_volume", "traffic.moderate_volume",

		"road.fair_condition", "road.poor_condition", "road.highway", "road.rural",
		"road.single_lane", "road.complex_lanes", "road.yield", "road.roundabout",

		"time.rush_hour", "time.night", "time.morning_peak", "time.evening_peak",
		"time.weekend", "time.holiday", "time.winter",

		"location.urban", "location.rural", "location.school_zone",
		"location.construction_zone",

		"driver.alcohol.light", "driver.alcohol.moderate", "driver.alcohol.heavy",
		"driver.alcohol.severe", "driver.tired", "driver.very_tired",
		"driver.beginner", "driver.intermediate", "driver.no_seatbelt",
		"driver.no_maintenance",

		"rec.alcohol.do_not_drive", "rec.alcohol.alternative_transport",
		"rec.alcohol.over_limit", "rec.alcohol.wait",
		"rec.seatbelt", "rec.fatigue.do_not_drive", "rec.fatigue.rest",
		"rec.vehicle.check", "rec.experience.beginner",
		"rec.weather.reduce_speed", "rec.weather.headlights",
		"rec.weather.fog_lights", "rec.weather.lane_markers", "rec.weather.storm",
		"rec.traffic.following_distance", "rec.traffic.sudden_stops",
		"rec.speed.limit", "rec.time.night", "rec.time.headlights", "rec.time.rush_hour",
		"rec.location.school_zone", "rec.location.construction_signs",
		"rec.location.construction_workers",
		"rec.general.postpone", "rec.general.safe_driving", "rec.general.stay_alert",

		"level.very_low", "level.low", "level.medium", "level.high", "level.very_high",
	}
}
