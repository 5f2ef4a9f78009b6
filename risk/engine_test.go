package risk

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// idealInput is a clear weekday afternoon with a rested, sober driver.
func idealInput() Input {
	return Input{
		WeatherCondition:        WeatherClear,
		Temperature:             24,
		Visibility:              15,
		WindSpeed:               10,
		Humidity:                50,
		TrafficDensity:          TrafficLow,
		AverageSpeed:            55,
		VehicleCount:            80,
		RoadType:                RoadArterial,
		RoadCondition:           RoadExcellent,
		NumberOfLanes:           2,
		SpeedLimit:              65,
		IntersectionType:        IntersectionNone,
		HourOfDay:               14,
		DayOfWeek:               Wednesday,
		Month:                   6,
		UrbanRural:              AreaUrban,
		AlcoholConsumption:      AlcoholNone,
		DriverFatigue:           FatigueFresh,
		DriverExperience:        ExperienceExperienced,
		SeatbeltUsage:           true,
		VehicleMaintenanceCheck: true,
	}
}

func severeNightInput() Input {
	in := idealInput()
	in.WeatherCondition = WeatherSnow
	in.Temperature = 2
	in.Visibility = 3
	in.TrafficDensity = TrafficMedium
	in.AverageSpeed = 70
	in.SpeedLimit = 50
	in.VehicleCount = 300
	in.RoadType = RoadRural
	in.RoadCondition = RoadPoor
	in.HourOfDay = 2
	in.DayOfWeek = Saturday
	in.Month = 12
	in.UrbanRural = AreaRural
	in.AlcoholConsumption = AlcoholSevere
	in.DriverFatigue = FatigueVeryTired
	in.SeatbeltUsage = false
	return in
}

func TestPredictIdealDaytime(t *testing.T) {
	p := New().Predict(idealInput())

	assert.Less(t, p.Score, 40)
	assert.Contains(t, []Level{LevelVeryLow, LevelLow}, p.Level)
	assert.Equal(t, 8, p.Score)
	assert.Equal(t, LevelVeryLow, p.Level)
	assert.Empty(t, p.ContributingFactors)
	assert.Equal(t, 85, p.Confidence)
	assert.Equal(t, []string{"rec.general.safe_driving", "rec.general.stay_alert"}, p.Recommendations)
}

func TestPredictSevereAlcoholAtNight(t *testing.T) {
	p := New().Predict(severeNightInput())

	assert.Greater(t, p.Score, 70)
	assert.Contains(t, []Level{LevelHigh, LevelVeryHigh}, p.Level)
	require.NotEmpty(t, p.ContributingFactors)
	assert.Equal(t, Clause{Factor: FactorDriver, Severity: 100, Key: "driver.alcohol.severe"}, p.ContributingFactors[0])
	assert.Len(t, p.ContributingFactors, maxContributing)
	assert.Equal(t, 95, p.Confidence)
	assert.Equal(t, []string{
		"rec.alcohol.do_not_drive",
		"rec.alcohol.alternative_transport",
		"rec.seatbelt",
		"rec.fatigue.do_not_drive",
		"rec.weather.reduce_speed",
	}, p.Recommendations)
}

func TestContributingFactorsOrderedBySeverity(t *testing.T) {
	p := New().Predict(severeNightInput())

	keys := make([]string, 0, len(p.ContributingFactors))
	for i, c := range p.ContributingFactors {
		keys = append(keys, c.Key)
		if i > 0 {
			assert.LessOrEqual(t, c.Severity, p.ContributingFactors[i-1].Severity)
		}
	}
	assert.Equal(t, []string{
		"driver.alcohol.severe", "driver.very_tired", "driver.no_seatbelt",
		"weather.snow", "weather.reduced_visibility",
		"road.poor_condition", "road.rural",
		"time.night",
	}, keys)
}

func TestZeroScoreFactorsExcluded(t *testing.T) {
	// Clear weather and a quiet weekday afternoon score zero and must not
	// appear in the breakdown or dilute the weighted average.
	p := New().Predict(idealInput())

	ids := make([]FactorID, 0, len(p.Factors))
	for _, f := range p.Factors {
		ids = append(ids, f.ID)
		assert.Greater(t, f.Score, 0)
	}
	assert.Equal(t, []FactorID{FactorTraffic, FactorRoad, FactorLocation, FactorDriver}, ids)
}

func TestUnknownEnumsContributeNothing(t *testing.T) {
	in := Input{
		WeatherCondition:        "hail",
		Visibility:              10,
		TrafficDensity:          "gridlock",
		RoadType:                "dirt",
		RoadCondition:           "muddy",
		NumberOfLanes:           2,
		IntersectionType:        "five_way",
		HourOfDay:               12,
		DayOfWeek:               "someday",
		Month:                   6,
		UrbanRural:              "orbital",
		AlcoholConsumption:      AlcoholSevere,
		DriverFatigue:           "sleepy",
		DriverExperience:        "rookie",
		SeatbeltUsage:           true,
		VehicleMaintenanceCheck: true,
	}

	p := New().Predict(in)

	require.Len(t, p.Factors, 1)
	assert.Equal(t, FactorDriver, p.Factors[0].ID)
	assert.Equal(t, 100, p.Score)
	assert.Equal(t, LevelVeryHigh, p.Level)
	assert.Equal(t, 60, p.Confidence)
	assert.Equal(t, []Clause{{Factor: FactorDriver, Severity: 100, Key: "driver.alcohol.severe"}}, p.ContributingFactors)
}

func TestNoQualifyingFactorsYieldsZero(t *testing.T) {
	in := Input{Visibility: 10, HourOfDay: 12, Month: 6, SeatbeltUsage: true, VehicleMaintenanceCheck: true}

	p := New().Predict(in)

	assert.Equal(t, 0, p.Score)
	assert.Equal(t, LevelVeryLow, p.Level)
	assert.Empty(t, p.Factors)
	assert.Equal(t, 60, p.Confidence)
	assert.Equal(t, []string{"rec.general.safe_driving", "rec.general.stay_alert"}, p.Recommendations)
}

func TestLevelForNormalized(t *testing.T) {
	tests := []struct {
		normalized float64
		want       Level
	}{
		{0, LevelVeryLow},
		{19.6, LevelVeryLow},
		{20, LevelLow},
		{39.9, LevelLow},
		{40, LevelMedium},
		{59.6, LevelMedium},
		{60, LevelHigh},
		{79.99, LevelHigh},
		{80, LevelVeryHigh},
		{100, LevelVeryHigh},
	}
	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			assert.Equal(t, tt.want, LevelForNormalized(tt.normalized))
		})
	}
}

func TestLevelUsesUnroundedScore(t *testing.T) {
	// Only weather, location and driver score in these inputs.
	base := func() Input {
		in := idealInput()
		in.TrafficDensity = ""
		in.RoadType = ""
		return in
	}

	tests := []struct {
		name      string
		modify    func(*Input)
		wantScore int
		wantLevel Level
	}{
		{
			name: "19.6 publishes 20 but stays very low",
			modify: func(in *Input) {
				in.Visibility = 3
				in.DriverExperience = ExperienceIntermediate
			},
			wantScore: 20,
			wantLevel: LevelVeryLow,
		},
		{
			name: "59.6 publishes 60 but stays medium",
			modify: func(in *Input) {
				in.WeatherCondition = WeatherCloudy
				in.AlcoholConsumption = AlcoholSevere
			},
			wantScore: 60,
			wantLevel: LevelMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base()
			tt.modify(&in)

			p := New().Predict(in)
			require.Len(t, p.Factors, 3)
			assert.Equal(t, tt.wantScore, p.Score)
			assert.Equal(t, tt.wantLevel, p.Level)
		})
	}
}

func TestTrafficSpeedOverLimitOnly(t *testing.T) {
	tests := []struct {
		name  string
		speed float64
		want  int
		key   string
	}{
		{"well below limit", 20, 5, ""},
		{"at limit", 65, 5, ""},
		{"five over", 70, 5, ""},
		{"minor", 71, 20, "traffic.speeding_minor"},
		{"major", 81, 35, "traffic.speeding_major"},
		{"severe", 96, 55, "traffic.speeding_severe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := idealInput()
			in.AverageSpeed = tt.speed
			f := trafficFactor(in)
			assert.Equal(t, tt.want, f.Score)
			if tt.key == "" {
				assert.Empty(t, f.Clauses)
			} else {
				assert.Equal(t, []string{tt.key}, f.Clauses)
			}
		})
	}
}

func TestTimeOfDayTiers(t *testing.T) {
	tests := []struct {
		hour int
		want int
	}{
		{0, 35},
		{5, 35},
		{6, 20},
		{9, 20},
		{10, 0},
		{15, 0},
		{16, 25},
		{19, 25},
		{21, 0},
		{22, 35},
		{23, 35},
	}
	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			in := idealInput()
			in.HourOfDay = tt.hour
			assert.Equal(t, tt.want, timeFactor(in).Score, "hour %d", tt.hour)
		})
	}
}

func TestTimeFactorsAreAdditive(t *testing.T) {
	in := idealInput()
	in.IsRushHour = true
	in.HourOfDay = 8
	in.DayOfWeek = Sunday
	in.IsHoliday = true
	in.Month = 1

	f := timeFactor(in)

	assert.Equal(t, 100, f.Score)
	assert.Equal(t, []string{"time.rush_hour", "time.morning_peak", "time.weekend", "time.holiday", "time.winter"}, f.Clauses)
}

func TestFactorScoresCappedAt100(t *testing.T) {
	in := idealInput()
	in.WeatherCondition = WeatherStorm
	in.Temperature = -10
	in.Visibility = 0.2
	in.WindSpeed = 90

	assert.Equal(t, 100, weatherFactor(in).Score)
}

func TestDriverScoreMonotonicInAlcohol(t *testing.T) {
	levels := []AlcoholLevel{AlcoholNone, AlcoholLight, AlcoholModerate, AlcoholHeavy, AlcoholSevere}

	for _, fatigue := range []Fatigue{FatigueFresh, FatigueVeryTired} {
		in := idealInput()
		in.DriverFatigue = fatigue
		prev := -1
		for _, lvl := range levels {
			in.AlcoholConsumption = lvl
			score := driverFactor(in).Score
			assert.GreaterOrEqual(t, score, prev, "alcohol=%s fatigue=%s", lvl, fatigue)
			prev = score
		}
	}
}

func TestRecommendationsFollowRuleOrder(t *testing.T) {
	in := idealInput()
	in.SchoolZone = true
	in.IsRushHour = true
	in.HourOfDay = 8

	p := New().Predict(in)

	assert.Equal(t, []string{"rec.time.rush_hour", "rec.location.school_zone"}, p.Recommendations)
}

func TestPostponeWhenManyHighFactors(t *testing.T) {
	in := idealInput()
	in.WeatherCondition = WeatherStorm
	in.RoadType = RoadRural
	in.RoadCondition = RoadPoor
	in.NumberOfLanes = 1
	in.HourOfDay = 17
	in.DayOfWeek = Saturday
	in.IsHoliday = true
	in.Month = 12

	p := New().Predict(in)

	assert.Equal(t, []string{"rec.weather.storm", "rec.general.postpone"}, p.Recommendations)
}

func TestPredictIsIdempotent(t *testing.T) {
	e := New()
	in := severeNightInput()

	assert.Equal(t, e.Predict(in), e.Predict(in))
}

func TestPredictSurvivesJSONRoundTrip(t *testing.T) {
	in := severeNightInput()
	in.AlcoholDetails = "7+ bira"

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var decoded Input
	require.NoError(t, json.Unmarshal(data, &decoded))

	e := New()
	assert.Equal(t, e.Predict(in), e.Predict(decoded))
}

func TestPredictInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pick := func(n int) int { return rng.Intn(n) }

	weathers := []WeatherCondition{WeatherClear, WeatherCloudy, WeatherRain, WeatherFog, WeatherSnow, WeatherStorm}
	densities := []TrafficDensity{TrafficLow, TrafficMedium, TrafficHigh, TrafficVeryHigh}
	roadTypes := []RoadType{RoadHighway, RoadArterial, RoadCollector, RoadLocal, RoadRural}
	conditions := []RoadCondition{RoadExcellent, RoadGood, RoadFair, RoadPoor}
	intersections := []IntersectionType{IntersectionNone, IntersectionTrafficLight, IntersectionStopSign, IntersectionRoundabout, IntersectionYield}
	days := []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
	areas := []AreaType{AreaUrban, AreaSuburban, AreaRural}
	alcohol := []AlcoholLevel{AlcoholNone, AlcoholLight, AlcoholModerate, AlcoholHeavy, AlcoholSevere}
	fatigue := []Fatigue{FatigueFresh, FatigueNormal, FatigueTired, FatigueVeryTired}
	experience := []Experience{ExperienceBeginner, ExperienceIntermediate, ExperienceExperienced, ExperienceProfessional}

	known := make(map[string]bool)
	for _, k := range MessageKeys() {
		known[k] = true
	}

	e := New()
	for i := 0; i < 500; i++ {
		in := Input{
			WeatherCondition:        weathers[pick(len(weathers))],
			Temperature:             float64(pick(60) - 20),
			Visibility:              float64(pick(20)) / 2,
			WindSpeed:               float64(pick(100)),
			Humidity:                float64(pick(101)),
			TrafficDensity:          densities[pick(len(densities))],
			AverageSpeed:            float64(pick(160)),
			VehicleCount:            pick(1500),
			RoadType:                roadTypes[pick(len(roadTypes))],
			RoadCondition:           conditions[pick(len(conditions))],
			NumberOfLanes:           pick(8) + 1,
			SpeedLimit:              float64(pick(12)*10 + 30),
			IntersectionType:        intersections[pick(len(intersections))],
			HourOfDay:               pick(24),
			DayOfWeek:               days[pick(len(days))],
			Month:                   pick(12) + 1,
			IsHoliday:               pick(2) == 1,
			IsRushHour:              pick(2) == 1,
			UrbanRural:              areas[pick(len(areas))],
			SchoolZone:              pick(2) == 1,
			ConstructionZone:        pick(2) == 1,
			AlcoholConsumption:      alcohol[pick(len(alcohol))],
			DriverFatigue:           fatigue[pick(len(fatigue))],
			DriverExperience:        experience[pick(len(experience))],
			SeatbeltUsage:           pick(2) == 1,
			VehicleMaintenanceCheck: pick(2) == 1,
		}

		p := e.Predict(in)

		require.GreaterOrEqual(t, p.Score, 0)
		require.LessOrEqual(t, p.Score, 100)
		require.GreaterOrEqual(t, p.Confidence, minConfidence)
		require.LessOrEqual(t, p.Confidence, maxConfidence)
		require.Equal(t, LevelForNormalized(aggregate(scoreFactors(in))), p.Level)
		require.LessOrEqual(t, len(p.ContributingFactors), maxContributing)
		require.NotEmpty(t, p.Recommendations)
		require.LessOrEqual(t, len(p.Recommendations), maxRecommendations)

		for _, c := range p.ContributingFactors {
			require.True(t, known[c.Key], "unlisted clause key %q", c.Key)
		}
		for _, f := range p.Factors {
			if f.Score > contributingThreshold {
				require.NotEmpty(t, f.Clauses, "factor %s scored %d without a clause", f.ID, f.Score)
			}
		}
		for _, r := range p.Recommendations {
			require.True(t, known[r], "unlisted recommendation key %q", r)
		}
	}
}
