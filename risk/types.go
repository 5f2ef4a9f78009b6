package risk

type WeatherCondition string

const (
	WeatherClear  WeatherCondition = "clear"
	WeatherCloudy WeatherCondition = "cloudy"
	WeatherRain   WeatherCondition = "rain"
	WeatherFog    WeatherCondition = "fog"
	WeatherSnow   WeatherCondition = "snow"
	WeatherStorm  WeatherCondition = "storm"
)

type TrafficDensity string

const (
	TrafficLow      TrafficDensity = "low"
	TrafficMedium   TrafficDensity = "medium"
	TrafficHigh     TrafficDensity = "high"
	TrafficVeryHigh TrafficDensity = "very_high"
)

type RoadType string

const (
	RoadHighway   RoadType = "highway"
	RoadArterial  RoadType = "arterial"
	RoadCollector RoadType = "collector"
	RoadLocal     RoadType = "local"
	RoadRural     RoadType = "rural"
)

type RoadCondition string

const (
	RoadExcellent RoadCondition = "excellent"
	RoadGood      RoadCondition = "good"
	RoadFair      RoadCondition = "fair"
	RoadPoor      RoadCondition = "poor"
)

type IntersectionType string

const (
	IntersectionNone         IntersectionType = "none"
	IntersectionTrafficLight IntersectionType = "traffic_light"
	IntersectionStopSign     IntersectionType = "stop_sign"
	IntersectionRoundabout   IntersectionType = "roundabout"
	IntersectionYield        IntersectionType = "yield"
)

type DayOfWeek string

const (
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
	Sunday    DayOfWeek = "sunday"
)

type AreaType string

const (
	AreaUrban    AreaType = "urban"
	AreaSuburban AreaType = "suburban"
	AreaRural    AreaType = "rural"
)

type AlcoholLevel string

const (
	AlcoholNone     AlcoholLevel = "none"
	AlcoholLight    AlcoholLevel = "light"
	AlcoholModerate AlcoholLevel = "moderate"
	AlcoholHeavy    AlcoholLevel = "heavy"
	AlcoholSevere   AlcoholLevel = "severe"
)

type Fatigue string

const (
	FatigueFresh     Fatigue = "fresh"
	FatigueNormal    Fatigue = "normal"
	FatigueTired     Fatigue = "tired"
	FatigueVeryTired Fatigue = "very_tired"
)

type Experience string

const (
	ExperienceBeginner     Experience = "beginner"
	ExperienceIntermediate Experience = "intermediate"
	ExperienceExperienced  Experience = "experienced"
	ExperienceProfessional Experience = "professional"
)

type Level string

const (
	LevelVeryLow  Level = "very_low"
	LevelLow      Level = "low"
	LevelMedium   Level = "medium"
	LevelHigh     Level = "high"
	LevelVeryHigh Level = "very_high"
)

// Input is a single observation of driving conditions. Fields are not range
// checked here; callers validate at the boundary.
type Input struct {
	WeatherCondition WeatherCondition `json:"weather_condition"`
	Temperature      float64          `json:"temperature"`
	Visibility       float64          `json:"visibility"`
	WindSpeed        float64          `json:"wind_speed"`
	Humidity         float64          `json:"humidity"`

	TrafficDensity TrafficDensity `json:"traffic_density"`
	AverageSpeed   float64        `json:"average_speed"`
	VehicleCount   int            `json:"vehicle_count"`

	RoadType         RoadType         `json:"road_type"`
	RoadCondition    RoadCondition    `json:"road_condition"`
	NumberOfLanes    int              `json:"number_of_lanes"`
	SpeedLimit       float64          `json:"speed_limit"`
	IntersectionType IntersectionType `json:"intersection_type"`

	HourOfDay  int       `json:"hour_of_day"`
	DayOfWeek  DayOfWeek `json:"day_of_week"`
	Month      int       `json:"month"`
	IsHoliday  bool      `json:"is_holiday"`
	IsRushHour bool      `json:"is_rush_hour"`

	UrbanRural       AreaType `json:"urban_rural"`
	SchoolZone       bool     `json:"school_zone"`
	ConstructionZone bool     `json:"construction_zone"`

	AlcoholConsumption      AlcoholLevel `json:"alcohol_consumption"`
	AlcoholDetails          string       `json:"alcohol_details,omitempty"`
	DriverFatigue           Fatigue      `json:"driver_fatigue"`
	DriverExperience        Experience   `json:"driver_experience"`
	SeatbeltUsage           bool         `json:"seatbelt_usage"`
	VehicleMaintenanceCheck bool         `json:"vehicle_maintenance_check"`
}

type FactorID string

const (
	FactorWeather  FactorID = "weather"
	FactorTraffic  FactorID = "traffic"
	FactorRoad     FactorID = "road"
	FactorTime     FactorID = "time"
	FactorLocation FactorID = "location"
	FactorDriver   FactorID = "driver"
)

// Clause is one language-neutral reason behind a factor's score. Key is a
// message catalog identifier; Severity is the owning factor's score.
type Clause struct {
	Factor   FactorID `json:"factor"`
	Severity int      `json:"severity"`
	Key      string   `json:"key"`
}

type Factor struct {
	ID      FactorID `json:"id"`
	Weight  float64  `json:"weight"`
	Score   int      `json:"score"`
	Clauses []string `json:"clauses"`
}

type Prediction struct {
	Level               Level    `json:"risk_level"`
	Score               int      `json:"risk_score"`
	Confidence          int      `json:"confidence"`
	ContributingFactors []Clause `json:"contributing_factors"`
	Recommendations     []string `json:"recommendations"`
	Factors             []Factor `json:"factors"`
}
