package i18n

// Message is one translatable string. Texts are used verbatim as printf
// formats, so a literal percent sign must be written as %%.
type Message struct {
	Key string
	EN  string
	TR  string
}

var messages = []Message{
	{"weather.cloudy", "Cloudy weather", "Bulutlu hava"},
	{"weather.rain", "Rain on the road", "Yağmurlu hava"},
	{"weather.fog", "Fog limits visibility", "Sisli hava görüşü kısıtlıyor"},
	{"weather.snow", "Snowfall", "Kar yağışı"},
	{"weather.storm", "Storm conditions", "Fırtına koşulları"},
	{"weather.freezing", "Freezing temperature, risk of ice", "Dondurucu sıcaklık, buzlanma riski"},
	{"weather.extreme_heat", "Extreme heat", "Aşırı sıcak"},
	{"weather.very_poor_visibility", "Visibility under 1 km", "Görüş mesafesi 1 km altında"},
	{"weather.reduced_visibility", "Reduced visibility", "Azalmış görüş mesafesi"},
	{"weather.strong_wind", "Strong wind", "Kuvvetli rüzgar"},
	{"weather.moderate_wind", "Moderate wind", "Orta şiddette rüzgar"},

	{"traffic.high_density", "Heavy traffic", "Yoğun trafik"},
	{"traffic.very_high_density", "Very heavy traffic", "Çok yoğun trafik"},
	{"traffic.speeding_severe", "Speed more than 30 km/h over the limit", "Hız sınırının 30 km/s üzerinde"},
	{"traffic.speeding_major", "Speed more than 15 km/h over the limit", "Hız sınırının 15 km/s üzerinde"},
	{"traffic.speeding_minor", "Speed over the limit", "Hız sınırının üzerinde"},
	{"traffic.heavy_volume", "Very high vehicle count", "Çok yüksek araç sayısı"},
	{"traffic.moderate_volume", "High vehicle count", "Yüksek araç sayısı"},

	{"road.fair_condition", "Road surface in fair condition", "Yol yüzeyi orta durumda"},
	{"road.poor_condition", "Road surface in poor condition", "Yol yüzeyi kötü durumda"},
	{"road.highway", "High-speed highway", "Yüksek hızlı otoyol"},
	{"road.rural", "Rural road", "Kırsal yol"},
	{"road.single_lane", "Single lane road", "Tek şeritli yol"},
	{"road.complex_lanes", "Many lanes, complex merging", "Çok şeritli, karmaşık geçişler"},
	{"road.yield", "Yield intersection", "Yol ver kavşağı"},
	{"road.roundabout", "Roundabout", "Dönel kavşak"},

	{"time.rush_hour", "Rush hour", "Trafiğin yoğun olduğu saatler"},
	{"time.night", "Night driving", "Gece sürüşü"},
	{"time.morning_peak", "Morning peak hours", "Sabah yoğun saatleri"},
	{"time.evening_peak", "Evening peak hours", "Akşam yoğun saatleri"},
	{"time.weekend", "Weekend traffic", "Hafta sonu trafiği"},
	{"time.holiday", "Holiday traffic", "Tatil trafiği"},
	{"time.winter", "Winter season", "Kış mevsimi"},

	{"location.urban", "Dense urban area", "Yoğun kentsel alan"},
	{"location.rural", "Rural area", "Kırsal alan"},
	{"location.school_zone", "School zone", "Okul bölgesi"},
	{"location.construction_zone", "Construction zone", "Yol çalışması bölgesi"},

	{"driver.alcohol.light", "Light alcohol consumption", "Hafif alkol tüketimi"},
	{"driver.alcohol.moderate", "Alcohol over the legal limit", "Yasal sınırın üzerinde alkol"},
	{"driver.alcohol.heavy", "Heavy alcohol consumption", "Yüksek alkol tüketimi"},
	{"driver.alcohol.severe", "Severe intoxication", "Ağır sarhoşluk"},
	{"driver.tired", "Driver is tired", "Sürücü yorgun"},
	{"driver.very_tired", "Driver is very tired", "Sürücü çok yorgun"},
	{"driver.beginner", "Beginner driver", "Acemi sürücü"},
	{"driver.intermediate", "Limited driving experience", "Sınırlı sürüş deneyimi"},
	{"driver.no_seatbelt", "Seatbelt not worn", "Emniyet kemeri takılmıyor"},
	{"driver.no_maintenance", "Vehicle not checked", "Araç kontrolü yapılmadı"},

	{"rec.alcohol.do_not_drive", "Do not drive. Alcohol severely impairs your reactions", "Araç kullanmayın. Alkol reflekslerinizi ciddi şekilde etkiler"},
	{"rec.alcohol.alternative_transport", "Use a taxi, public transport or a designated driver", "Taksi, toplu taşıma ya da alkol almamış bir sürücü tercih edin"},
	{"rec.alcohol.over_limit", "You are likely over the legal limit; do not drive", "Büyük olasılıkla yasal sınırın üzerindesiniz; araç kullanmayın"},
	{"rec.alcohol.wait", "Wait until the alcohol has worn off before driving", "Araç kullanmadan önce alkolün etkisinin geçmesini bekleyin"},
	{"rec.seatbelt", "Always wear your seatbelt", "Emniyet kemerinizi mutlaka takın"},
	{"rec.fatigue.do_not_drive", "You are too tired to drive safely; rest first", "Güvenli sürüş için fazla yorgunsunuz; önce dinlenin"},
	{"rec.fatigue.rest", "Take a break every two hours", "Her iki saatte bir mola verin"},
	{"rec.vehicle.check", "Check tyres, brakes and lights before leaving", "Yola çıkmadan önce lastik, fren ve farları kontrol edin"},
	{"rec.experience.beginner", "Avoid difficult routes and keep extra distance", "Zorlu güzergahlardan kaçının ve takip mesafesini artırın"},
	{"rec.weather.reduce_speed", "Reduce your speed", "Hızınızı azaltın"},
	{"rec.weather.headlights", "Turn on your headlights", "Farlarınızı açın"},
	{"rec.weather.fog_lights", "Use fog lights", "Sis farlarını kullanın"},
	{"rec.weather.lane_markers", "Follow the lane markings closely", "Şerit çizgilerini yakından takip edin"},
	{"rec.weather.storm", "Postpone the trip until the storm passes", "Fırtına geçene kadar yolculuğu erteleyin"},
	{"rec.traffic.following_distance", "Keep a safe following distance", "Güvenli takip mesafesini koruyun"},
	{"rec.traffic.sudden_stops", "Be ready for sudden stops", "Ani duruşlara hazırlıklı olun"},
	{"rec.speed.limit", "Keep to the speed limit", "Hız sınırına uyun"},
	{"rec.time.night", "Stay alert when driving at night", "Gece sürüşünde dikkatli olun"},
	{"rec.time.headlights", "Use headlights and check them work", "Farlarınızı kullanın ve çalıştığından emin olun"},
	{"rec.time.rush_hour", "Allow extra time during rush hour", "Yoğun saatlerde ek süre ayırın"},
	{"rec.location.school_zone", "Slow down near schools and watch for children", "Okul çevresinde yavaşlayın ve çocuklara dikkat edin"},
	{"rec.location.construction_signs", "Follow the construction zone signs", "Yol çalışması levhalarına uyun"},
	{"rec.location.construction_workers", "Watch for workers and machinery", "İşçilere ve iş makinelerine dikkat edin"},
	{"rec.general.postpone", "Consider postponing the trip", "Yolculuğu ertelemeyi düşünün"},
	{"rec.general.safe_driving", "Conditions look good; drive safely", "Koşullar uygun görünüyor; güvenli sürüşler"},
	{"rec.general.stay_alert", "Stay alert and follow traffic rules", "Dikkatli olun ve trafik kurallarına uyun"},

	{"level.very_low", "Very low", "Çok düşük"},
	{"level.low", "Low", "Düşük"},
	{"level.medium", "Medium", "Orta"},
	{"level.high", "High", "Yüksek"},
	{"level.very_high", "Very high", "Çok yüksek"},
}
