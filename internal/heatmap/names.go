package heatmap

// countryNameToISO3 - отображаемое имя страны -> ISO 3166-1 alpha-3.
// Используется, только если у геометрии нет подходящего кода.
var countryNameToISO3 = map[string]string{
	"United States":        "USA",
	"United Kingdom":       "GBR",
	"Brazil":               "BRA",
	"Canada":               "CAN",
	"Germany":              "DEU",
	"France":               "FRA",
	"Spain":                "ESP",
	"Italy":                "ITA",
	"Netherlands":          "NLD",
	"Belgium":              "BEL",
	"Switzerland":          "CHE",
	"Austria":              "AUT",
	"Sweden":               "SWE",
	"Norway":               "NOR",
	"Denmark":              "DNK",
	"Finland":              "FIN",
	"Poland":               "POL",
	"Portugal":             "PRT",
	"Greece":               "GRC",
	"Ireland":              "IRL",
	"Czech Republic":       "CZE",
	"Hungary":              "HUN",
	"Romania":              "ROU",
	"Bulgaria":             "BGR",
	"Croatia":              "HRV",
	"Slovakia":             "SVK",
	"Slovenia":             "SVN",
	"Lithuania":            "LTU",
	"Latvia":               "LVA",
	"Estonia":              "EST",
	"Luxembourg":           "LUX",
	"Malta":                "MLT",
	"Cyprus":               "CYP",
	"Japan":                "JPN",
	"China":                "CHN",
	"India":                "IND",
	"South Korea":          "KOR",
	"Australia":            "AUS",
	"New Zealand":          "NZL",
	"Singapore":            "SGP",
	"Malaysia":             "MYS",
	"Thailand":             "THA",
	"Indonesia":            "IDN",
	"Philippines":          "PHL",
	"Vietnam":              "VNM",
	"Mexico":               "MEX",
	"Argentina":            "ARG",
	"Chile":                "CHL",
	"Colombia":             "COL",
	"Peru":                 "PER",
	"Venezuela":            "VEN",
	"Ecuador":              "ECU",
	"Uruguay":              "URY",
	"Paraguay":             "PRY",
	"Bolivia":              "BOL",
	"South Africa":         "ZAF",
	"Egypt":                "EGY",
	"Nigeria":              "NGA",
	"Kenya":                "KEN",
	"Morocco":              "MAR",
	"Algeria":              "DZA",
	"Tunisia":              "TUN",
	"Israel":               "ISR",
	"Saudi Arabia":         "SAU",
	"United Arab Emirates": "ARE",
	"Turkey":               "TUR",
	"Russia":               "RUS",
	"Ukraine":              "UKR",
	"Belarus":              "BLR",
	"Kazakhstan":           "KAZ",
	"Uzbekistan":           "UZB",
	"Pakistan":             "PAK",
	"Bangladesh":           "BGD",
	"Sri Lanka":            "LKA",
	"Nepal":                "NPL",
	"Myanmar":              "MMR",
	"Cambodia":             "KHM",
	"Laos":                 "LAO",
	"Mongolia":             "MNG",
	"Taiwan":               "TWN",
	"Hong Kong":            "HKG",
	"Macau":                "MAC",
}

// NameToISO3 переводит отображаемое имя в alpha-3, имя сравнивается точно
func NameToISO3(name string) (string, bool) {
	code, ok := countryNameToISO3[name]
	return code, ok
}
