package tracking

import (
	"strings"

	"github.com/Kosench/linkpulse/internal/model"
)

// Rule - подстрока User-Agent и класс, который она задает
type Rule[T any] struct {
	Substring string
	Value     T
}

// Правила проверяются сверху вниз, побеждает первое совпадение.
// Порядок - часть контракта: Android обязан стоять раньше Linux,
// потому что UA Android-устройств содержат "Linux".
var (
	DeviceRules = []Rule[model.Device]{
		{Substring: "Mobile", Value: model.DeviceMobile},
		{Substring: "Tablet", Value: model.DeviceTablet},
	}

	// Браузеры на Chromium (включая Edge) определяются как Chrome
	BrowserRules = []Rule[string]{
		{Substring: "Chrome", Value: "Chrome"},
		{Substring: "Firefox", Value: "Firefox"},
		{Substring: "Safari", Value: "Safari"},
		{Substring: "Edge", Value: "Edge"},
	}

	OSRules = []Rule[string]{
		{Substring: "Windows", Value: "Windows"},
		{Substring: "Mac", Value: "macOS"},
		{Substring: "Android", Value: "Android"},
		{Substring: "Linux", Value: "Linux"},
		{Substring: "iOS", Value: "iOS"},
	}
)

// Classify возвращает значение первого подошедшего правила или fallback
func Classify[T any](ua string, rules []Rule[T], fallback T) T {
	for _, rule := range rules {
		if strings.Contains(ua, rule.Substring) {
			return rule.Value
		}
	}
	return fallback
}

func ClassifyDevice(ua string) model.Device {
	return Classify(ua, DeviceRules, model.DeviceDesktop)
}

func ClassifyBrowser(ua string) string {
	return Classify(ua, BrowserRules, model.Unknown)
}

func ClassifyOS(ua string) string {
	return Classify(ua, OSRules, model.Unknown)
}
