package weatherservice

// Weather модель текущей погоды от погодного сервиса
type Weather struct {
	Condition   string  `json:"condition"`    // sunny, cloudy, rain, storm
	Temperature float64 `json:"temperature"`  // градусы Цельсия
	ImpactLevel string  `json:"impact_level"` // none, low, medium, high
}

// ErrorResponse модель ошибки от погодного сервиса
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
