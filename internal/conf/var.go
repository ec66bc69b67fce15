package conf

// Conf is the loaded process configuration, set once by bootstrap.
var Conf = Default()

// Setting keys stored in the setting_items table.
const (
	SettingLLMEndpoint = "llm_endpoint"
)
