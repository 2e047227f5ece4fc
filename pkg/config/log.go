package config

const (
	ComponentKey = "pkg"

	ComponentConnect     = "connect"
	ComponentConfig      = "config"
	ComponentData        = "data"
	ComponentDiagnostics = "diagnostics"
	ComponentJwt         = "jwt"
	ComponentScedule     = "schedule"
	ComponentSession     = "session"
	ComponentSign        = "sign"
	ComponentValidate    = "validate"

	ServiceKey = "service"

	ServiceCarapace = "carapace"
)
