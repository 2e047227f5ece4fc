package util

const (
	ComponentKey           string = "component"
	ComponentMain          string = "main"
	ComponentExo           string = "exo"
	ComponentCert          string = "certificate builder"
	ComponentCleanup       string = "cleanup"
	ComponentKeyGen        string = "key pair generator"
	ComponentSecretGen     string = "secret generator"
	ComponentHmac          string = "hmac index builder"
	ComponentOnePassword   string = "1password cli"
	ComponenetPermissions  string = "permissions"
	ComponentPatToken      string = "pat token"
	ComponentPatVerifier   string = "pat verifier"
	ComponentS2sCaller     string = "s2s caller"
	ComponentScopes        string = "scopes"
	ComponentStorage       string = "storage"
	ComponentTokenProvider string = "token provider"
	ComponentJwtManager    string = "jwt manager"
	ComponentAuthz         string = "authz"
	ComponentCapability    string = "capability"

	FrameworkKey   string = "framework"
	FrameworkTales string = "tales"

	ServiceKey         string = "service"
	ServiceOnePassword string = "1password"

	PackageKey        string = "package"
	PackageConnect    string = "connect"
	PackageMain       string = "main"
	PackagePat        string = "pat"
	PackageSession    string = "session"
	PackageStorage    string = "storage"
	PackageSchedule   string = "schedule"
	PackageValidate   string = "validate"
	PackageJwt        string = "jwt"
	PackageAuthz      string = "authz"
	PackageCapability string = "capability"
)
