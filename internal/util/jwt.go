package util

// jwt ecdsa key generation 1password constant variables
const (
	OpSigningKeyPairTitle string = "jwt_key_pair"
	OpVaultName           string = "world_site"
	OpCategory            string = "LOGIN"
	OpTag0                string = "Family Site"

	OpEcdsaPrivateKeyLabel string = "signing_key"
	OpEcdsaPublicKeyLabel  string = "verifying_key"
)
