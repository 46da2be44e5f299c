package config

const (
	EnvPrefix = "printflow"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DocstoreBackendNotion = "notion"
	DocstoreBackendSQLite = "sqlite"
)
