package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyGuardDBType string = "GUARD_DB_TYPE"
	EnvKeyGuardDbPath string = "GUARD_DB_PATH"

	EnvKeyGuardHttpHostPort string = "GUARD_HTTP_HOST_PORT"
	EnvKeyGuardAmqpURL      string = "GUARD_AMQP_URL"

	EnvKeyGuardDefaultRate  string = "GUARD_DEFAULT_RATE"
	EnvKeyGuardDefaultBurst string = "GUARD_DEFAULT_BURST"

	LoggerNameGuardCore     string = "guard_core"
	LoggerNameRestfulServer string = "restful_server"
	LoggerNameDispatcher    string = "dispatcher"
	LoggerNameWorkflow      string = "workflow"

	LoggerFieldGuardCategory  string = "category"
	LoggerCategoryLocation    string = "location"
	LoggerCategoryFence       string = "fence"
	LoggerCategoryAlert       string = "alert"
	LoggerCategoryApplication string = "application"
	LoggerCategoryNotify      string = "notify"
	LoggerCategoryHeartbeat   string = "heartbeat"
)
