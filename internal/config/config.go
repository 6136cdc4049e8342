package config

// Header constants.
const (
	// HEADER_KEY_X_USER_ID carries the principal in local development,
	// where no identity provider is configured.
	HEADER_KEY_X_USER_ID  = "X-User-Id"
	HEADER_KEY_REQUEST_ID = "X-Request-Id"
)

const (
	APP_ENV_LOCAL = "local"
)

// Asset providers selectable with ASSET_PROVIDER.
const (
	ASSET_PROVIDER_CLOUDINARY = "cloudinary"
	ASSET_PROVIDER_MINIO      = "minio"
	ASSET_PROVIDER_S3         = "s3"
)

// Queue task types.
const (
	TASK_ASSET_DELETE = "asset:delete"
)

type ContextKey uint

const (
	_ ContextKey = iota
	CTX_KEY_USER_ID
)
