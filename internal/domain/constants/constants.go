// Package constants holds names shared by configuration and delivery.
package constants

// Values of env.env.
const (
	EnvLocal   = "local"
	EnvDevelop = "develop"
	EnvProd    = "prod"
)

// Values of pubsub.provider.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Pub/Sub message attributes. Messages typed as sync events report a finished
// sync and never request one.
const (
	AttributeMessageType = "type"
	MessageTypeSyncEvent = "sync_event"
)
