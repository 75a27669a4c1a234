package domain

type DocKind string

const (
	DocGeneral DocKind = "general"
	DocInvoice DocKind = "invoice"
)

// ValidDocKinds is the canonical set of accepted document kind strings.
var ValidDocKinds = map[string]bool{
	"general": true, "invoice": true,
}

type EntityType string

const (
	EntitySupplier EntityType = "supplier"
	EntityClient   EntityType = "client"
	EntityStaff    EntityType = "staff"
)

// ValidEntityTypes is the canonical set of accepted owner entity strings.
var ValidEntityTypes = map[string]bool{
	"supplier": true, "client": true, "staff": true,
}

// FilterAll disables a document-kind or entity-type filter.
const FilterAll = "all"

type DeadlineStatus string

const (
	StatusExpired  DeadlineStatus = "EXPIRED"
	StatusUpcoming DeadlineStatus = "UPCOMING"
	StatusOK       DeadlineStatus = "OK"
)

type NotificationType string

const (
	NotificationDeadline NotificationType = "deadline"
	NotificationSystem   NotificationType = "system"
	NotificationInfo     NotificationType = "info"
)

// ValidNotificationTypes is the canonical set of accepted notification types.
var ValidNotificationTypes = map[string]bool{
	"deadline": true, "system": true, "info": true,
}

type ThresholdSource string

const (
	ThresholdFromType     ThresholdSource = "type"
	ThresholdFromCategory ThresholdSource = "category"
	ThresholdFromDefault  ThresholdSource = "default"
)
