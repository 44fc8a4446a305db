package ssm

// PublicSharingSettingID is the service setting that controls whether SSM
// documents can be shared publicly.
const PublicSharingSettingID = "/ssm/documents/console/public-sharing-permission"

// Values of the public sharing setting.
const (
	SharingEnabled  = "Enable"
	SharingDisabled = "Disable"
)

// Outcome is the result of one preference check.
type Outcome string

const (
	OutcomeUnchanged    Outcome = "unchanged"     // already blocked, no call made
	OutcomeDisabled     Outcome = "disabled"      // switched from Enable to Disable
	OutcomeWouldDisable Outcome = "would-disable" // dry run, Enable left in place
)
