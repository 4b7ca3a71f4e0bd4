package component

// Outcome reports how a gameplay operation resolved. Business-rule
// rejections are ordinary values, never errors.
type Outcome int

const (
	Applied Outcome = iota
	RejectedInsufficientResource
	RejectedOnCooldown
	RejectedInvincible
	RejectedInvalidAmount
	RejectedCapacity
	RejectedDead
	RejectedNotPlaying
)

var outcomeNames = [...]string{
	Applied:                      "applied",
	RejectedInsufficientResource: "insufficient_resource",
	RejectedOnCooldown:           "on_cooldown",
	RejectedInvincible:           "invincible",
	RejectedInvalidAmount:        "invalid_amount",
	RejectedCapacity:             "capacity",
	RejectedDead:                 "dead",
	RejectedNotPlaying:           "not_playing",
}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return "unknown"
	}
	return outcomeNames[o]
}

// Ok reports whether the operation took effect.
func (o Outcome) Ok() bool {
	return o == Applied
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}
