package exam

// Timer is the countdown a session arms on start.
//
// Implementations must invoke onTick and onExpire from their own goroutine,
// never from inside Arm or Cancel, and Cancel must not block on a callback
// in flight: the session holds its lock while calling both methods.
type Timer interface {
	// Arm starts counting down from durationSeconds. onTick receives the
	// seconds left after each tick; onExpire fires exactly once when the
	// count reaches zero. Arming an armed timer replaces the old countdown.
	Arm(durationSeconds int, onTick func(remaining int), onExpire func())
	// Cancel stops the countdown. It is idempotent and safe after expiry.
	Cancel()
}
