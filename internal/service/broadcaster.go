package service

// Broadcaster is the change-propagation port the mutation services emit
// through. The realtime hub implements it; tests substitute a fake.
// Emission is fire-and-forget and always happens after the store write
// has committed.
type Broadcaster interface {
	// ToList fans an event out to every connection subscribed to the
	// list's room
	ToList(listID, event string, payload interface{})
	// ToUser fans an event out to every session of the user, whether or
	// not they have the list open
	ToUser(userID, event string, payload interface{})
}

// Mailer delivers account email. The gomail SMTP mailer implements it.
type Mailer interface {
	SendPasswordResetOTP(email, otp string) error
}
