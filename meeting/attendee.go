package meeting

// Attendee is a second participant the forwarder declared on their own
// initiative. It is transient: the parser folds it into the record's
// additional_* fields and discards it.
type Attendee struct {
	Name  string
	Phone string
	Email string
}
