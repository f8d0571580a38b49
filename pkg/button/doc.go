// Package button turns plain request handlers into admin toolbar buttons.
//
// NewForm wraps a callback with a form: a request without the submission
// marker gets an empty form page, a submission that fails validation gets the
// form back with its errors, and a valid submission reaches the callback,
// which writes the response. New wraps a callback that needs no form.
//
// Every button exposes a display Title and a stable Name, used to build the
// route "actions/<name>/" when the button is registered on an admin.
package button
