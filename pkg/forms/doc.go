// Package forms declares, binds and validates HTML forms submitted to form
// buttons.
//
// A Definition is the declaration of a form: an ordered list of fields plus an
// optional form-level clean hook. Calling New yields an unbound Form used to
// render an empty page; calling Bind attaches submitted values and files so
// IsValid can clean every field and collect errors keyed by field name (the
// NonFieldErrors key holds messages that belong to the whole form).
//
// Definitions can be written in Go or derived from the request body of an
// OpenAPI operation with FromOpenAPI. Decode copies the submitted values of a
// valid form into a struct tagged with `form:"..."`.
package forms
