// Package submit provides form.Submitter implementations: an HTTP client
// posting the nested JSON payload, a function adapter and a writer that
// prints the resolved values.
package submit
