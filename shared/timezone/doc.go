// Package timezone centralizes clock access so every timestamp the service
// writes or formats is expressed in the configured application timezone.
package timezone
