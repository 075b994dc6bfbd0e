// Package schema validates event payloads before they are published.
package schema

import "github.com/rs/zerolog/log"

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

func (v *Validator) Validate(event any) error {
	// Phase 1: stubbed
	// Phase 2: plug JSON Schema validator here
	log.Debug().Interface("event", event).Msg("schema validated")
	return nil
}
